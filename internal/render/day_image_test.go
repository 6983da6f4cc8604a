package render

import (
	"bytes"
	"testing"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestGenerateDayImage(t *testing.T) {
	grid := &DayGrid{
		Date:    "2026-02-02",
		DayName: "Monday",
		Times:   []string{"09:00", "09:30", "10:00", "10:30"},
		Rows: []InstructorRow{
			{Name: "John Smith", Cells: []CellState{CellClosed, CellOpen, CellBooked, CellOpen}},
			{Name: "Jane Doe", Cells: []CellState{CellOpen, CellOpen, CellClosed, CellClosed}},
		},
	}

	data, err := GenerateDayImage(grid)
	if err != nil {
		t.Fatalf("GenerateDayImage: %v", err)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		t.Errorf("output is not a PNG, first bytes: %v", data[:min(len(data), 8)])
	}
}

func TestGenerateDayImage_ClosedDay(t *testing.T) {
	grid := &DayGrid{Date: "2026-02-01", DayName: "Sunday"}

	data, err := GenerateDayImage(grid)
	if err != nil {
		t.Fatalf("GenerateDayImage: %v", err)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		t.Errorf("closed-day output is not a PNG")
	}
}
