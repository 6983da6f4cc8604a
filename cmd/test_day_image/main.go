package main

import (
	"fmt"
	"os"

	"github.com/Freeeeeet/skischool/internal/render"
)

func main() {
	// Тестовая сетка: два инструктора, рабочий день 09:00-13:00
	grid := &render.DayGrid{
		Date:    "2026-02-02",
		DayName: "Monday",
		Times:   []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"},
		Rows: []render.InstructorRow{
			{
				Name: "John Smith",
				Cells: []render.CellState{
					render.CellOpen, render.CellOpen,
					render.CellBooked, render.CellBooked,
					render.CellOpen, render.CellOpen,
					render.CellClosed, render.CellClosed,
				},
			},
			{
				Name: "Jane Doe",
				Cells: []render.CellState{
					render.CellClosed, render.CellClosed,
					render.CellOpen, render.CellOpen,
					render.CellOpen, render.CellBooked,
					render.CellBooked, render.CellOpen,
				},
			},
		},
	}

	imageData, err := render.GenerateDayImage(grid)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "day.png"
	err = os.WriteFile(filename, imageData, 0644)
	if err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📊 Инструкторов: %d, ячеек в строке: %d\n", len(grid.Rows), len(grid.Times))
}
