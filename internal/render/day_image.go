// Package render рисует сводную картинку дня: строка на инструктора,
// колонка на каждые полчаса рабочего дня школы.
package render

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// CellState — состояние одной получасовой ячейки сетки.
type CellState int

const (
	CellClosed CellState = iota // время не открыто
	CellOpen                    // открыто и свободно
	CellBooked                  // занято уроком
)

// InstructorRow — строка сетки для одного инструктора.
type InstructorRow struct {
	Name  string
	Cells []CellState
}

// DayGrid — готовые данные для картинки одного дня.
type DayGrid struct {
	Date    string
	DayName string
	Times   []string // подписи колонок, "HH:MM"
	Rows    []InstructorRow
}

// Константы размеров и отступов
const (
	headerHeight   = 60
	nameColWidth   = 180
	cellWidth      = 44
	cellHeight     = 36
	cellPadding    = 2.0
	legendHeight   = 50
	cellRadius     = 4.0
	timeLabelEvery = 2 // подписывается каждый час, не каждые полчаса
)

const (
	closedDayWidth  = 520
	closedDayHeight = 160
)

// Цветовая схема
var (
	bgColor       = color.RGBA{245, 246, 248, 255}
	textColor     = color.RGBA{80, 85, 90, 220}
	gridLineColor = color.NRGBA{150, 150, 150, 255}

	cellOpenColor   = color.RGBA{133, 193, 85, 220}
	cellBookedColor = color.RGBA{255, 182, 193, 255}
	cellClosedColor = color.RGBA{220, 220, 220, 200}

	legendTextColor = color.RGBA{70, 74, 78, 220}
)

// GenerateDayImage кодирует сетку дня в PNG.
func GenerateDayImage(grid *DayGrid) ([]byte, error) {
	if len(grid.Times) == 0 || len(grid.Rows) == 0 {
		return generateClosedDayImage(grid)
	}

	width := nameColWidth + len(grid.Times)*cellWidth
	height := headerHeight + len(grid.Rows)*cellHeight + legendHeight

	dc := createCanvas(width, height)

	drawTitle(dc, grid, width)
	drawTimeLabels(dc, grid)
	drawRows(dc, grid)
	drawLegend(dc, height)

	return encodeImage(dc)
}

// generateClosedDayImage рисует заглушку для выходного дня или дня
// без инструкторов.
func generateClosedDayImage(grid *DayGrid) ([]byte, error) {
	dc := createCanvas(closedDayWidth, closedDayHeight)

	dc.SetColor(textColor)
	title := grid.DayName + " " + grid.Date
	dc.DrawStringAnchored(title, closedDayWidth/2, closedDayHeight/2-14, 0.5, 0.5)
	dc.DrawStringAnchored("Closed", closedDayWidth/2, closedDayHeight/2+14, 0.5, 0.5)

	return encodeImage(dc)
}

func createCanvas(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	return dc
}

func drawTitle(dc *gg.Context, grid *DayGrid, width int) {
	dc.SetColor(textColor)
	title := grid.DayName + " " + grid.Date
	dc.DrawStringAnchored(title, float64(width)/2, headerHeight/3, 0.5, 0.5)
}

func drawTimeLabels(dc *gg.Context, grid *DayGrid) {
	dc.SetColor(textColor)
	for i, label := range grid.Times {
		if i%timeLabelEvery != 0 {
			continue
		}
		x := float64(nameColWidth + i*cellWidth)
		dc.DrawStringAnchored(label, x, headerHeight-10, 0, 0.5)
	}
}

func drawRows(dc *gg.Context, grid *DayGrid) {
	for rowIdx, row := range grid.Rows {
		y := float64(headerHeight + rowIdx*cellHeight)

		dc.SetColor(textColor)
		dc.DrawStringAnchored(row.Name, 10, y+cellHeight/2, 0, 0.5)

		for cellIdx, cell := range row.Cells {
			x := float64(nameColWidth + cellIdx*cellWidth)
			drawCell(dc, x, y, cell)
		}

		dc.SetColor(gridLineColor)
		dc.SetLineWidth(0.3)
		dc.DrawLine(0, y, float64(nameColWidth+len(row.Cells)*cellWidth), y)
		dc.Stroke()
	}
}

func drawCell(dc *gg.Context, x, y float64, cell CellState) {
	dc.SetColor(cellColor(cell))
	dc.DrawRoundedRectangle(
		x+cellPadding, y+cellPadding,
		cellWidth-2*cellPadding, cellHeight-2*cellPadding,
		cellRadius,
	)
	dc.Fill()
}

func cellColor(cell CellState) color.RGBA {
	switch cell {
	case CellOpen:
		return cellOpenColor
	case CellBooked:
		return cellBookedColor
	default:
		return cellClosedColor
	}
}

func drawLegend(dc *gg.Context, height int) {
	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Open", cellOpenColor},
		{"Booked", cellBookedColor},
		{"Closed", cellClosedColor},
	}

	boxW := 18.0
	boxH := 12.0
	x := 10.0
	y := float64(height-legendHeight) + 18

	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.Label, x+boxW+6, y+boxH/2, 0, 0.5)
		x += boxW + 6 + float64(len(item.Label))*8 + 20
	}
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
