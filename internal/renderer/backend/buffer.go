package backend

import (
	"strings"

	"github.com/dshills/hxmotion/internal/renderer/core"
)

// ScreenBuffer is an in-memory Surface. It tracks what was last flushed so
// FlushTo only sends changed cells to a backend.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{width: width, height: height}
	sb.allocate()
	return sb
}

func (sb *ScreenBuffer) allocate() {
	sb.front = make([][]core.Cell, sb.height)
	sb.back = make([][]core.Cell, sb.height)
	for y := 0; y < sb.height; y++ {
		sb.front[y] = make([]core.Cell, sb.width)
		sb.back[y] = make([]core.Cell, sb.width)
		for x := 0; x < sb.width; x++ {
			sb.front[y][x] = core.EmptyCell()
			sb.back[y][x] = core.EmptyCell()
		}
	}
	sb.fullRedraw = true
}

// Resize resizes the buffer. Content is discarded.
func (sb *ScreenBuffer) Resize(width, height int) {
	if width == sb.width && height == sb.height {
		return
	}
	sb.width, sb.height = width, height
	sb.allocate()
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// SetCell sets a cell in the back buffer.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.back[y][x] = cell
}

// GetCell returns a cell from the back buffer.
func (sb *ScreenBuffer) GetCell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.back[y][x]
}

// Fill fills a rectangle with the given cell.
func (sb *ScreenBuffer) Fill(rect core.ScreenRect, cell core.Cell) {
	rect = rect.Intersection(core.NewScreenRect(0, 0, sb.height, sb.width))
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			sb.back[y][x] = cell
		}
	}
}

// Clear clears the back buffer with empty cells.
func (sb *ScreenBuffer) Clear() {
	sb.Fill(core.NewScreenRect(0, 0, sb.height, sb.width), core.EmptyCell())
}

// SetString writes s with style starting at (x, y) and returns the column
// after the last cell written. Wide runes take two cells.
func (sb *ScreenBuffer) SetString(x, y int, s string, style core.Style) int {
	col := x
	for _, r := range s {
		width := core.RuneWidth(r)
		if width == 0 {
			continue
		}
		sb.SetCell(col, y, core.Cell{Rune: r, Width: width, Style: style})
		col++
		if width == 2 {
			sb.SetCell(col, y, core.ContinuationCell())
			col++
		}
	}
	return col
}

// Row returns the text of row y with continuation cells removed.
func (sb *ScreenBuffer) Row(y int) string {
	if y < 0 || y >= sb.height {
		return ""
	}
	return core.StringFromCells(sb.back[y])
}

// String returns every row joined by newlines, trailing blanks trimmed.
func (sb *ScreenBuffer) String() string {
	rows := make([]string, sb.height)
	for y := range rows {
		rows[y] = strings.TrimRight(sb.Row(y), " ")
	}
	return strings.Join(rows, "\n")
}

// FlushTo writes the cells changed since the last flush to b and returns
// how many were written. It does not call b.Show.
func (sb *ScreenBuffer) FlushTo(b Surface) int {
	n := 0
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			cell := sb.back[y][x]
			if !sb.fullRedraw && cell.Equals(sb.front[y][x]) {
				continue
			}
			if !cell.IsContinuation() {
				b.SetCell(x, y, cell)
			}
			sb.front[y][x] = cell
			n++
		}
	}
	sb.fullRedraw = false
	return n
}
