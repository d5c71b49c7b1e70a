package toast

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/hxmotion/internal/renderer/backend"
	"github.com/dshills/hxmotion/internal/renderer/core"
)

// Layout constants, in cells.
const (
	// Padding is the blank space on each side of the text.
	Padding = 1

	// BottomOffset is the number of rows between the toast and the
	// bottom row of the surface.
	BottomOffset = 2

	// RightMargin is the distance from the right edge for
	// OriginBottomRight.
	RightMargin = 2
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Surface is the drawing target.
type Surface = backend.Surface

// Layout returns the box for a toast boxWidth cells wide on a surface of
// the given size. The box is clipped to the surface.
func Layout(origin Origin, width, height, boxWidth int) core.ScreenRect {
	row := max(height-1-BottomOffset, 0)

	right := width / 2
	if origin == OriginBottomRight {
		right = width - RightMargin
	}
	left := right - boxWidth
	if left < 0 {
		left = 0
		right = min(boxWidth, width)
	}
	return core.NewScreenRect(row, left, row+1, right)
}

// Truncate shortens s to at most width display cells, cutting on a
// grapheme cluster boundary and appending an ellipsis when anything was
// removed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	budget := width - uniseg.StringWidth(Ellipsis)
	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > budget {
			break
		}
		sb.WriteString(g.Str())
		used += w
	}
	sb.WriteString(Ellipsis)
	return sb.String()
}

// singleLine flattens line breaks and tabs so the message fits one row.
func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s)
}

// Draw renders t onto surface using config and returns the box drawn.
func Draw(surface Surface, t Toast, config Config) (core.ScreenRect, bool) {
	width, height := surface.Size()

	maxText := width - 2*Padding
	if config.Origin == OriginBottomRight {
		maxText -= RightMargin
	}
	if config.MaxWidth > 0 {
		maxText = min(maxText, config.MaxWidth)
	}
	if maxText <= 0 || height <= 0 {
		return core.ScreenRect{}, false
	}

	text := Truncate(singleLine(t.Message), maxText)
	box := Layout(config.Origin, width, height, uniseg.StringWidth(text)+2*Padding)

	bg := core.DefaultStyle().WithBackground(config.Theme.Background)
	for x := box.Left; x < box.Right; x++ {
		surface.SetCell(x, box.Top, core.Cell{Rune: ' ', Width: 1, Style: bg})
	}

	style := bg.WithForeground(config.Theme.ForegroundFor(t.Level))
	if t.Level == LevelError {
		style = style.Bold()
	}

	x := box.Left + Padding
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > box.Right-Padding {
			break
		}
		cell := core.Cell{Width: w, Style: style}
		runes := g.Runes()
		cell.Rune = runes[0]
		if len(runes) > 1 {
			cell.Combining = runes[1:]
		}
		surface.SetCell(x, box.Top, cell)
		for i := 1; i < w; i++ {
			surface.SetCell(x+i, box.Top, core.Cell{Style: style})
		}
		x += w
	}
	return box, true
}
