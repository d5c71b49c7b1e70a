package renderer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/engine/cursor"
	"github.com/dshills/hxmotion/internal/renderer/backend"
	"github.com/dshills/hxmotion/internal/renderer/core"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool // Show line numbers in gutter
	TabWidth        int  // Columns per tab stop
	ScrollMargin    int  // Lines to keep above and below the cursor
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: true,
		TabWidth:        4,
		ScrollMargin:    3,
	}
}

// Frame is everything drawn in one render.
type Frame struct {
	Snapshot   *buffer.Snapshot
	Selections []cursor.Selection // primary first
	Mode       string             // shown at the left of the status line
	Status     string             // free text for the status line
	Toasts     *toast.Manager
	Now        time.Time
}

// Renderer draws frames onto a backend.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	screen  *backend.ScreenBuffer

	topLine    uint32
	needsDraw  bool
	styles     styles
	lastCursor core.ScreenPos
}

type styles struct {
	text      core.Style
	gutter    core.Style
	selection core.Style
	status    core.Style
}

func defaultStyles() styles {
	return styles{
		text:      core.DefaultStyle(),
		gutter:    core.DefaultStyle().WithForeground(core.ColorGray),
		selection: core.DefaultStyle().Reverse(),
		status:    core.DefaultStyle().Reverse().Bold(),
	}
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	w, h := b.Size()
	return &Renderer{
		opts:      opts,
		backend:   b,
		screen:    backend.NewScreenBuffer(w, h),
		needsDraw: true,
		styles:    defaultStyles(),
	}
}

// Redraw requests a full render on the next NeedsRedraw check.
func (r *Renderer) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsDraw = true
}

// NeedsRedraw reports and clears a pending redraw request.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.needsDraw
	r.needsDraw = false
	return v
}

// Resize adapts the composition buffer to a new terminal size.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen.Resize(width, height)
	r.needsDraw = true
}

// Screen returns the composition buffer of the last frame.
func (r *Renderer) Screen() *backend.ScreenBuffer {
	return r.screen
}

// TopLine returns the first visible buffer line.
func (r *Renderer) TopLine() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.topLine
}

// CursorPos returns where the terminal cursor was placed by the last frame.
func (r *Renderer) CursorPos() core.ScreenPos {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastCursor
}

// Render draws f and flushes the changes to the backend.
func (r *Renderer) Render(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()
	width, height := r.screen.Size()
	if width <= 0 || height <= 0 || f.Snapshot == nil {
		return
	}

	textRows := height - 1
	head := buffer.ByteOffset(0)
	if len(f.Selections) > 0 {
		head = f.Selections[0].Head
	}
	headPt := f.Snapshot.OffsetToPoint(head)
	r.scrollTo(headPt.Line, textRows, f.Snapshot.LineCount())

	gutter := r.gutterWidth(f.Snapshot.LineCount())
	cursorPos := core.ScreenPos{Row: int(headPt.Line - r.topLine), Col: gutter}

	for row := 0; row < textRows; row++ {
		line := r.topLine + uint32(row)
		if line >= f.Snapshot.LineCount() {
			break
		}
		if gutter > 0 {
			num := fmt.Sprintf("%*d ", gutter-1, line+1)
			r.screen.SetString(0, row, num, r.styles.gutter)
		}
		if col, ok := r.drawLine(f, line, row, gutter, head); ok {
			cursorPos = core.ScreenPos{Row: row, Col: col}
		}
	}

	r.drawStatus(f, headPt, height-1, width)
	if f.Toasts != nil {
		f.Toasts.Render(r.screen, f.Now)
	}

	r.screen.FlushTo(r.backend)
	r.backend.ShowCursor(cursorPos.Col, cursorPos.Row)
	r.backend.Show()
	r.lastCursor = cursorPos
}

// scrollTo keeps line inside the visible rows with the scroll margin.
func (r *Renderer) scrollTo(line uint32, rows int, lineCount uint32) {
	if rows <= 0 {
		return
	}
	margin := uint32(min(r.opts.ScrollMargin, (rows-1)/2))
	if line < r.topLine+margin {
		if line < margin {
			r.topLine = 0
		} else {
			r.topLine = line - margin
		}
	}
	if line+margin >= r.topLine+uint32(rows) {
		r.topLine = line + margin + 1 - uint32(rows)
	}
	if lineCount > 0 && r.topLine >= lineCount {
		r.topLine = lineCount - 1
	}
}

func (r *Renderer) gutterWidth(lineCount uint32) int {
	if !r.opts.ShowLineNumbers {
		return 0
	}
	return len(fmt.Sprint(lineCount)) + 1
}

// drawLine draws one buffer line and returns the column of head if it lies
// on this line.
func (r *Renderer) drawLine(f Frame, line uint32, row, left int, head buffer.ByteOffset) (int, bool) {
	start := f.Snapshot.LineStartOffset(line)
	text := f.Snapshot.LineText(line)

	col := left
	headCol, onLine := 0, false
	for i, ch := range text {
		off := start + buffer.ByteOffset(i)
		if off == head {
			headCol, onLine = col, true
		}
		style := r.styles.text
		if selected(f.Selections, off) {
			style = r.styles.selection
		}

		if ch == '\t' {
			n := r.opts.TabWidth - (col-left)%r.opts.TabWidth
			for k := 0; k < n; k++ {
				r.screen.SetCell(col+k, row, core.Cell{Rune: ' ', Width: 1, Style: style})
			}
			col += n
			continue
		}
		w := core.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetCell(col, row, core.Cell{Rune: ch, Width: w, Style: style})
		if w == 2 {
			r.screen.SetCell(col+1, row, core.ContinuationCell())
		}
		col += w
	}

	end := start + buffer.ByteOffset(len(text))
	if head == end {
		headCol, onLine = col, true
		if selected(f.Selections, end) {
			r.screen.SetCell(col, row, core.Cell{Rune: ' ', Width: 1, Style: r.styles.selection})
		}
	}
	return headCol, onLine
}

// selected reports whether off lies in a selection. A selection covers
// [Start, End] so the character under the head is highlighted too.
func selected(sels []cursor.Selection, off buffer.ByteOffset) bool {
	for _, sel := range sels {
		if !sel.IsEmpty() && off >= sel.Start() && off <= sel.End() {
			return true
		}
	}
	return false
}

func (r *Renderer) drawStatus(f Frame, head buffer.Point, row, width int) {
	r.screen.Fill(core.NewScreenRect(row, 0, row+1, width), core.Cell{Rune: ' ', Width: 1, Style: r.styles.status})

	parts := []string{" " + f.Mode, fmt.Sprintf("%d:%d", head.Line+1, head.Column+1)}
	if n := len(f.Selections); n > 1 {
		parts = append(parts, fmt.Sprintf("%d sel", n))
	}
	if f.Status != "" {
		parts = append(parts, f.Status)
	}
	r.screen.SetString(0, row, strings.Join(parts, "  "), r.styles.status)
}
