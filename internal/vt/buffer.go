// Package vt provides in-memory implementations of the terminal collaborators
// the touch input core drives: a wrapping character grid and a small shell.
package vt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Gaurav-Gosain/termtouch/internal/logging"
	"github.com/Gaurav-Gosain/termtouch/internal/notify"
	"github.com/Gaurav-Gosain/termtouch/internal/pool"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
	"github.com/charmbracelet/x/ansi"
)

var logger = logging.New("vt")

// ErrInvalidSize is returned when a buffer is given a non-positive size.
var ErrInvalidSize = errors.New("invalid buffer size")

// Metrics describes how grid cells map to screen units.
type Metrics struct {
	CellWidth  float64
	CellHeight float64
	// Padding is the inset of the first cell from the screen origin.
	Padding float64
	// Spacing is the gap between adjacent cells.
	Spacing float64
}

// DefaultMetrics maps one cell to one screen unit, which is what a host
// terminal reports for mouse positions.
func DefaultMetrics() Metrics {
	return Metrics{CellWidth: 1, CellHeight: 1}
}

// Buffer is a terminal.Grid over a logical text stream wrapped at the buffer
// width. Content is anchored to the bottom of the grid: growing the height
// by n rows moves every row down by n, shrinking moves rows up until the
// text reaches the top.
type Buffer struct {
	width   int
	height  int
	metrics Metrics

	text []rune
	// cells holds the layout position of every rune, rows relative to top.
	cells []terminal.Point
	// rowStarts holds the offset of the first rune of every layout row.
	rowStarts []int
	// end is the layout position just after the last rune.
	end terminal.Point
	// top is the grid row of the first layout row.
	top int

	visible   int
	scrolling bool
	focused   bool

	selections terminal.Selections
	selecting  terminal.Range
	props      notify.Feed[terminal.Property]
}

// NewBuffer creates an empty buffer of the given size.
func NewBuffer(width, height int, metrics Metrics) (*Buffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	b := &Buffer{
		width:     width,
		height:    height,
		metrics:   metrics,
		selecting: terminal.Empty,
	}
	b.layout()
	return b, nil
}

func (b *Buffer) BufferWidth() int  { return b.width }
func (b *Buffer) BufferHeight() int { return b.height }
func (b *Buffer) Text() string      { return string(b.text) }

func (b *Buffer) Selections() *terminal.Selections { return &b.selections }

func (b *Buffer) PropertyChanged() *notify.Feed[terminal.Property] { return &b.props }

// Metrics returns the current cell metrics.
func (b *Buffer) Metrics() Metrics { return b.metrics }

// SetMetrics replaces the cell metrics used for screen projection.
func (b *Buffer) SetMetrics(m Metrics) { b.metrics = m }

// Focused reports whether Focus has been requested since the last Blur.
func (b *Buffer) Focused() bool { return b.focused }

func (b *Buffer) Focus() { b.focused = true }

// Blur drops input focus.
func (b *Buffer) Blur() { b.focused = false }

// Rows returns the number of grid rows in use, including the blank rows
// above the text and the row holding the cursor.
func (b *Buffer) Rows() int {
	return b.top + b.end.Row + 1
}

// Cursor returns the grid position where the next rune would be written.
func (b *Buffer) Cursor() terminal.Point {
	return b.grid(b.end)
}

func (b *Buffer) grid(p terminal.Point) terminal.Point {
	return terminal.Point{Column: p.Column, Row: p.Row + b.top}
}

func (b *Buffer) layout() {
	b.cells = b.cells[:0]
	b.rowStarts = b.rowStarts[:0]

	col, row := 0, 0
	open := false
	for i, r := range b.text {
		if col >= b.width && r != '\n' {
			row++
			col = 0
			open = false
		}
		if !open {
			b.rowStarts = append(b.rowStarts, i)
			open = true
		}
		b.cells = append(b.cells, terminal.Point{Column: col, Row: row})
		if r == '\n' {
			row++
			col = 0
			open = false
			continue
		}
		col++
	}

	if col >= b.width {
		b.end = terminal.Point{Column: 0, Row: row + 1}
	} else {
		b.end = terminal.Point{Column: col, Row: row}
	}
}

// rowBounds returns the offsets [start, end) of layout row lr.
func (b *Buffer) rowBounds(lr int) (int, int) {
	start := b.rowStarts[lr]
	if lr+1 < len(b.rowStarts) {
		return start, b.rowStarts[lr+1]
	}
	return start, len(b.text)
}

func (b *Buffer) IndexToPoint(offset int) terminal.Point {
	offset = min(max(offset, 0), len(b.text))
	if offset == len(b.text) {
		return b.grid(b.end)
	}
	return b.grid(b.cells[offset])
}

func (b *Buffer) PointToIndex(p terminal.Point) int {
	lr := p.Row - b.top
	if lr < 0 || lr >= len(b.rowStarts) || p.Column < 0 {
		return -1
	}
	start, end := b.rowBounds(lr)
	idx := start + p.Column
	if idx >= end {
		return -1
	}
	return idx
}

// Cell returns the printable rune under p.
func (b *Buffer) Cell(p terminal.Point) (rune, bool) {
	idx := b.PointToIndex(p)
	if idx < 0 || b.text[idx] == '\n' {
		return 0, false
	}
	return b.text[idx], true
}

func (b *Buffer) WordRange(p terminal.Point) terminal.Range {
	idx := b.PointToIndex(p)
	if idx < 0 || unicode.IsSpace(b.text[idx]) {
		return terminal.Empty
	}

	start, end := b.rowBounds(p.Row - b.top)
	s, e := idx, idx
	for s > start && !unicode.IsSpace(b.text[s-1]) {
		s--
	}
	for e+1 < end && !unicode.IsSpace(b.text[e+1]) {
		e++
	}
	return terminal.Range{Begin: b.IndexToPoint(s), End: b.IndexToPoint(e).Next()}
}

// TextOf returns the runes covered by r, newlines included.
func (b *Buffer) TextOf(r terminal.Range) string {
	if r.IsEmpty() {
		return ""
	}
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	for i, c := range b.cells {
		if r.Contains(b.grid(c)) {
			sb.WriteRune(b.text[i])
		}
	}
	return sb.String()
}

// CellSize returns the screen size of one cell including spacing.
func (b *Buffer) CellSize() terminal.Vec2 {
	return terminal.Vec2{
		X: b.metrics.CellWidth + b.metrics.Spacing,
		Y: b.metrics.CellHeight + b.metrics.Spacing,
	}
}

func (b *Buffer) ScreenToPoint(pos terminal.Vec2) terminal.Point {
	cell := b.CellSize()
	if cell.X <= 0 || cell.Y <= 0 {
		return terminal.Invalid
	}
	x := pos.X - b.metrics.Padding
	y := pos.Y - b.metrics.Padding
	if x < 0 || y < 0 {
		return terminal.Invalid
	}

	col := int(x / cell.X)
	row := int(y / cell.Y)
	if col >= b.width || row >= b.height {
		return terminal.Invalid
	}
	return terminal.Point{Column: col, Row: row + b.visible}
}

// PointToScreen returns the screen position of the center of cell p under
// the current visible index.
func (b *Buffer) PointToScreen(p terminal.Point) terminal.Vec2 {
	cell := b.CellSize()
	return terminal.Vec2{
		X: b.metrics.Padding + (float64(p.Column)+0.5)*cell.X,
		Y: b.metrics.Padding + (float64(p.Row-b.visible)+0.5)*cell.Y,
	}
}

func (b *Buffer) SelectingRange() terminal.Range { return b.selecting }

func (b *Buffer) SetSelectingRange(r terminal.Range) {
	if r == b.selecting {
		return
	}
	b.selecting = r
	b.props.Emit(terminal.PropertySelectingRange)
}

func (b *Buffer) VisibleIndex() int    { return b.visible }
func (b *Buffer) MinVisibleIndex() int { return 0 }

func (b *Buffer) MaxVisibleIndex() int {
	return max(0, b.Rows()-b.height)
}

func (b *Buffer) SetVisibleIndex(i int) {
	i = min(max(i, b.MinVisibleIndex()), b.MaxVisibleIndex())
	if i == b.visible {
		return
	}
	b.visible = i
	b.props.Emit(terminal.PropertyVisibleIndex)
}

func (b *Buffer) IsScrolling() bool { return b.scrolling }

func (b *Buffer) SetScrolling(scrolling bool) {
	if scrolling == b.scrolling {
		return
	}
	b.scrolling = scrolling
	b.props.Emit(terminal.PropertyScrolling)
}

func (b *Buffer) ScrollToCursor() {
	row := b.Cursor().Row
	switch {
	case row < b.visible:
		b.SetVisibleIndex(row)
	case row >= b.visible+b.height:
		b.SetVisibleIndex(row - b.height + 1)
	}
}

// Resize changes the grid geometry, reflowing the text for a new width and
// shifting rows for a new height.
func (b *Buffer) Resize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	widthChanged := width != b.width
	heightChanged := height != b.height
	if !widthChanged && !heightChanged {
		return nil
	}

	follow := b.visible >= b.MaxVisibleIndex()
	if heightChanged {
		b.top = max(0, b.top+height-b.height)
		b.height = height
	}
	if widthChanged {
		b.width = width
		b.layout()
	}

	logger.Debug("buffer resized", "width", width, "height", height, "top", b.top)

	if widthChanged {
		b.props.Emit(terminal.PropertyBufferWidth)
	}
	if heightChanged {
		b.props.Emit(terminal.PropertyBufferHeight)
	}
	b.reclamp(follow)
	return nil
}

func (b *Buffer) reclamp(follow bool) {
	if follow {
		b.SetVisibleIndex(b.MaxVisibleIndex())
		return
	}
	b.SetVisibleIndex(b.visible)
}

// Write appends s to the text stream. Escape sequences are stripped and
// carriage returns are dropped.
func (b *Buffer) Write(s string) {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	if s == "" {
		return
	}

	follow := b.visible >= b.MaxVisibleIndex()
	b.text = append(b.text, []rune(s)...)
	b.layout()
	b.reclamp(follow)
}

// Clear erases the text and every selection.
func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.top = 0
	b.layout()
	b.SetSelectingRange(terminal.Empty)
	b.selections.Clear()
	b.SetVisibleIndex(0)
}
