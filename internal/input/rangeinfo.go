// Package input implements the touch and pointer input core of a terminal
// widget: screen-to-buffer mapping, reflow-safe selections, swipe detection
// and the gesture state machine that ties them to the grid, the shell and
// the on-screen keyboard.
package input

import (
	"fmt"

	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

// Anchor is one endpoint of a RangeInfo. It is either an Offset or a
// Relative point.
type Anchor interface {
	anchor()
	String() string
}

// Offset anchors an endpoint to a rune offset in the logical text stream.
type Offset int

func (Offset) anchor() {}

func (o Offset) String() string { return fmt.Sprintf("offset(%d)", int(o)) }

// EndOfRow is the Relative column meaning "the end of the row".
const EndOfRow = -1

// Relative anchors an endpoint to the row holding the last character of the
// buffer. DRow is the row minus that last row, so blank rows below the text
// have a positive DRow.
type Relative struct {
	DRow   int
	Column int
}

func (Relative) anchor() {}

func (r Relative) String() string {
	return fmt.Sprintf("relative(%+d,%d)", r.DRow, r.Column)
}

// RangeInfo is a selection stored in a form that survives reflow.
type RangeInfo struct {
	Start Anchor
	End   Anchor
}

func (ri RangeInfo) String() string {
	return fmt.Sprintf("{%v %v}", ri.Start, ri.End)
}

// lastRow is the row of the last character, or the cursor row when the
// buffer holds no text.
func lastRow(g terminal.Grid, n int) int {
	if n == 0 {
		return g.IndexToPoint(0).Row
	}
	return g.IndexToPoint(n - 1).Row
}

// RangeToObject converts r into anchors. Endpoints on a character become
// offsets; endpoints past the known text fall back to rows relative to the
// last character.
func RangeToObject(g terminal.Grid, r terminal.Range) RangeInfo {
	text := []rune(g.Text())
	last := lastRow(g, len(text))

	begin := g.PointToIndex(r.Begin)
	var start Anchor
	if begin >= 0 {
		start = Offset(begin)
	} else {
		start = Relative{DRow: r.Begin.Row - last, Column: r.Begin.Column}
	}

	return RangeInfo{Start: start, End: endAnchor(g, r.End, text, last, begin)}
}

func endAnchor(g terminal.Grid, end terminal.Point, text []rune, last, begin int) Anchor {
	if idx := g.PointToIndex(end); idx >= 0 {
		return Offset(idx)
	}

	rel := Relative{DRow: end.Row - last, Column: end.Column}
	if end.Column >= g.BufferWidth() {
		rel.Column = EndOfRow
	}
	if len(text) == 0 || end.Row > last || end.Row < g.IndexToPoint(0).Row {
		return rel
	}

	// The row holds characters but end lies past them: close the range at
	// the row terminator.
	from := g.PointToIndex(terminal.Point{Column: 0, Row: end.Row})
	if from < 0 {
		return rel
	}
	if begin > from && g.IndexToPoint(begin).Row == end.Row {
		from = begin
	}
	for i := from; i < len(text); i++ {
		if text[i] == '\n' {
			return Offset(i)
		}
		if g.IndexToPoint(i).Row > end.Row {
			return Offset(i)
		}
	}
	return Offset(len(text))
}

// ObjectToRange resolves info against the current geometry.
func ObjectToRange(g terminal.Grid, info RangeInfo) terminal.Range {
	text := []rune(g.Text())
	last := lastRow(g, len(text))

	begin := resolve(g, info.Start, text, last, false)
	end := resolve(g, info.End, text, last, true)
	if o, ok := info.End.(Offset); ok {
		if p, ok := wrappedEnd(g, text, int(o)); ok && !p.Less(begin) {
			end = p
		}
	}
	return terminal.NewRange(begin, end)
}

// wrappedEnd reports the end-of-row point for an end offset that starts a
// soft-wrapped continuation row.
func wrappedEnd(g terminal.Grid, text []rune, o int) (terminal.Point, bool) {
	if o <= 0 || o >= len(text) || text[o-1] == '\n' || text[o] == '\n' {
		return terminal.Point{}, false
	}
	prev := g.IndexToPoint(o - 1)
	if g.IndexToPoint(o).Row <= prev.Row {
		return terminal.Point{}, false
	}
	return terminal.Point{Column: prev.Column + 1, Row: prev.Row}, true
}

func resolve(g terminal.Grid, a Anchor, text []rune, last int, isEnd bool) terminal.Point {
	switch a := a.(type) {
	case Offset:
		o := min(max(int(a), 0), len(text))
		p := g.IndexToPoint(o)
		if isEnd && (o == len(text) || text[o] == '\n') {
			if o == len(text) && o > 0 {
				p.Row = last
			}
			p.Column = g.BufferWidth()
		}
		return p
	case Relative:
		col := a.Column
		if col < 0 {
			col = g.BufferWidth()
		}
		return terminal.Point{Column: col, Row: last + a.DRow}
	default:
		return terminal.Invalid
	}
}
