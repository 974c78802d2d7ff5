// Package terminal defines the geometry types and collaborator contracts
// shared by the touch input core and the terminal widgets that host it.
package terminal

import (
	"fmt"
	"math"
)

// Point is a (column, row) coordinate in the buffer grid.
type Point struct {
	Column int
	Row    int
}

// Invalid means "no character under this screen location".
var Invalid = Point{Column: -1, Row: -1}

// IsValid reports whether p is not the Invalid sentinel.
func (p Point) IsValid() bool {
	return p != Invalid
}

// Compare orders points by row, then column.
func (p Point) Compare(other Point) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Less reports whether p sorts before other.
func (p Point) Less(other Point) bool {
	return p.Compare(other) < 0
}

// Next returns the point one column to the right.
func (p Point) Next() Point {
	return Point{Column: p.Column + 1, Row: p.Row}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
}

// MinPoint returns the earlier of two points.
func MinPoint(a, b Point) Point {
	if b.Less(a) {
		return b
	}
	return a
}

// MaxPoint returns the later of two points.
func MaxPoint(a, b Point) Point {
	if a.Less(b) {
		return b
	}
	return a
}

// Range is a contiguous span of the buffer. Begin is inclusive and End is
// exclusive. An End column equal to the buffer width extends the range to
// the end of that row.
type Range struct {
	Begin Point
	End   Point
}

// Empty denotes no selection.
var Empty = Range{Begin: Invalid, End: Invalid}

// NewRange returns the range spanning a and b with Begin <= End.
func NewRange(a, b Point) Range {
	if b.Less(a) {
		a, b = b, a
	}
	return Range{Begin: a, End: b}
}

// IsEmpty reports whether r selects nothing.
func (r Range) IsEmpty() bool {
	return r == Empty || !r.Begin.IsValid() || !r.Begin.Less(r.End)
}

// Contains reports whether p lies inside r.
func (r Range) Contains(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return !p.Less(r.Begin) && p.Less(r.End)
}

// Union returns the outer bound of r and other. An empty operand yields the
// other one unchanged.
func (r Range) Union(other Range) Range {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Range{
		Begin: MinPoint(r.Begin, other.Begin),
		End:   MaxPoint(r.End, other.End),
	}
}

func (r Range) String() string {
	if r == Empty {
		return "[]"
	}
	return fmt.Sprintf("[%s-%s)", r.Begin, r.End)
}

// Span is a run of runes inside a single-line string, such as the selection
// inside the command being edited.
type Span struct {
	Start  int
	Length int
}

// End returns the index one past the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// Vec2 is a position or displacement in screen units. Y grows downward.
type Vec2 struct {
	X float64
	Y float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between v and other.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Len()
}
