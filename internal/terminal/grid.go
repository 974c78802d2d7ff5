package terminal

import "github.com/Gaurav-Gosain/termtouch/internal/notify"

// Property names a value whose change is announced on a PropertyChanged feed.
type Property int

const (
	PropertyBufferWidth Property = iota
	PropertyBufferHeight
	PropertyVisibleIndex
	PropertyScrolling
	PropertySelectingRange
	PropertyCommand
	PropertyCommandSelection
)

// String returns the property name.
func (p Property) String() string {
	switch p {
	case PropertyBufferWidth:
		return "buffer_width"
	case PropertyBufferHeight:
		return "buffer_height"
	case PropertyVisibleIndex:
		return "visible_index"
	case PropertyScrolling:
		return "scrolling"
	case PropertySelectingRange:
		return "selecting_range"
	case PropertyCommand:
		return "command"
	case PropertyCommandSelection:
		return "command_selection"
	default:
		return "unknown"
	}
}

// Grid is the character grid the input core drives. Offsets index runes of
// the logical text stream returned by Text.
type Grid interface {
	// BufferWidth is the number of columns per row.
	BufferWidth() int
	// BufferHeight is the number of visible rows.
	BufferHeight() int

	// Text returns the logical character stream, newlines included.
	Text() string
	// IndexToPoint maps an offset to its grid point. Offset len(Text) maps
	// to the position after the last character.
	IndexToPoint(offset int) Point
	// PointToIndex maps a point to the offset of the character under it, or
	// -1 when there is none.
	PointToIndex(p Point) int
	// WordRange returns the run of word characters on p's row around p, or
	// Empty when p is not on a character.
	WordRange(p Point) Range
	// ScreenToPoint projects a screen position onto the grid. Positions off
	// the grid resolve to Invalid.
	ScreenToPoint(pos Vec2) Point
	// CellSize returns the screen size of one cell, spacing included.
	CellSize() Vec2

	// Selections is the committed selection collection.
	Selections() *Selections
	// SelectingRange is the transient range shown while a gesture is
	// selecting.
	SelectingRange() Range
	SetSelectingRange(r Range)

	VisibleIndex() int
	SetVisibleIndex(i int)
	MinVisibleIndex() int
	MaxVisibleIndex() int
	IsScrolling() bool
	SetScrolling(scrolling bool)

	// Focus requests input focus for the widget.
	Focus()
	// ScrollToCursor makes the row holding the cursor visible.
	ScrollToCursor()

	// PropertyChanged publishes geometry and view changes.
	PropertyChanged() *notify.Feed[Property]
}

// ExecutedEvent is published once a command has finished running.
type ExecutedEvent struct {
	Command string
	Output  string
	Err     error
}

// Terminal is the command-line side of the widget: the in-progress command
// and its navigation helpers.
type Terminal interface {
	Command() string
	SetCommand(text string)
	CommandSelection() Span
	SetCommandSelection(s Span)

	// Execute runs the current command. Completion is announced on Executed.
	Execute()

	PreviousHistory()
	NextHistory()
	PreviousCompletion()
	NextCompletion()

	Executed() *notify.Feed[ExecutedEvent]
	PropertyChanged() *notify.Feed[Property]
}
