package terminal

import "github.com/Gaurav-Gosain/termtouch/internal/notify"

// ChangeAction describes how a Selections collection changed.
type ChangeAction int

const (
	// ActionAdd carries the inserted items in NewItems starting at NewIndex.
	ActionAdd ChangeAction = iota
	// ActionRemove carries the removed items in OldItems starting at OldIndex.
	ActionRemove
	// ActionReplace carries paired OldItems/NewItems at NewIndex.
	ActionReplace
	// ActionMove carries a single item moved from OldIndex to NewIndex.
	ActionMove
	// ActionReset means the collection changed wholesale; listeners re-read it.
	ActionReset
)

// String returns a string representation of the action.
func (a ChangeAction) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionMove:
		return "move"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// SelectionChange is the payload published by Selections.Changed.
type SelectionChange struct {
	Action   ChangeAction
	NewItems []Range
	OldItems []Range
	NewIndex int
	OldIndex int
}

// Selections is the ordered, observable collection of committed selection
// ranges owned by a Grid. It is not safe for concurrent use.
type Selections struct {
	items   []Range
	changed notify.Feed[SelectionChange]
}

// Changed returns the feed of collection changes.
func (s *Selections) Changed() *notify.Feed[SelectionChange] {
	return &s.changed
}

// Len returns the number of ranges.
func (s *Selections) Len() int {
	return len(s.items)
}

// At returns the range at index i. The second result is false when i is out
// of bounds.
func (s *Selections) At(i int) (Range, bool) {
	if i < 0 || i >= len(s.items) {
		return Empty, false
	}
	return s.items[i], true
}

// All returns a copy of the ranges in order.
func (s *Selections) All() []Range {
	out := make([]Range, len(s.items))
	copy(out, s.items)
	return out
}

// IndexOf returns the index of the first range equal to r, or -1.
func (s *Selections) IndexOf(r Range) int {
	for i, item := range s.items {
		if item == r {
			return i
		}
	}
	return -1
}

// Add appends r.
func (s *Selections) Add(r Range) {
	s.Insert(len(s.items), r)
}

// Insert places r at index i, clamped to the collection bounds.
func (s *Selections) Insert(i int, r Range) {
	i = clampIndex(i, len(s.items))
	s.items = append(s.items, Empty)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = r

	s.changed.Emit(SelectionChange{
		Action:   ActionAdd,
		NewItems: []Range{r},
		NewIndex: i,
		OldIndex: -1,
	})
}

// RemoveAt removes the range at index i. It returns false when i is out of
// bounds.
func (s *Selections) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	old := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)

	s.changed.Emit(SelectionChange{
		Action:   ActionRemove,
		OldItems: []Range{old},
		OldIndex: i,
		NewIndex: -1,
	})
	return true
}

// Remove removes the first range equal to r.
func (s *Selections) Remove(r Range) bool {
	return s.RemoveAt(s.IndexOf(r))
}

// Set replaces the range at index i.
func (s *Selections) Set(i int, r Range) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	old := s.items[i]
	s.items[i] = r

	s.changed.Emit(SelectionChange{
		Action:   ActionReplace,
		OldItems: []Range{old},
		NewItems: []Range{r},
		OldIndex: i,
		NewIndex: i,
	})
	return true
}

// Move relocates the range at oldIndex to newIndex.
func (s *Selections) Move(oldIndex, newIndex int) bool {
	n := len(s.items)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return false
	}
	item := s.items[oldIndex]
	s.items = append(s.items[:oldIndex], s.items[oldIndex+1:]...)
	s.items = append(s.items, Empty)
	copy(s.items[newIndex+1:], s.items[newIndex:])
	s.items[newIndex] = item

	s.changed.Emit(SelectionChange{
		Action:   ActionMove,
		OldItems: []Range{item},
		NewItems: []Range{item},
		OldIndex: oldIndex,
		NewIndex: newIndex,
	})
	return true
}

// Clear removes every range.
func (s *Selections) Clear() {
	s.items = s.items[:0]
	s.changed.Emit(SelectionChange{Action: ActionReset, OldIndex: -1, NewIndex: -1})
}

// ReplaceAll swaps the whole collection for ranges and publishes a single
// Reset once the new contents are in place.
func (s *Selections) ReplaceAll(ranges []Range) {
	s.items = append(s.items[:0:0], ranges...)
	s.changed.Emit(SelectionChange{Action: ActionReset, OldIndex: -1, NewIndex: -1})
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
