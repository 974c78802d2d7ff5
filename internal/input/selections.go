package input

import (
	"github.com/Gaurav-Gosain/termtouch/internal/logging"
	"github.com/Gaurav-Gosain/termtouch/internal/notify"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

var logger = logging.New("input")

type trackedRange struct {
	r    terminal.Range
	info RangeInfo
}

// SelectionTracker mirrors a grid's selection collection as RangeInfo values
// and rewrites the collection from them whenever the grid is resized.
type SelectionTracker struct {
	grid    terminal.Grid
	entries []trackedRange

	selSub  *notify.Subscription
	propSub *notify.Subscription
	closed  bool
}

// NewSelectionTracker starts tracking the selections of g. Call Close when
// done.
func NewSelectionTracker(g terminal.Grid) *SelectionTracker {
	t := &SelectionTracker{grid: g}
	t.rebuild()
	t.selSub = g.Selections().Changed().Subscribe(t.onSelectionsChanged)
	t.propSub = g.PropertyChanged().Subscribe(t.onPropertyChanged)
	return t
}

// Close stops tracking. It is safe to call more than once.
func (t *SelectionTracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.selSub.Cancel()
	t.propSub.Cancel()
}

// Len returns the number of tracked selections.
func (t *SelectionTracker) Len() int {
	return len(t.entries)
}

// Ranges returns the tracked ranges in collection order.
func (t *SelectionTracker) Ranges() []terminal.Range {
	out := make([]terminal.Range, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.r
	}
	return out
}

// Info returns the anchors of the selection at index i.
func (t *SelectionTracker) Info(i int) (RangeInfo, bool) {
	if i < 0 || i >= len(t.entries) {
		return RangeInfo{}, false
	}
	return t.entries[i].info, true
}

func (t *SelectionTracker) track(r terminal.Range) trackedRange {
	return trackedRange{r: r, info: RangeToObject(t.grid, r)}
}

// rebuild recreates the mirror from the live collection.
func (t *SelectionTracker) rebuild() {
	ranges := t.grid.Selections().All()
	t.entries = make([]trackedRange, len(ranges))
	for i, r := range ranges {
		t.entries[i] = t.track(r)
	}
}

func (t *SelectionTracker) onSelectionsChanged(c terminal.SelectionChange) {
	if !t.apply(c) {
		logger.Warn("selection change out of range, rebuilding",
			"action", c.Action,
			"old_index", c.OldIndex,
			"new_index", c.NewIndex,
			"tracked", len(t.entries),
		)
		t.rebuild()
		return
	}
	if len(t.entries) != t.grid.Selections().Len() {
		logger.Warn("selection mirror diverged, rebuilding",
			"tracked", len(t.entries),
			"live", t.grid.Selections().Len(),
		)
		t.rebuild()
	}
}

// apply mirrors one change. It returns false when the change does not fit
// the mirror.
func (t *SelectionTracker) apply(c terminal.SelectionChange) bool {
	switch c.Action {
	case terminal.ActionAdd:
		if c.NewIndex < 0 || c.NewIndex > len(t.entries) {
			return false
		}
		added := make([]trackedRange, 0, len(c.NewItems)+len(t.entries)-c.NewIndex)
		for _, r := range c.NewItems {
			added = append(added, t.track(r))
		}
		added = append(added, t.entries[c.NewIndex:]...)
		t.entries = append(t.entries[:c.NewIndex], added...)

	case terminal.ActionRemove:
		end := c.OldIndex + len(c.OldItems)
		if c.OldIndex < 0 || end > len(t.entries) {
			return false
		}
		t.entries = append(t.entries[:c.OldIndex], t.entries[end:]...)

	case terminal.ActionReplace:
		if c.NewIndex < 0 || c.NewIndex+len(c.NewItems) > len(t.entries) {
			return false
		}
		for i, r := range c.NewItems {
			t.entries[c.NewIndex+i] = t.track(r)
		}

	case terminal.ActionMove:
		n := len(t.entries)
		if c.OldIndex < 0 || c.OldIndex >= n || c.NewIndex < 0 || c.NewIndex >= n {
			return false
		}
		e := t.entries[c.OldIndex]
		t.entries = append(t.entries[:c.OldIndex], t.entries[c.OldIndex+1:]...)
		t.entries = append(t.entries[:c.NewIndex], append([]trackedRange{e}, t.entries[c.NewIndex:]...)...)

	case terminal.ActionReset:
		t.rebuild()
	}
	return true
}

func (t *SelectionTracker) onPropertyChanged(p terminal.Property) {
	switch p {
	case terminal.PropertyBufferWidth, terminal.PropertyBufferHeight:
		t.Resync()
	}
}

// Resync regenerates every selection from its anchors under the current
// geometry and replaces the grid's collection with the result. Other
// listeners of the collection observe a single Reset.
func (t *SelectionTracker) Resync() {
	if len(t.entries) == 0 {
		return
	}
	ranges := make([]terminal.Range, len(t.entries))
	for i, e := range t.entries {
		ranges[i] = ObjectToRange(t.grid, e.info)
	}

	t.replace(ranges)

	logger.Debug("selections resynced",
		"count", len(ranges),
		"width", t.grid.BufferWidth(),
		"height", t.grid.BufferHeight(),
	)
}

func (t *SelectionTracker) replace(ranges []terminal.Range) {
	t.selSub.Pause()
	defer t.selSub.Resume()

	t.grid.Selections().ReplaceAll(ranges)
	t.entries = make([]trackedRange, len(ranges))
	for i, r := range ranges {
		t.entries[i] = t.track(r)
	}
}
