package input

import (
	"testing"

	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
	"github.com/Gaurav-Gosain/termtouch/internal/vt"
)

func TestTrackerMirrorsChanges(t *testing.T) {
	b := newScenarioBuffer(t)
	sel := b.Selections()
	sel.Add(rng(0, 0, 3, 0))

	tr := NewSelectionTracker(b)
	defer tr.Close()

	if tr.Len() != 1 {
		t.Fatalf("initial Len() = %d, want 1", tr.Len())
	}

	sel.Add(rng(0, 1, 3, 1))
	sel.Insert(0, rng(0, 2, 3, 2))
	sel.Set(1, rng(1, 0, 4, 0))
	sel.Move(0, 2)
	sel.RemoveAt(0)

	want := sel.All()
	got := tr.Ranges()
	if len(got) != len(want) {
		t.Fatalf("tracked %d ranges, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ranges()[%d] = %v, want %v", i, got[i], want[i])
		}
		info, ok := tr.Info(i)
		if !ok {
			t.Fatalf("Info(%d) missing", i)
		}
		if r := ObjectToRange(b, info); r != want[i] {
			t.Errorf("Info(%d) resolves to %v, want %v", i, r, want[i])
		}
	}

	sel.Clear()
	if tr.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", tr.Len())
	}
}

func TestTrackerKeepsDuplicateRanges(t *testing.T) {
	b := newScenarioBuffer(t)
	tr := NewSelectionTracker(b)
	defer tr.Close()

	r := rng(0, 0, 3, 0)
	b.Selections().Add(r)
	b.Selections().Add(r)
	b.Selections().RemoveAt(0)

	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestTrackerResyncOnHeightChange(t *testing.T) {
	b := newScenarioBuffer(t)
	tr := NewSelectionTracker(b)
	defer tr.Close()

	sel := b.Selections()
	sel.Add(rng(5, 10, 20, 10))
	sel.Add(rng(0, 11, 10, 12))
	texts := []string{b.TextOf(rng(5, 10, 20, 10)), b.TextOf(rng(0, 11, 10, 12))}

	var resets []int
	sel.Changed().Subscribe(func(c terminal.SelectionChange) {
		if c.Action == terminal.ActionReset {
			resets = append(resets, sel.Len())
		}
	})

	if err := b.Resize(80, 30); err != nil {
		t.Fatal(err)
	}

	want := []terminal.Range{rng(5, 16, 20, 16), rng(0, 17, 10, 18)}
	got := sel.All()
	if len(got) != len(want) {
		t.Fatalf("got %d selections after resize, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection %d = %v, want %v", i, got[i], want[i])
		}
		if text := b.TextOf(got[i]); text != texts[i] {
			t.Errorf("selection %d text = %q, want %q", i, text, texts[i])
		}
	}

	if len(resets) != 1 || resets[0] != 2 {
		t.Errorf("other listener saw resets %v, want one reset with 2 ranges", resets)
	}
	if tr.Len() != 2 {
		t.Errorf("tracker Len() = %d, want 2", tr.Len())
	}
}

func TestTrackerResyncOnWidthChange(t *testing.T) {
	b := newScenarioBuffer(t)
	tr := NewSelectionTracker(b)
	defer tr.Close()

	r := rng(4, 10, 30, 10)
	want := b.TextOf(r)
	b.Selections().Add(r)

	if err := b.Resize(20, 24); err != nil {
		t.Fatal(err)
	}

	got, _ := b.Selections().At(0)
	if text := b.TextOf(got); text != want {
		t.Errorf("text after reflow = %q, want %q", text, want)
	}
}

func TestTrackerResyncKeepsWrappedRowEnd(t *testing.T) {
	b, err := vt.NewBuffer(10, 5, vt.DefaultMetrics())
	if err != nil {
		t.Fatal(err)
	}
	b.Write("abc defghijklm\nxyz")
	tr := NewSelectionTracker(b)
	defer tr.Close()

	word := rng(4, 0, 10, 0)
	b.Selections().Add(word)

	for _, width := range []int{4, 10} {
		if err := b.Resize(width, 5); err != nil {
			t.Fatal(err)
		}
		got, _ := b.Selections().At(0)
		if text := b.TextOf(got); text != "defghi" {
			t.Errorf("width %d: text = %q, want %q", width, text, "defghi")
		}
	}
	if got, _ := b.Selections().At(0); got != word {
		t.Errorf("selection after restoring the width = %v, want %v", got, word)
	}
}

func TestTrackerRecoversFromBadIndex(t *testing.T) {
	b := newScenarioBuffer(t)
	tr := NewSelectionTracker(b)
	defer tr.Close()

	b.Selections().Add(rng(0, 0, 3, 0))
	b.Selections().Changed().Emit(terminal.SelectionChange{
		Action:   terminal.ActionRemove,
		OldItems: []terminal.Range{rng(0, 0, 3, 0)},
		OldIndex: 7,
	})

	if tr.Len() != b.Selections().Len() {
		t.Errorf("tracker Len() = %d, live Len() = %d", tr.Len(), b.Selections().Len())
	}
}

func TestTrackerClose(t *testing.T) {
	b := newScenarioBuffer(t)
	tr := NewSelectionTracker(b)

	tr.Close()
	tr.Close()

	b.Selections().Add(rng(0, 0, 3, 0))
	if tr.Len() != 0 {
		t.Errorf("closed tracker still mirrors changes: Len() = %d", tr.Len())
	}
	if b.Selections().Changed().Len() != 0 || b.PropertyChanged().Len() != 0 {
		t.Error("closed tracker left subscriptions behind")
	}
}
