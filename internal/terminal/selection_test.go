package terminal

import "testing"

func rangeAt(row int) Range {
	return Range{Begin: Point{0, row}, End: Point{4, row}}
}

func record(s *Selections) *[]SelectionChange {
	var got []SelectionChange
	s.Changed().Subscribe(func(c SelectionChange) { got = append(got, c) })
	return &got
}

func TestSelectionsAddRemove(t *testing.T) {
	var s Selections
	got := record(&s)

	s.Add(rangeAt(0))
	s.Add(rangeAt(1))
	s.Insert(0, rangeAt(2))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if first, _ := s.At(0); first != rangeAt(2) {
		t.Errorf("At(0) = %v, want %v", first, rangeAt(2))
	}

	if !s.Remove(rangeAt(0)) {
		t.Fatal("Remove returned false for a present range")
	}
	if s.Remove(rangeAt(9)) {
		t.Error("Remove returned true for a missing range")
	}

	changes := *got
	if len(changes) != 4 {
		t.Fatalf("observed %d changes, want 4", len(changes))
	}
	last := changes[3]
	if last.Action != ActionRemove || last.OldIndex != 1 || last.OldItems[0] != rangeAt(0) {
		t.Errorf("remove change = %+v", last)
	}
	if changes[2].NewIndex != 0 {
		t.Errorf("insert NewIndex = %d, want 0", changes[2].NewIndex)
	}
}

func TestSelectionsSetAndMove(t *testing.T) {
	var s Selections
	s.Add(rangeAt(0))
	s.Add(rangeAt(1))
	s.Add(rangeAt(2))
	got := record(&s)

	if !s.Set(1, rangeAt(7)) {
		t.Fatal("Set returned false")
	}
	if !s.Move(0, 2) {
		t.Fatal("Move returned false")
	}

	want := []Range{rangeAt(7), rangeAt(2), rangeAt(0)}
	all := s.All()
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, all[i], want[i])
		}
	}

	changes := *got
	if changes[0].Action != ActionReplace || changes[0].OldItems[0] != rangeAt(1) {
		t.Errorf("replace change = %+v", changes[0])
	}
	if changes[1].Action != ActionMove || changes[1].OldIndex != 0 || changes[1].NewIndex != 2 {
		t.Errorf("move change = %+v", changes[1])
	}
}

func TestSelectionsReplaceAllEmitsSingleReset(t *testing.T) {
	var s Selections
	s.Add(rangeAt(0))

	var sizes []int
	s.Changed().Subscribe(func(c SelectionChange) {
		if c.Action == ActionReset {
			sizes = append(sizes, s.Len())
		}
	})

	s.ReplaceAll([]Range{rangeAt(3), rangeAt(4)})

	if len(sizes) != 1 || sizes[0] != 2 {
		t.Errorf("reset observations = %v, want one observation of 2 ranges", sizes)
	}
}

func TestSelectionsOutOfBounds(t *testing.T) {
	var s Selections
	if s.RemoveAt(0) || s.Set(0, rangeAt(0)) || s.Move(0, 0) {
		t.Error("out-of-bounds mutation reported success")
	}
	if _, ok := s.At(-1); ok {
		t.Error("At(-1) reported ok")
	}
}
