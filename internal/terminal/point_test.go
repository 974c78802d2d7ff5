package terminal

import "testing"

func TestPointCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want int
	}{
		{"same", Point{3, 2}, Point{3, 2}, 0},
		{"earlier row wins over column", Point{9, 1}, Point{0, 2}, -1},
		{"same row by column", Point{4, 2}, Point{3, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNewRangeNormalizes(t *testing.T) {
	r := NewRange(Point{5, 4}, Point{2, 1})
	want := Range{Begin: Point{2, 1}, End: Point{5, 4}}
	if r != want {
		t.Errorf("NewRange = %v, want %v", r, want)
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Begin: Point{2, 1}, End: Point{4, 3}}

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{2, 1}, true},
		{Point{79, 2}, true},
		{Point{3, 3}, true},
		{Point{4, 3}, false},
		{Point{1, 1}, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if Empty.Contains(Point{0, 0}) {
		t.Error("Empty range contains a point")
	}
}

func TestRangeUnion(t *testing.T) {
	word := Range{Begin: Point{5, 3}, End: Point{10, 3}}
	drag := Range{Begin: Point{7, 3}, End: Point{3, 5}}

	got := word.Union(drag)
	want := Range{Begin: Point{5, 3}, End: Point{3, 5}}
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}

	if got := Empty.Union(word); got != word {
		t.Errorf("Empty.Union(word) = %v, want %v", got, word)
	}
	if got := word.Union(Empty); got != word {
		t.Errorf("word.Union(Empty) = %v, want %v", got, word)
	}
}

func TestVec2Distance(t *testing.T) {
	if got := (Vec2{0, 0}).Distance(Vec2{3, 4}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}
