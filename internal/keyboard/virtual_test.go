package keyboard

import "testing"

func collect(v *Virtual) *[]Event {
	var got []Event
	v.Events().Subscribe(func(e Event) { got = append(got, e) })
	return &got
}

func TestVirtualEditing(t *testing.T) {
	v := NewVirtual()
	got := collect(v)

	v.Open("ls")
	v.Insert(" -la")
	v.Backspace()
	v.Submit()

	wantKinds := []EventKind{Opened, Changed, Changed, Done}
	if len(*got) != len(wantKinds) {
		t.Fatalf("got %d events, want %d", len(*got), len(wantKinds))
	}
	for i, k := range wantKinds {
		if (*got)[i].Kind != k {
			t.Errorf("event %d = %v, want %v", i, (*got)[i].Kind, k)
		}
	}
	if last := (*got)[3]; last.Text != "ls -l" {
		t.Errorf("Done text = %q, want %q", last.Text, "ls -l")
	}
	if v.IsOpen() {
		t.Error("keyboard still open after Submit")
	}
}

func TestVirtualCaret(t *testing.T) {
	v := NewVirtual()
	v.Open("echo")
	v.MoveCaret(-2)
	v.Insert("X")

	if v.Text() != "ecXho" {
		t.Errorf("Text() = %q, want %q", v.Text(), "ecXho")
	}
	if sel := v.Selection(); sel.Start != 3 || sel.Length != 0 {
		t.Errorf("Selection() = %+v, want caret at 3", sel)
	}
}

func TestVirtualSetTextDeduplicates(t *testing.T) {
	v := NewVirtual()
	v.Open("abc")
	got := collect(v)

	v.SetText("abc")
	v.SetText("abd")

	if len(*got) != 1 {
		t.Errorf("got %d Changed events, want 1", len(*got))
	}
}

func TestVirtualClosedIgnoresInput(t *testing.T) {
	v := NewVirtual()
	got := collect(v)

	v.Insert("x")
	v.Backspace()
	v.Submit()
	v.Cancel()

	if len(*got) != 0 {
		t.Errorf("closed keyboard published %d events", len(*got))
	}
}
