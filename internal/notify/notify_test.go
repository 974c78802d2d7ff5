package notify

import "testing"

func TestFeedDeliversInOrder(t *testing.T) {
	var f Feed[int]
	var got []string

	f.Subscribe(func(v int) { got = append(got, "a") })
	f.Subscribe(func(v int) { got = append(got, "b") })
	f.Emit(1)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("delivery order = %v, want [a b]", got)
	}
}

func TestSubscriptionPauseResume(t *testing.T) {
	var f Feed[string]
	count := 0
	sub := f.Subscribe(func(string) { count++ })

	sub.Pause()
	f.Emit("dropped")
	if count != 0 {
		t.Fatalf("paused subscription received %d events", count)
	}
	if sub.State() != StatePaused {
		t.Errorf("State() = %v, want paused", sub.State())
	}

	sub.Resume()
	f.Emit("delivered")
	if count != 1 {
		t.Errorf("resumed subscription received %d events, want 1", count)
	}
}

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	var f Feed[int]
	sub := f.Subscribe(func(int) {})
	other := f.Subscribe(func(int) {})

	sub.Cancel()
	sub.Cancel()

	if f.Len() != 1 {
		t.Fatalf("Len() = %d after cancel, want 1", f.Len())
	}
	if sub.State() != StateCancelled {
		t.Errorf("State() = %v, want cancelled", sub.State())
	}

	// Resume must not revive a cancelled subscription.
	sub.Resume()
	if sub.IsActive() {
		t.Error("cancelled subscription became active after Resume")
	}
	if !other.IsActive() {
		t.Error("unrelated subscription was affected by cancel")
	}
}

func TestCancelInsideCallback(t *testing.T) {
	var f Feed[int]
	calls := 0
	var sub *Subscription
	sub = f.Subscribe(func(int) {
		calls++
		sub.Cancel()
	})

	f.Emit(1)
	f.Emit(2)

	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestSubscriptionIDsAreUnique(t *testing.T) {
	var f Feed[int]
	a := f.Subscribe(func(int) {})
	b := f.Subscribe(func(int) {})

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("IDs not unique: %q, %q", a.ID(), b.ID())
	}
}
