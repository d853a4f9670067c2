package game

import "testing"

func TestTimeline_RunsInTickThenScheduleOrder(t *testing.T) {
	tl := NewTimeline(nil)
	var got []string
	tl.After(3, 0, 0, "c", func() { got = append(got, "c") })
	tl.After(1, 0, 0, "a", func() { got = append(got, "a") })
	tl.After(3, 0, 0, "d", func() { got = append(got, "d") })
	tl.After(2, 0, 0, "b", func() { got = append(got, "b") })

	for tick := 1; tick <= 3; tick++ {
		tl.Run(tick)
	}

	want := "abcd"
	var s string
	for _, g := range got {
		s += g
	}
	if s != want {
		t.Fatalf("expected order %q, got %q", want, s)
	}
}

func TestTimeline_ZeroDelayRunsNextTick(t *testing.T) {
	tl := NewTimeline(nil)
	ran := false
	tl.After(0, 0, 0, "now", func() { ran = true })
	tl.Run(0)
	if ran {
		t.Fatal("expected zero delay to wait for the next tick")
	}
	tl.Run(1)
	if !ran {
		t.Fatal("expected action to run on the next tick")
	}
}

func TestTimeline_ScheduledWhileRunningWaits(t *testing.T) {
	tl := NewTimeline(nil)
	inner := 0
	tl.After(1, 0, 0, "outer", func() {
		tl.After(0, 0, 0, "inner", func() { inner++ })
	})
	tl.Run(1)
	if inner != 0 {
		t.Fatal("expected action scheduled during Run to wait")
	}
	tl.Run(2)
	if inner != 1 {
		t.Fatalf("expected inner to run once, got %d", inner)
	}
}

func TestTimeline_CancelOwner(t *testing.T) {
	tl := NewTimeline(nil)
	ran := 0
	tl.After(1, 7, 0, "mine", func() { ran++ })
	tl.After(2, 7, 0, "mine", func() { ran++ })
	tl.After(2, 8, 0, "other", func() { ran += 10 })

	if n := tl.CancelOwner(7); n != 2 {
		t.Fatalf("expected 2 cancelled, got %d", n)
	}
	if tl.Pending() != 1 {
		t.Fatalf("expected 1 pending, got %d", tl.Pending())
	}
	tl.Run(5)
	if ran != 10 {
		t.Fatalf("expected only the other owner's action to run, got %d", ran)
	}
}

func TestTimeline_StaleSubjectDropped(t *testing.T) {
	live := map[EntityID]bool{1: true}
	tl := NewTimeline(func(id EntityID) bool { return live[id] })
	var stale []string
	tl.onStale = func(label string, _ EntityID) { stale = append(stale, label) }

	ran := 0
	tl.After(1, 0, 1, "shot", func() { ran++ })
	tl.After(1, 0, 2, "ghost_shot", func() { ran += 10 })
	tl.Run(1)

	if ran != 1 {
		t.Fatalf("expected only the live subject's action, got %d", ran)
	}
	if len(stale) != 1 || stale[0] != "ghost_shot" {
		t.Fatalf("expected ghost_shot reported stale, got %v", stale)
	}
}

func TestTimeline_Clear(t *testing.T) {
	tl := NewTimeline(nil)
	tl.After(1, 0, 0, "x", func() { t.Fatal("cleared action ran") })
	tl.Clear()
	tl.Run(10)
	if tl.Pending() != 0 {
		t.Fatalf("expected empty timeline, got %d", tl.Pending())
	}
}
