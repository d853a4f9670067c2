package game

import "testing"

func TestCombatFeed_SkipsNoisyEvents(t *testing.T) {
	f := NewCombatFeed()
	f.Emit(Event{Kind: EventFired, Label: "player"})
	f.Emit(Event{Kind: EventHit, Label: "grunt"})
	if f.Len() != 0 {
		t.Fatalf("expected shots and hits to be skipped, got %d entries", f.Len())
	}
	f.Emit(Event{Kind: EventDefeated, Label: "grunt", Tick: 12})
	f.Emit(Event{Kind: EventVictory, Tick: 13})
	got := f.Recent()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Message != "grunt down" || got[1].Label != "--" {
		t.Fatalf("expected grunt down then an unlabelled victory, got %+v", got)
	}
}

func TestCombatFeed_WrapsOldestFirst(t *testing.T) {
	f := NewCombatFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, "grunt", FactionEnemy, EventDefeated, "down")
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", feedMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
}
