package game

import "testing"

func TestWorld_DeregisterHidesBeforeFlush(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, nil)
	a := NewCombatant(GruntProfile(), V(100, 600))
	b := NewCombatant(GruntProfile(), V(300, 600))
	w.RegisterCombatant(a)
	w.RegisterCombatant(b)

	snap := w.Combatants()
	w.Deregister(a.ID())

	if len(snap) != 2 {
		t.Fatalf("expected earlier snapshot untouched, got %d", len(snap))
	}
	if got := w.Combatants(); len(got) != 1 || got[0] != b {
		t.Fatalf("expected only b after deregister, got %d", len(got))
	}
	if _, ok := w.Lookup(a.ID()); ok {
		t.Fatal("expected lookup of a deregistered id to fail")
	}
	if n := w.Flush(); n != 1 {
		t.Fatalf("expected 1 flushed, got %d", n)
	}
	if w.Count() != 1 {
		t.Fatalf("expected 1 registered, got %d", w.Count())
	}
}

func TestWorld_DeregisterTwiceIsNoop(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, nil)
	a := NewCombatant(GruntProfile(), V(100, 600))
	w.RegisterCombatant(a)
	w.Deregister(a.ID())
	w.Deregister(a.ID())
	if n := w.Flush(); n != 1 {
		t.Fatalf("expected a single pending removal, got %d", n)
	}
}

func TestWorld_IsLiveExcludesDying(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, nil)
	a := NewCombatant(GruntProfile(), V(100, 600))
	w.RegisterCombatant(a)
	if !w.IsLive(a.ID()) {
		t.Fatal("expected fresh combatant to be live")
	}
	a.Damage(10, false)
	if w.IsLive(a.ID()) {
		t.Fatal("expected dying combatant not to be live")
	}
	if !w.Registered(a.ID()) {
		t.Fatal("expected dying combatant still registered")
	}
}

func TestWorld_CombatantsWithinIsStrict(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, nil)
	a := NewCombatant(GruntProfile(), V(100, 600))
	b := NewCombatant(GruntProfile(), V(180, 600))
	w.RegisterCombatant(a)
	w.RegisterCombatant(b)

	got := w.CombatantsWithin(V(100, 600), 80)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected only a strictly inside radius 80, got %d", len(got))
	}
}

func TestWorld_LookupIgnoresProjectiles(t *testing.T) {
	ts := NewTestSim(WithCycle(quietCycle))
	p := shoot(ts, V(200, 500), V(1, 0), FactionPlayer)
	if _, ok := ts.Sim.World().Lookup(p.ID()); ok {
		t.Fatal("expected projectile ids not to resolve as combatants")
	}
	if !ts.Sim.World().Registered(p.ID()) {
		t.Fatal("expected projectile registered")
	}
}

func TestWorld_SegmentBlocked(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, CoverGeometry{wall(300, 0, 20, 700)})
	if !w.SegmentBlocked(V(100, 300), V(500, 300)) {
		t.Fatal("expected wall to block the segment")
	}
	if w.SegmentBlocked(V(100, 300), V(250, 300)) {
		t.Fatal("expected segment short of the wall to be clear")
	}
}
