package game

import "testing"

// cycleArena has four grunts and a cycle that never starts on its own.
func cycleArena() (*TestSim, []EntityID) {
	ts := NewTestSim(
		WithCycle(quietCycle),
		WithGrunt(600, 600),
		WithGrunt(750, 600),
		WithGrunt(900, 600),
		WithGrunt(1050, 600),
	)
	var ids []EntityID
	for _, g := range ts.All(KindGrunt) {
		ids = append(ids, g.ID())
	}
	return ts, ids
}

func TestAttackCycle_RoundRobin(t *testing.T) {
	ts, ids := cycleArena()
	ac := ts.Sim.Cycle()

	for round := 0; round < 2; round++ {
		for i, want := range ids {
			got, ok := ac.Select()
			if !ok || got != want {
				t.Fatalf("round %d slot %d: expected #%d, got #%d ok=%v", round, i, want, got, ok)
			}
			ac.Advance()
		}
	}
}

func TestAttackCycle_SkipsDyingShooter(t *testing.T) {
	ts, ids := cycleArena()
	ac := ts.Sim.Cycle()
	g, _ := ts.Sim.World().Lookup(ids[0])
	g.Damage(10, false)

	got, ok := ac.Select()
	if !ok || got != ids[1] {
		t.Fatalf("expected #%d after the first dies, got #%d", ids[1], got)
	}
	if ac.Len() != 3 {
		t.Fatalf("expected roster of 3, got %d", ac.Len())
	}
}

func TestAttackCycle_RemoveCurrentKeepsSuccessor(t *testing.T) {
	cases := []struct {
		name    string
		current int // roster slot of the shooter that gets removed
		next    int // slot in the original roster expected next
	}{
		{"first", 0, 1},
		{"middle", 2, 3},
		{"last", 3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, ids := cycleArena()
			ac := ts.Sim.Cycle()
			for i := 0; i < tc.current; i++ {
				ac.Select()
				ac.Advance()
			}
			cur, _ := ac.Select()
			if cur != ids[tc.current] {
				t.Fatalf("expected current #%d, got #%d", ids[tc.current], cur)
			}

			if !ac.Remove(cur) {
				t.Fatal("expected current shooter to be removed")
			}
			ac.Advance()
			got, ok := ac.Select()
			if !ok || got != ids[tc.next] {
				t.Fatalf("expected successor #%d, got #%d", ids[tc.next], got)
			}
		})
	}
}

func TestAttackCycle_RemoveBeforeIndexPreservesOrder(t *testing.T) {
	ts, ids := cycleArena()
	ac := ts.Sim.Cycle()
	ac.Select()
	ac.Advance()
	ac.Select()
	ac.Advance()
	cur, _ := ac.Select() // slot 2

	ac.Remove(ids[0])
	if got := ac.Current(); got != cur {
		t.Fatalf("expected current unchanged, got #%d", got)
	}
	ac.Advance()
	got, _ := ac.Select()
	if got != ids[3] {
		t.Fatalf("expected #%d after shifting, got #%d", ids[3], got)
	}
}

func TestAttackCycle_KillMidBurstHandsOverToSuccessor(t *testing.T) {
	ts := NewTestSim(
		WithPlayerHealth(1000),
		WithCycle(CycleConfig{StartDelay: 1, Shots: 3, ShotInterval: 10, SettleDelay: 1, HideTicks: 20, AdvanceDelay: 1, RetryDelay: 1}),
		WithGrunt(700, 600),
		WithGrunt(900, 600),
		WithGrunt(1100, 600),
	)
	grunts := ts.All(KindGrunt)

	first := ts.RunUntil(func(ts *TestSim) bool { return ts.SimLog.CountCategory("cycle", "select") == 1 }, 10)
	if first < 0 {
		dumpLog(t, ts)
		t.Fatal("expected a shooter to be selected")
	}
	sel, _ := ts.SimLog.FirstOf("cycle", "select")
	if sel.Entity != grunts[0].Label() {
		t.Fatalf("expected %s first, got %s", grunts[0].Label(), sel.Entity)
	}

	ts.RunTicks(4)
	grunts[0].Damage(10, false)

	if ts.RunUntil(func(ts *TestSim) bool { return ts.SimLog.CountCategory("cycle", "select") == 2 }, 60) < 0 {
		dumpLog(t, ts)
		t.Fatal("expected the cycle to move on after the shooter died")
	}
	next, _ := ts.SimLog.LastOf("cycle", "select")
	if next.Entity != grunts[1].Label() {
		dumpLog(t, ts)
		t.Fatalf("expected %s to take over, got %s", grunts[1].Label(), next.Entity)
	}
}

func TestAttackCycle_FullBurstThenHide(t *testing.T) {
	cfg := CycleConfig{StartDelay: 1, Shots: 3, ShotInterval: 10, SettleDelay: 1, HideTicks: 20, AdvanceDelay: 1, RetryDelay: 1}
	ts := NewTestSim(
		WithPlayerHealth(1000),
		WithVerbose(true),
		WithCycle(cfg),
		WithGrunt(700, 600),
		WithGrunt(900, 600),
	)
	g := ts.All(KindGrunt)[0]

	// Step at 1, shots at 2, 11 and 21, hide at 22.
	ts.RunTicks(22)
	if n := len(ts.SimLog.FilterEntity(g.Label())); n == 0 {
		t.Fatal("expected log entries for the shooter")
	}
	shots := 0
	for _, e := range ts.SimLog.Filter("ai", "shot") {
		if e.Entity == g.Label() {
			shots++
		}
	}
	if shots != cfg.Shots {
		dumpLog(t, ts)
		t.Fatalf("expected %d shots, got %d", cfg.Shots, shots)
	}
	if !g.Crouching() {
		t.Fatalf("expected shooter hiding after its burst, got %s", g.State())
	}
	if ts.SimLog.CountCategory("cycle", "select") != 1 {
		t.Fatal("expected no new shooter while the first is hiding")
	}
	ts.RunTicks(cfg.HideTicks + cfg.AdvanceDelay)
	last, _ := ts.SimLog.LastOf("cycle", "select")
	if last.Entity != ts.All(KindGrunt)[1].Label() {
		t.Fatalf("expected the second grunt next, got %s", last.Entity)
	}
}

func TestAttackCycle_EmptyRosterActivatesBossOnce(t *testing.T) {
	ts := NewTestSim(WithCycle(quietCycle), WithGrunt(700, 600), WithGrunt(900, 600), WithBoss(1100, 600))
	for _, g := range ts.All(KindGrunt) {
		g.Damage(10, false)
	}
	if ts.Sim.Cycle().Len() != 0 {
		t.Fatalf("expected empty roster, got %d", ts.Sim.Cycle().Len())
	}
	ts.RunTicks(GruntProfile().DeathTicks + 1)
	phase, _ := ts.Sim.Boss().BossPhase()
	if phase != BossAttacking {
		t.Fatalf("expected boss attacking, got %s", phase)
	}
	if n := ts.SimLog.CountCategory("event", EventBossActivated.String()); n != 1 {
		t.Fatalf("expected one activation, got %d", n)
	}
}

func TestAttackCycle_HaltsAndRearms(t *testing.T) {
	ts := NewTestSim(
		WithPlayerHealth(1000),
		WithCycle(CycleConfig{StartDelay: 5, Shots: 1, ShotInterval: 1, SettleDelay: 1, HideTicks: 5, AdvanceDelay: 1, RetryDelay: 1}),
		WithGrunt(700, 600),
	)
	ac := ts.Sim.Cycle()
	ts.All(KindGrunt)[0].Damage(10, false)
	ts.RunTicks(10)
	if ac.Len() != 0 {
		t.Fatalf("expected empty roster, got %d", ac.Len())
	}
	if !ac.Halted() {
		t.Fatal("expected the cycle to halt with no live shooter")
	}

	g := newGrunt(ts.Sim, GruntSpawn{Pos: V(800, 600)})
	ts.Sim.addCombatant(g)
	ac.Add(g.ID())
	if ac.Halted() {
		t.Fatal("expected Add to re-arm the cycle")
	}
	if ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.Cycle().Current() == g.ID() }, 5) < 0 {
		t.Fatal("expected the new grunt to be selected")
	}
}
