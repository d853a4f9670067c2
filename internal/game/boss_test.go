package game

import "testing"

func bossArena(opts ...SimOption) *TestSim {
	base := []SimOption{
		WithCycle(quietCycle),
		WithPlayerHealth(100),
		WithGrunt(700, 600),
		WithBoss(1100, 600),
	}
	return NewTestSim(append(base, opts...)...)
}

// clearLine kills every grunt and runs until the boss wakes up.
func clearLine(t *testing.T, ts *TestSim) {
	t.Helper()
	for _, g := range ts.All(KindGrunt) {
		g.Damage(10, false)
	}
	awake := func(ts *TestSim) bool {
		phase, _ := ts.Sim.Boss().BossPhase()
		return phase == BossAttacking
	}
	if ts.RunUntil(awake, GruntProfile().ExplosiveDeathTicks+5) < 0 {
		dumpLog(t, ts)
		t.Fatal("expected the boss to wake once the line was cleared")
	}
}

func TestBoss_ImmuneWhileIdle(t *testing.T) {
	ts := bossArena()
	b := ts.Sim.Boss()
	if b.Damage(5, false) {
		t.Fatal("expected idle boss to ignore damage")
	}
	if b.Health().Current != b.Health().Max {
		t.Fatalf("expected full health, got %d", b.Health().Current)
	}
	if phase, ok := b.BossPhase(); !ok || phase != BossIdle {
		t.Fatalf("expected idle boss, got %s ok=%v", phase, ok)
	}
}

func TestBoss_ActivationIsIdempotent(t *testing.T) {
	ts := bossArena()
	clearLine(t, ts)

	if ts.Sim.ActivateBoss() {
		t.Fatal("expected a second activation to be a no-op")
	}
	if n := ts.SimLog.CountCategory("event", EventBossActivated.String()); n != 1 {
		t.Fatalf("expected exactly one boss_activated, got %d", n)
	}
	if !ts.Sim.Boss().Damage(1, false) {
		t.Fatal("expected an attacking boss to take damage")
	}
}

func TestBoss_FiresOnInterval(t *testing.T) {
	ts := bossArena()
	fired := 0
	ts.Sim.AddSink(EventSinkFunc(func(ev Event) {
		if ev.Kind == EventFired && ev.Entity == KindBoss {
			fired++
		}
	}))
	ts.RunTicks(bossFireInterval * 3)
	if fired != 0 {
		t.Fatalf("expected an idle boss to hold fire, got %d shots", fired)
	}

	clearLine(t, ts)
	ts.RunTicks(bossFireInterval - 1)
	if fired != 0 {
		t.Fatalf("expected no shot before the interval, got %d", fired)
	}
	ts.RunTicks(1)
	if fired != 1 {
		t.Fatalf("expected first shot after %d ticks, got %d", bossFireInterval, fired)
	}
	ts.RunTicks(bossFireInterval)
	if fired != 2 {
		t.Fatalf("expected second shot one interval later, got %d", fired)
	}
}

func TestBoss_DeathIsVictory(t *testing.T) {
	ts := bossArena()
	clearLine(t, ts)
	b := ts.Sim.Boss()
	b.Damage(b.Health().Max, false)

	out := ts.Sim.Outcome()
	if out.Outcome != OutcomeVictory {
		t.Fatalf("expected victory, got %s", out.Outcome)
	}
	if out.EnemiesDefeated != 2 {
		t.Fatalf("expected 2 enemies defeated, got %d", out.EnemiesDefeated)
	}
	if b.State() != StateDying {
		t.Fatalf("expected the boss to play its death sequence, got %s", b.State())
	}
	ts.RunTicks(BossProfile().DeathTicks)
	if b.State() != StateRemoved {
		t.Fatalf("expected boss removed, got %s", b.State())
	}
}

func TestBoss_NoVictoryWhenPlayerDown(t *testing.T) {
	ts := bossArena()
	clearLine(t, ts)
	ts.Player().Damage(1000, false)
	b := ts.Sim.Boss()
	b.Damage(b.Health().Max, false)
	if ts.Sim.Outcome().Outcome == OutcomeVictory {
		t.Fatal("expected no victory once the player is dying")
	}
	ts.RunTicks(SideViewPlayerProfile().DeathTicks)
	if ts.Sim.Outcome().Outcome != OutcomeDefeat {
		t.Fatalf("expected defeat after the player's death sequence, got %s", ts.Sim.Outcome().Outcome)
	}
}

func TestBoss_WaitsForGruntDeathSequence(t *testing.T) {
	ts := bossArena()
	g := ts.All(KindGrunt)[0]
	g.Damage(10, false)
	if ts.Sim.Cycle().Len() != 0 {
		t.Fatalf("expected the dying grunt off the roster, got %d", ts.Sim.Cycle().Len())
	}

	for i := 0; i < GruntProfile().DeathTicks-1; i++ {
		ts.Sim.Step()
		if g.State() != StateDying {
			break
		}
		if phase, _ := ts.Sim.Boss().BossPhase(); phase != BossIdle {
			dumpLog(t, ts)
			t.Fatalf("expected boss idle while the grunt is dying (tick %d), got %s", ts.CurrentTick(), phase)
		}
	}

	removed := ts.RunUntil(func(ts *TestSim) bool { return g.State() == StateRemoved }, GruntProfile().DeathTicks)
	if removed < 0 {
		t.Fatalf("expected the grunt removed, got %s", g.State())
	}
	if phase, _ := ts.Sim.Boss().BossPhase(); phase != BossAttacking {
		t.Fatalf("expected boss attacking on the tick the grunt was removed, got %s", phase)
	}
	if ts.Sim.World().Registered(g.ID()) {
		t.Fatal("expected the grunt deregistered before the boss woke")
	}
}
