package game

import "testing"

func waveArena(spec WaveSpec) *TestSim {
	return NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerHealth(100),
		WithWave(spec),
	)
}

func TestWaves_NextBatchOnlyWhenAllDefeated(t *testing.T) {
	ts := waveArena(WaveSpec{BatchSize: 3, Region: R(900, 100, 100, 100), Seconds: 50})
	ws := ts.Sim.Waves()

	first := ws.Members()
	if len(first) != 3 || ws.Waves != 1 {
		t.Fatalf("expected one batch of 3, got %d members in %d waves", len(first), ws.Waves)
	}
	for _, id := range first {
		c, _ := ts.Sim.World().Lookup(id)
		if !R(900, 100, 100, 100).Contains(c.Pos()) {
			t.Fatalf("expected spawn inside the region, got (%.0f,%.0f)", c.Pos().X, c.Pos().Y)
		}
	}

	for i, id := range first[:2] {
		c, _ := ts.Sim.World().Lookup(id)
		c.Damage(100, false)
		if ws.Waves != 1 {
			t.Fatalf("kill %d: expected no new batch yet, got wave %d", i+1, ws.Waves)
		}
		if ws.MemberCount() != 2-i {
			t.Fatalf("kill %d: expected %d members, got %d", i+1, 2-i, ws.MemberCount())
		}
	}

	last, _ := ts.Sim.World().Lookup(first[2])
	last.Damage(100, false)
	if ws.Waves != 2 || ws.MemberCount() != 3 {
		t.Fatalf("expected a fresh batch of 3, got wave %d with %d members", ws.Waves, ws.MemberCount())
	}
	for _, id := range ws.Members() {
		for _, old := range first {
			if id == old {
				t.Fatalf("expected new ids in the second batch, found #%d again", id)
			}
		}
	}
	if n := ts.SimLog.CountCategory("event", EventWaveSpawned.String()); n != 2 {
		t.Fatalf("expected 2 wave_spawned events, got %d", n)
	}
}

func TestWaves_CountdownEndsInVictory(t *testing.T) {
	ts := waveArena(WaveSpec{BatchSize: 2, Region: R(900, 100, 100, 100), Seconds: 2})
	ws := ts.Sim.Waves()
	members := ws.Members()

	ts.RunTicks(2*TickRate - 1)
	if ts.Sim.Over() {
		t.Fatalf("expected still running one tick before the countdown ends, got %s", ts.Sim.Outcome().Outcome)
	}
	if ws.SecondsLeft() != 1 {
		t.Fatalf("expected 1 second left, got %d", ws.SecondsLeft())
	}

	ts.RunTicks(1)
	out := ts.Sim.Outcome()
	if out.Outcome != OutcomeVictory || out.Tick != 2*TickRate {
		dumpLog(t, ts)
		t.Fatalf("expected victory at tick %d, got %s at %d", 2*TickRate, out.Outcome, out.Tick)
	}
	for _, id := range members {
		if ts.Sim.World().Registered(id) {
			t.Fatalf("expected wave member #%d terminated", id)
		}
	}
	if ws.Active() {
		t.Fatal("expected the spawner to stop")
	}
	if !ts.SimLog.HasEntry("wave", "expired", "2 terminated") {
		t.Fatal("expected an expiry log entry")
	}
}

func TestWaves_SpawnAvoidsBlockingCover(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithCover(CoverWall, 900, 100, 30, 100),
		WithWave(WaveSpec{BatchSize: 5, Region: R(900, 100, 100, 100), Seconds: 50}),
	)
	for _, c := range ts.All(KindMobile) {
		if ts.Sim.World().MovementBlocked(c.Bounds()) {
			t.Fatalf("expected %s clear of the wall, got (%.0f,%.0f)", c.Label(), c.Pos().X, c.Pos().Y)
		}
	}
}

func TestWaves_NoSpawnAfterOutcome(t *testing.T) {
	ts := waveArena(WaveSpec{BatchSize: 1, Region: R(900, 100, 100, 100), Seconds: 50})
	ts.Sim.lose("test")
	id := ts.Sim.Waves().Members()[0]
	c, _ := ts.Sim.World().Lookup(id)
	c.Damage(100, false)
	if ts.Sim.Waves().Waves != 1 {
		t.Fatalf("expected no new batch once the encounter is over, got wave %d", ts.Sim.Waves().Waves)
	}
}
