package game

import "testing"

// setBehavior forces a mobile's behaviour, which is normally drawn at spawn.
func setBehavior(c *Combatant, b MobileBehavior) *mobileBrain {
	m := c.brain.(*mobileBrain)
	m.behavior = b
	return m
}

func TestMobile_MeleeContactDamagesAndPushesBack(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerAt(100, 300),
		WithMobile(110, 300),
	)
	m := ts.All(KindMobile)[0]
	before := ts.Player().Health().Current

	ts.RunTicks(1)

	if got := ts.Player().Health().Current; got != before-meleeDamage {
		t.Fatalf("expected player health %d after contact, got %d", before-meleeDamage, got)
	}
	if m.Pos().X <= 110 {
		t.Fatalf("expected the mobile pushed away from the player, got x=%.1f", m.Pos().X)
	}
	if !ts.SimLog.HasEntry("ai", "melee", "contact") {
		t.Fatal("expected a melee log entry")
	}
}

func TestMobile_MeleeSparesFriendlies(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerAt(100, 100),
		WithMobile(600, 500),
		WithMobile(605, 500),
	)
	ts.RunTicks(1)
	for _, m := range ts.All(KindMobile) {
		if m.Health().Current != m.Health().Max {
			t.Fatalf("expected overlapping mobiles unharmed, got %s at %d", m.Label(), m.Health().Current)
		}
	}
	if ts.SimLog.HasEntry("ai", "melee", "") {
		t.Fatal("expected no melee between friendlies")
	}
}

func TestMobile_ProbesAroundObstruction(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerAt(100, 300),
		WithCover(CoverWall, 370, 250, 14, 100),
		WithMobile(400, 300),
	)
	m := ts.All(KindMobile)[0]
	setBehavior(m, BehaviorChaser)

	ts.RunTicks(1)

	if m.Pos().X != 400 {
		t.Fatalf("expected no progress into the wall, got x=%.2f", m.Pos().X)
	}
	if m.Pos().Y <= 300 {
		t.Fatalf("expected a +Y sidestep first, got y=%.2f", m.Pos().Y)
	}
	if !ts.SimLog.HasEntry("ai", "probe", "sidestep") {
		t.Fatal("expected a probe log entry")
	}
}

func TestMobile_ChaserClosesDistance(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerAt(100, 300),
		WithMobile(600, 300),
	)
	m := ts.All(KindMobile)[0]
	setBehavior(m, BehaviorChaser)
	start := m.Pos().Dist(ts.Player().Pos())

	ts.RunTicks(30)

	if got := m.Pos().Dist(ts.Player().Pos()); got >= start {
		t.Fatalf("expected chaser to close from %.0f, got %.0f", start, got)
	}
	if m.View().Visual != VisualMoving {
		t.Fatalf("expected moving visual, got %s", m.View().Visual)
	}
}

func TestMobile_TacticalHoldsWhileStationary(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerAt(100, 300),
		WithMobile(600, 300),
	)
	m := ts.All(KindMobile)[0]
	brain := setBehavior(m, BehaviorTactical)
	brain.stationary = true
	brain.phaseTicks = 1000
	start := m.Pos()

	ts.RunTicks(20)

	if m.Pos() != start {
		t.Fatalf("expected stationary tactical to hold at (%.0f,%.0f), got (%.1f,%.1f)", start.X, start.Y, m.Pos().X, m.Pos().Y)
	}
}

func TestMobile_TacticalOnlyFiresWhileStationary(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerHealth(100),
		WithPlayerAt(100, 300),
		WithMobile(900, 300),
	)
	m := ts.All(KindMobile)[0]
	brain := setBehavior(m, BehaviorTactical)
	brain.stationary = false
	brain.phaseTicks = 1000
	brain.shootTicks = 1

	ts.RunTicks(5)
	if n := len(ts.Sim.World().Projectiles()); n != 0 {
		t.Fatalf("expected a moving tactical mobile to hold fire, got %d rounds", n)
	}

	brain.stationary = true
	brain.shootTicks = 1
	ts.RunTicks(1)
	if n := len(ts.Sim.World().Projectiles()); n != 1 {
		t.Fatalf("expected the first round of a burst, got %d", n)
	}
	ts.RunTicks(mobileBurstGap)
	if n := len(ts.Sim.World().Projectiles()); n != mobileBurstShots {
		t.Fatalf("expected %d rounds after the burst, got %d", mobileBurstShots, n)
	}
}

func TestMobile_DeathCancelsPendingBurst(t *testing.T) {
	ts := NewTestSim(
		WithPerspective(PerspectiveTopDown),
		WithPlayerHealth(100),
		WithPlayerAt(100, 300),
		WithMobile(900, 300),
	)
	m := ts.All(KindMobile)[0]
	brain := setBehavior(m, BehaviorChaser)
	brain.shootTicks = 1
	ts.RunTicks(1)
	if n := len(ts.Sim.World().Projectiles()); n != 1 {
		t.Fatalf("expected the burst to open, got %d rounds", n)
	}

	m.Damage(100, false)
	ts.RunTicks(mobileBurstGap + 1)
	if n := len(ts.Sim.World().Projectiles()); n != 1 {
		t.Fatalf("expected the follow-up cancelled by death, got %d rounds", n)
	}
}
