package game

import "testing"

func sideBody(x, y float64) *Combatant {
	return NewCombatant(SideViewPlayerProfile(), V(x, y))
}

func TestMovement_SideViewLandsOnPlatform(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, CoverGeometry{NewCoverZone(CoverPlatform, R(100, 400, 200, 20))})
	m := NewMovementResolver(w)
	c := sideBody(200, 395)
	c.vel = V(0, 600)

	m.ResolveSideView(c, dt)

	if c.Pos().Y != 400 {
		t.Fatalf("expected feet snapped to platform top 400, got %.2f", c.Pos().Y)
	}
	if !c.Grounded() || c.Vel().Y != 0 {
		t.Fatalf("expected grounded with zero vy, got grounded=%v vy=%.1f", c.Grounded(), c.Vel().Y)
	}
}

func TestMovement_SideViewCeiling(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, CoverGeometry{NewCoverZone(CoverPlatform, R(100, 400, 200, 20))})
	m := NewMovementResolver(w)
	c := sideBody(200, 510) // head at 430, just under the platform
	c.vel = V(0, -1200)

	m.ResolveSideView(c, dt)

	if c.Pos().Y != 510 {
		t.Fatalf("expected Y reverted on ceiling contact, got %.2f", c.Pos().Y)
	}
	if c.Grounded() || c.Vel().Y != 0 {
		t.Fatalf("expected airborne with zero vy, got grounded=%v vy=%.1f", c.Grounded(), c.Vel().Y)
	}
}

func TestMovement_SideViewSnapsToWallEdge(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, CoverGeometry{NewCoverZone(CoverWall, R(300, 0, 20, 700))})
	m := NewMovementResolver(w)
	c := sideBody(280, 600)
	c.vel = V(300, 0)

	m.ResolveSideView(c, dt)

	want := 300 - c.Config().HalfWidth - edgeClearance
	if c.Pos().X != want {
		t.Fatalf("expected snap to x=%.1f, got %.2f", want, c.Pos().X)
	}
	if c.Vel().X != 0 {
		t.Fatalf("expected vx zeroed, got %.1f", c.Vel().X)
	}

	// It can reverse straight away.
	c.vel = V(-300, 0)
	m.ResolveSideView(c, dt)
	if c.Pos().X >= want {
		t.Fatalf("expected to move away from the wall, got x=%.2f", c.Pos().X)
	}
}

func TestMovement_SideViewGroundPlane(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, nil)
	m := NewMovementResolver(w)
	c := sideBody(500, 590)
	c.vel = V(0, 1200)

	m.ResolveSideView(c, dt)

	if c.Pos().Y != 600 || !c.Grounded() {
		t.Fatalf("expected caught by ground plane at 600, got y=%.2f grounded=%v", c.Pos().Y, c.Grounded())
	}
}

func TestMovement_SideViewWorldEdge(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 600, nil)
	m := NewMovementResolver(w)
	c := sideBody(20, 600)
	c.vel = V(-300, 0)

	m.ResolveSideView(c, dt)

	if c.Pos().X != c.Config().HalfWidth {
		t.Fatalf("expected clamp to x=%.0f, got %.2f", c.Config().HalfWidth, c.Pos().X)
	}
}

func TestMovement_TopDownRevertsBlockedAxis(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 0, CoverGeometry{NewCoverZone(CoverWall, R(200, 0, 20, 400))})
	m := NewMovementResolver(w)
	c := NewCombatant(TopDownPlayerProfile(), V(180, 300))

	bx, by := m.ResolveTopDown(c, V(10, 10))

	if !bx || by {
		t.Fatalf("expected only X blocked, got bx=%v by=%v", bx, by)
	}
	if c.Pos() != V(180, 310) {
		t.Fatalf("expected (180,310), got (%.1f,%.1f)", c.Pos().X, c.Pos().Y)
	}
}

func TestMovement_TopDownClampsToBounds(t *testing.T) {
	w := NewWorld(R(0, 0, 1000, 700), 0, nil)
	m := NewMovementResolver(w)
	c := NewCombatant(TopDownPlayerProfile(), V(10, 20))

	m.ResolveTopDown(c, V(-20, -20))

	cfg := c.Config()
	if c.Pos() != V(cfg.HalfWidth, cfg.Height/2) {
		t.Fatalf("expected clamp to (%.0f,%.0f), got (%.1f,%.1f)", cfg.HalfWidth, cfg.Height/2, c.Pos().X, c.Pos().Y)
	}
}

func TestMovement_PlayerJumpsAndLands(t *testing.T) {
	ts := NewTestSim(WithCycle(quietCycle))
	p := ts.Player()
	ts.RunTicks(2)
	if !p.Grounded() {
		t.Fatal("expected player grounded at spawn")
	}
	ts.Sim.Controller().Jump()
	ts.RunTicks(1)
	if p.Grounded() || p.Pos().Y >= 600 {
		t.Fatalf("expected airborne after jump, got y=%.1f grounded=%v", p.Pos().Y, p.Grounded())
	}
	landed := ts.RunUntil(func(ts *TestSim) bool { return ts.Player().Grounded() }, 120)
	if landed < 0 {
		t.Fatal("expected player to land again")
	}
	if p.Pos().Y != 600 {
		t.Fatalf("expected feet back on the ground plane, got %.2f", p.Pos().Y)
	}
}

func TestMovement_PlayerWalksRight(t *testing.T) {
	ts := NewTestSim(WithCycle(quietCycle))
	p := ts.Player()
	start := p.Pos().X
	pc := ts.Sim.Controller()
	pc.MoveStart(AxisX, 1)
	ts.RunTicks(30)
	pc.MoveStop(AxisX, 1)
	if p.Pos().X <= start {
		t.Fatalf("expected player to move right from %.0f, got %.1f", start, p.Pos().X)
	}
	if p.Vel().X > p.Config().MaxSpeed {
		t.Fatalf("expected speed capped at %.0f, got %.1f", p.Config().MaxSpeed, p.Vel().X)
	}
	ts.RunTicks(60)
	if p.Vel().X != 0 {
		t.Fatalf("expected friction to stop the player, got vx=%.1f", p.Vel().X)
	}
}

func TestMovement_MoveStopIgnoresOppositeRelease(t *testing.T) {
	ts := NewTestSim(WithCycle(quietCycle))
	pc := ts.Sim.Controller()
	pc.MoveStart(AxisX, 1)
	pc.MoveStop(AxisX, -1)
	ts.RunTicks(10)
	if ts.Player().Vel().X <= 0 {
		t.Fatal("expected releasing the opposite direction to leave movement alone")
	}
}
