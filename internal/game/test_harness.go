package game

import "fmt"

// TestSim is a headless harness used by tests. It builds a Sim from a
// level assembled by options and adds stepping and inspection helpers.
type TestSim struct {
	Spec   LevelSpec
	Sim    *Sim
	SimLog *SimLog
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptLevel  simOptionKind = iota // replace the whole level, applied first
	simOptInfra                       // map size, cover, seed, verbose
	simOptEntity                      // player position and enemies, applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithLevel starts from a complete level instead of the empty arena.
func WithLevel(spec LevelSpec) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.Spec = spec
	}}
}

// WithPerspective switches the arena's movement model. Top-down has no
// ground plane.
func WithPerspective(p Perspective) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Spec.Perspective = p
		if p == PerspectiveTopDown {
			ts.Spec.GroundY = 0
			ts.Spec.PlayerSpawn = V(100, 300)
		}
	}}
}

// WithMapSize sets the world bounds.
func WithMapSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Spec.Bounds = R(0, 0, w, h)
	}}
}

// WithCover adds a cover zone with its kind's default flags.
func WithCover(kind CoverKind, x, y, w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Spec.Cover = append(ts.Spec.Cover, NewCoverZone(kind, R(x, y, w, h)))
	}}
}

// WithCoverZone adds a fully specified cover zone.
func WithCoverZone(z CoverZone) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Spec.Cover = append(ts.Spec.Cover, z)
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Spec.Seed = seed
	}}
}

// WithVerbose enables verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithCycle overrides the shooter cycle timings.
func WithCycle(cfg CycleConfig) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Spec.Cycle = cfg
	}}
}

// WithPlayerAt moves the player spawn.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Spec.PlayerSpawn = V(x, y)
	}}
}

// WithPlayerHealth overrides the player's maximum health.
func WithPlayerHealth(h int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Spec.PlayerHealth = h
	}}
}

// WithGrunt adds a grunt standing at (x,y) with default tuning.
func WithGrunt(x, y float64) SimOption {
	return WithGruntSpawn(GruntSpawn{Pos: V(x, y)})
}

// WithGruntSpawn adds a fully specified grunt.
func WithGruntSpawn(g GruntSpawn) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Spec.Grunts = append(ts.Spec.Grunts, g)
	}}
}

// WithMobile adds a mobile enemy at (x,y).
func WithMobile(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Spec.Mobiles = append(ts.Spec.Mobiles, MobileSpawn{Pos: V(x, y)})
	}}
}

// WithBoss places the boss at (x,y).
func WithBoss(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Spec.Boss = &BossSpawn{Pos: V(x, y)}
	}}
}

// WithWave enables the survival spawner.
func WithWave(w WaveSpec) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Spec.Wave = &w
	}}
}

// testArena is an empty side-view level the options build on.
func testArena() LevelSpec {
	return LevelSpec{
		Name:        "test",
		Perspective: PerspectiveSide,
		Bounds:      R(0, 0, 1280, 720),
		GroundY:     600,
		PlayerSpawn: V(100, 600),
		Weapons:     []Weapon{WeaponRifle, WeaponGrenade, WeaponFlamer},
		Cycle:       DefaultCycleConfig(),
		Seed:        1,
	}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Level
//  2. Infrastructure (map size, cover, seed, verbose)
//  3. Entities
//  4. Build the Sim
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Spec:   testArena(),
		SimLog: NewSimLog(false),
	}
	for _, pass := range []simOptionKind{simOptLevel, simOptInfra, simOptEntity} {
		for _, o := range opts {
			if o.kind == pass {
				o.fn(ts)
			}
		}
	}
	ts.Sim = NewSim(ts.Spec, ts.SimLog)
	return ts
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Sim.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Sim.Step()
		if predicate(ts) {
			return ts.Sim.Tick()
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Sim.Tick()
}

// Player returns the player combatant.
func (ts *TestSim) Player() *Combatant { return ts.Sim.Player() }

// All returns the registered combatants of one kind in spawn order.
func (ts *TestSim) All(kind Kind) []*Combatant {
	return ts.Sim.World().CombatantsOf(kind)
}

// SimSnapshot is a lightweight state summary.
type SimSnapshot struct {
	Tick       int
	Outcome    Outcome
	Combatants []CombatantSnapshot
}

// CombatantSnapshot is a lightweight copy of a combatant's state at a tick.
type CombatantSnapshot struct {
	ID     EntityID
	Label  string
	Kind   Kind
	X, Y   float64
	State  LifecycleState
	Health int
}

func (cs CombatantSnapshot) String() string {
	return fmt.Sprintf("#%d %s (%.0f,%.0f) %s hp=%d", cs.ID, cs.Label, cs.X, cs.Y, cs.State, cs.Health)
}

// Snapshot returns the current state of all registered combatants.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.Sim.Tick(), Outcome: ts.Sim.Outcome().Outcome}
	for _, c := range ts.Sim.World().Combatants() {
		snap.Combatants = append(snap.Combatants, CombatantSnapshot{
			ID:     c.id,
			Label:  c.label,
			Kind:   c.kind,
			X:      c.pos.X,
			Y:      c.pos.Y,
			State:  c.state,
			Health: c.health.Current,
		})
	}
	return snap
}
