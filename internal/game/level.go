package game

// Perspective selects the movement model of a level.
type Perspective int

const (
	PerspectiveSide    Perspective = iota // gravity, platforms, ground plane
	PerspectiveTopDown                    // free 2D movement, walls
)

func (p Perspective) String() string {
	if p == PerspectiveTopDown {
		return "topdown"
	}
	return "side"
}

// ParsePerspective maps a level-file name to a Perspective.
func ParsePerspective(s string) (Perspective, bool) {
	switch s {
	case "side", "sideview", "side-view":
		return PerspectiveSide, true
	case "topdown", "top-down":
		return PerspectiveTopDown, true
	}
	return 0, false
}

// GruntSpawn places a stationary rifleman.
type GruntSpawn struct {
	Pos              Vec2
	Health           int     // 0 = profile default
	ProtectionHeight float64 // 0 = nearest bunker, else 0.6 x body height
	Patrol           bool
}

// BossSpawn places the bunker boss.
type BossSpawn struct {
	Pos    Vec2
	Health int
}

// MobileSpawn places a single mobile enemy outside any wave.
type MobileSpawn struct {
	Pos    Vec2
	Health int
}

// LevelSpec is everything needed to build an encounter.
type LevelSpec struct {
	Name        string
	Perspective Perspective
	Bounds      Rect
	GroundY     float64
	Cover       CoverGeometry

	PlayerSpawn  Vec2
	PlayerHealth int // 0 = profile default
	Weapons      []Weapon

	Grunts  []GruntSpawn
	Mobiles []MobileSpawn
	Boss    *BossSpawn
	Cycle   CycleConfig
	Wave    *WaveSpec

	Seed int64
}

// DefaultAssaultLevel is the side-view beach assault: a row of entrenched
// grunts, each behind a bunker, with the boss emplacement at the far end.
func DefaultAssaultLevel() LevelSpec {
	const ground = 480.0
	spec := LevelSpec{
		Name:        "assault",
		Perspective: PerspectiveSide,
		Bounds:      R(0, 0, 2800, 600),
		GroundY:     ground,
		PlayerSpawn: V(150, ground),
		Weapons:     []Weapon{WeaponRifle, WeaponGrenade, WeaponFlamer},
		Boss:        &BossSpawn{Pos: V(2600, ground)},
		Cycle:       DefaultCycleConfig(),
		Seed:        1,
	}
	for i := 0; i < 7; i++ {
		x := 700 + float64(i)*250
		spec.Grunts = append(spec.Grunts, GruntSpawn{Pos: V(x, ground)})
		spec.Cover = append(spec.Cover, NewCoverZone(CoverBunker, R(x-60-20, ground-60, 40, 60)))
	}
	spec.Cover = append(spec.Cover,
		NewCoverZone(CoverPlatform, R(420, ground-110, 160, 16)),
		NewCoverZone(CoverPlatform, R(1180, ground-130, 140, 16)),
	)
	return spec
}

// DefaultSurvivalLevel is the top-down holdout: waves of mobile enemies
// pour in from the east until the timer runs out.
func DefaultSurvivalLevel() LevelSpec {
	spec := LevelSpec{
		Name:        "survival",
		Perspective: PerspectiveTopDown,
		Bounds:      R(0, 0, 1280, 650),
		PlayerSpawn: V(250, 40),
		Weapons:     []Weapon{WeaponRifle},
		Wave: &WaveSpec{
			BatchSize: 10,
			Region:    R(1100, 50, 150, 550),
			Seconds:   50,
		},
		Cycle: DefaultCycleConfig(),
		Seed:  1,
	}
	for _, r := range []Rect{
		R(310, 0, 20, 150),
		R(150, 0, 20, 600),
		R(600, 30, 20, 150),
		R(770, 400, 20, 150),
		R(910, 400, 20, 150),
		R(530, 400, 20, 150),
	} {
		spec.Cover = append(spec.Cover, NewCoverZone(CoverWall, r))
	}
	return spec
}
