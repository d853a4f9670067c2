package game

// TickRate is the number of simulation ticks per second.
const TickRate = 60

// dt is the simulated time step in seconds.
const dt = 1.0 / TickRate

// ms converts milliseconds to whole ticks, rounding to nearest.
func ms(d int) int {
	return (d*TickRate + 500) / 1000
}

// TicksFromMs converts a millisecond duration from a level file to ticks.
func TicksFromMs(d int) int { return ms(d) }

// --- Combatant profiles ---

// CombatantConfig is the static tuning of one combatant variant.
type CombatantConfig struct {
	Label   string
	Kind    Kind
	Faction Faction
	Anchor  Anchor
	Facing  Vec2

	HalfWidth float64 // half the collision width
	Height    float64 // full collision height

	MaxHealth      int
	MaxSpeed       float64 // px/s
	CanCrouch      bool
	CrouchSpeedMul float64 // multiplier on MaxSpeed while crouched

	// ProtectionHeight is the shielded band above the feet while crouched.
	// Zero asks the spawner to take it from the nearest bunker.
	ProtectionHeight float64

	FlashTicks   int
	FlashOpacity float64

	DeathTicks          int
	ExplosiveDeathTicks int // 0 = no explosive variant
}

// SideViewPlayerProfile is the platforming player.
func SideViewPlayerProfile() CombatantConfig {
	return CombatantConfig{
		Label:            "P",
		Kind:             KindPlayer,
		Faction:          FactionPlayer,
		Anchor:           AnchorFeet,
		HalfWidth:        18,
		Height:           80,
		MaxHealth:        6,
		MaxSpeed:         300,
		CanCrouch:        true,
		CrouchSpeedMul:   0.4,
		ProtectionHeight: 50,
		FlashTicks:       ms(150),
		FlashOpacity:     0.5,
		DeathTicks:       60,
	}
}

// TopDownPlayerProfile is the survival-mode player.
func TopDownPlayerProfile() CombatantConfig {
	return CombatantConfig{
		Label:        "P",
		Kind:         KindPlayer,
		Faction:      FactionPlayer,
		Anchor:       AnchorCenter,
		HalfWidth:    15,
		Height:       30,
		MaxHealth:    6,
		MaxSpeed:     260,
		FlashTicks:   ms(150),
		FlashOpacity: 0.5,
		DeathTicks:   60,
	}
}

// GruntProfile is the stationary rifleman holding a bunker.
func GruntProfile() CombatantConfig {
	return CombatantConfig{
		Label:               "G",
		Kind:                KindGrunt,
		Faction:             FactionEnemy,
		Anchor:              AnchorFeet,
		Facing:              V(-1, 0),
		HalfWidth:           20,
		Height:              100,
		MaxHealth:           3,
		MaxSpeed:            96,
		CanCrouch:           true,
		CrouchSpeedMul:      0,
		FlashTicks:          ms(120),
		FlashOpacity:        0.6,
		DeathTicks:          3 * ms(140),
		ExplosiveDeathTicks: 4 * ms(140),
	}
}

// MobileProfile is the top-down chaser/tactical infantry.
func MobileProfile() CombatantConfig {
	return CombatantConfig{
		Label:        "M",
		Kind:         KindMobile,
		Faction:      FactionEnemy,
		Anchor:       AnchorCenter,
		Facing:       V(-1, 0),
		HalfWidth:    15,
		Height:       30,
		MaxHealth:    3,
		MaxSpeed:     85,
		FlashTicks:   ms(100),
		FlashOpacity: 0.6,
		DeathTicks:   ms(3000),
	}
}

// BossProfile is the bunker gun emplacement.
func BossProfile() CombatantConfig {
	return CombatantConfig{
		Label:        "B",
		Kind:         KindBoss,
		Faction:      FactionEnemy,
		Anchor:       AnchorFeet,
		Facing:       V(-1, 0),
		HalfWidth:    90,
		Height:       200,
		MaxHealth:    40,
		FlashTicks:   ms(120),
		FlashOpacity: 0.6,
		DeathTicks:   ms(1500),
	}
}
