package game

// EntityID identifies a registered entity. Zero is never assigned.
type EntityID uint64

// Kind is the discriminant carried by every collidable entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindGrunt
	KindMobile
	KindBoss
	KindProjectile
	KindBlast
	KindCover
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindGrunt:
		return "grunt"
	case KindMobile:
		return "mobile"
	case KindBoss:
		return "boss"
	case KindProjectile:
		return "projectile"
	case KindBlast:
		return "blast"
	case KindCover:
		return "cover"
	default:
		return "unknown"
	}
}

// Faction determines friendly-fire immunity.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
	FactionNeutral
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Hostile reports whether f may harm o. Neutral harms and is harmed by nobody.
func (f Faction) Hostile(o Faction) bool {
	if f == FactionNeutral || o == FactionNeutral {
		return false
	}
	return f != o
}

// VisualState is the small enumerated animation state a renderer reads.
type VisualState int

const (
	VisualIdle VisualState = iota
	VisualMoving
	VisualCrouching
	VisualAttacking
	VisualDying
	VisualDestroyed
)

func (v VisualState) String() string {
	switch v {
	case VisualIdle:
		return "idle"
	case VisualMoving:
		return "moving"
	case VisualCrouching:
		return "crouching"
	case VisualAttacking:
		return "attacking"
	case VisualDying:
		return "dying"
	case VisualDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Presentable is the view state a renderer consumes each tick.
type Presentable struct {
	ID        EntityID
	Kind      Kind
	Faction   Faction
	Label     string
	Pos       Vec2
	Facing    Vec2
	Bounds    Rect
	Visual    VisualState
	Opacity   float64 // 1 = normal; <1 while damage-flashing
	Explosive bool    // dying from an explosive hit
	Radius    float64 // blast radius or cone range, zero otherwise
}
