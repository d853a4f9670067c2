package game

// Outcome is the state of the encounter as a whole.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// OutcomeReason records how and when the encounter ended.
type OutcomeReason struct {
	Outcome     Outcome
	Tick        int
	Description string

	EnemiesDefeated int
	PlayerHealth    int
	Waves           int
}

// Over reports whether the encounter has been decided.
func (r OutcomeReason) Over() bool { return r.Outcome != OutcomeRunning }
