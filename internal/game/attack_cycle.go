package game

import "fmt"

// CycleConfig is the timing of the round-robin shooter cycle, in ticks.
type CycleConfig struct {
	StartDelay   int // before the first shooter is chosen
	Shots        int // rounds per burst
	ShotInterval int // between rounds of a burst
	SettleDelay  int // after the last round before the shooter hides
	HideTicks    int // crouched cooldown after a burst
	AdvanceDelay int // after the hide before the next shooter is chosen
	RetryDelay   int // when the shooter died mid-burst
}

// DefaultCycleConfig returns the stock timings.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		StartDelay:   ms(800),
		Shots:        6,
		ShotInterval: ms(400),
		SettleDelay:  ms(60),
		HideTicks:    ms(3000),
		AdvanceDelay: ms(200),
		RetryDelay:   ms(150),
	}
}

// AttackCycle picks one live shooter at a time from an ordered roster and has
// it fire a burst, hide, and hand over to the next. The roster holds IDs only;
// every use re-resolves them through the world.
type AttackCycle struct {
	sim *Sim
	cfg CycleConfig

	roster  []EntityID
	index   int
	current EntityID // shooter chosen by the last Select

	active bool
	halted bool

	// onEmpty fires once when the roster goes from non-empty to empty.
	onEmpty func()
}

// NewAttackCycle creates an idle cycle.
func NewAttackCycle(sim *Sim, cfg CycleConfig, onEmpty func()) *AttackCycle {
	return &AttackCycle{sim: sim, cfg: cfg, onEmpty: onEmpty}
}

// Add appends a shooter. A halted, active cycle is re-armed.
func (ac *AttackCycle) Add(id EntityID) {
	ac.roster = append(ac.roster, id)
	if ac.active && ac.halted {
		ac.halted = false
		ac.schedule(ac.cfg.RetryDelay)
	}
}

// Start arms the cycle; the first shooter is chosen after StartDelay.
func (ac *AttackCycle) Start() {
	if ac.active {
		return
	}
	ac.active = true
	ac.halted = false
	ac.schedule(ac.cfg.StartDelay)
}

// Stop disarms the cycle. Pending actions become no-ops.
func (ac *AttackCycle) Stop() { ac.active = false }

func (ac *AttackCycle) Active() bool { return ac.active }
func (ac *AttackCycle) Halted() bool { return ac.halted }
func (ac *AttackCycle) Index() int { return ac.index }
func (ac *AttackCycle) Current() EntityID { return ac.current }
func (ac *AttackCycle) Len() int { return len(ac.roster) }

// Roster returns a copy of the roster.
func (ac *AttackCycle) Roster() []EntityID {
	out := make([]EntityID, len(ac.roster))
	copy(out, ac.roster)
	return out
}

// Remove drops id from the roster. Removing an entry before the current index
// shifts the index down so rotation order is preserved. Removing the current
// entry leaves the index on its successor.
func (ac *AttackCycle) Remove(id EntityID) bool {
	for i, r := range ac.roster {
		if r == id {
			ac.removeAt(i)
			return true
		}
	}
	return false
}

func (ac *AttackCycle) removeAt(i int) {
	ac.roster = append(ac.roster[:i], ac.roster[i+1:]...)
	if i < ac.index {
		ac.index--
	}
	if len(ac.roster) == 0 {
		ac.index = 0
		if ac.onEmpty != nil {
			ac.onEmpty()
		}
		return
	}
	if ac.index >= len(ac.roster) {
		ac.index = 0
	}
}

// prune removes entries that are no longer live combatants.
func (ac *AttackCycle) prune() {
	for i := 0; i < len(ac.roster); {
		if ac.sim.world.IsLive(ac.roster[i]) {
			i++
			continue
		}
		ac.sim.log.Add(ac.sim.tick, "--", "enemy", "recover", "roster_prune",
			fmt.Sprintf("dropped #%d at %d", ac.roster[i], i), float64(i))
		ac.removeAt(i)
	}
}

// Select prunes the roster, clamps the index and scans forward (one full
// pass at most) for a live shooter, which becomes current. It does not move
// the index past the chosen shooter; Advance does that.
func (ac *AttackCycle) Select() (EntityID, bool) {
	ac.prune()
	n := len(ac.roster)
	if n == 0 {
		ac.index = 0
		ac.current = 0
		return 0, false
	}
	if ac.index < 0 || ac.index >= n {
		ac.index = ((ac.index % n) + n) % n
	}
	for k := 0; k < n; k++ {
		i := (ac.index + k) % n
		if ac.sim.world.IsLive(ac.roster[i]) {
			ac.index = i
			ac.current = ac.roster[i]
			return ac.current, true
		}
	}
	ac.current = 0
	return 0, false
}

// Advance moves past the current shooter. If the current shooter has been
// removed the index already rests on its successor and is left alone.
func (ac *AttackCycle) Advance() {
	n := len(ac.roster)
	if n == 0 {
		ac.index = 0
		ac.current = 0
		return
	}
	if ac.index < n && ac.roster[ac.index] == ac.current {
		ac.index = (ac.index + 1) % n
	} else if ac.index >= n {
		ac.index = 0
	}
	ac.current = 0
}

func (ac *AttackCycle) schedule(delay int) {
	ac.sim.timeline.After(delay, 0, 0, "cycle_step", ac.step)
}

// step chooses the next shooter and queues its burst.
func (ac *AttackCycle) step() {
	if !ac.active || ac.sim.Over() {
		return
	}
	id, ok := ac.Select()
	if !ok {
		ac.halted = true
		ac.sim.log.Add(ac.sim.tick, "--", "enemy", "cycle", "halt", "no live shooter", 0)
		return
	}
	ac.halted = false
	if c, ok := ac.sim.world.Lookup(id); ok {
		ac.sim.log.Add(ac.sim.tick, c.label, "enemy", "cycle", "select",
			fmt.Sprintf("index %d of %d", ac.index, len(ac.roster)), float64(ac.index))
	}
	for i := 0; i < ac.cfg.Shots; i++ {
		ac.sim.timeline.After(i*ac.cfg.ShotInterval, 0, id, "burst_shot", func() {
			ac.fire(id)
		})
	}
	after := (ac.cfg.Shots-1)*ac.cfg.ShotInterval + ac.cfg.SettleDelay
	ac.sim.timeline.After(after, 0, 0, "burst_end", func() {
		ac.endBurst(id)
	})
}

// fire re-validates everything at fire time before the shot goes out.
func (ac *AttackCycle) fire(id EntityID) {
	if !ac.active || ac.sim.Over() {
		return
	}
	c, ok := ac.sim.world.Lookup(id)
	if !ok || !c.Alive() {
		return
	}
	gruntShoot(c, ac.sim)
}

func (ac *AttackCycle) endBurst(id EntityID) {
	if !ac.active || ac.sim.Over() {
		return
	}
	c, ok := ac.sim.world.Lookup(id)
	if !ok || !c.Alive() {
		ac.Advance()
		ac.schedule(ac.cfg.RetryDelay)
		return
	}
	c.CrouchFor(ac.cfg.HideTicks)
	ac.sim.timeline.After(ac.cfg.HideTicks, 0, 0, "hide_end", func() {
		if !ac.active || ac.sim.Over() {
			return
		}
		ac.Advance()
		ac.schedule(ac.cfg.AdvanceDelay)
	})
}
