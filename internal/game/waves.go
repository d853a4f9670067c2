package game

import "fmt"

const waveSpawnAttempts = 20 // position draws before accepting an overlap

// WaveSpec configures the survival spawner.
type WaveSpec struct {
	BatchSize int
	Region    Rect // spawn positions are drawn uniformly from here
	Seconds   int  // countdown to victory
	Health    int  // 0 = MobileProfile default
}

// WaveSpawner keeps one batch of mobile enemies alive at a time and ends the
// encounter in victory when its countdown runs out.
type WaveSpawner struct {
	sim  *Sim
	spec WaveSpec

	members     []EntityID
	secondsLeft int
	tickAcc     int
	active      bool

	Waves int // batches spawned so far
}

// NewWaveSpawner creates an idle spawner.
func NewWaveSpawner(sim *Sim, spec WaveSpec) *WaveSpawner {
	return &WaveSpawner{sim: sim, spec: spec, secondsLeft: spec.Seconds}
}

// Start spawns the first batch and starts the countdown.
func (ws *WaveSpawner) Start() {
	if ws.active {
		return
	}
	ws.active = true
	ws.spawnBatch()
}

func (ws *WaveSpawner) Active() bool { return ws.active }
func (ws *WaveSpawner) SecondsLeft() int { return ws.secondsLeft }
func (ws *WaveSpawner) MemberCount() int { return len(ws.members) }
func (ws *WaveSpawner) Spec() WaveSpec { return ws.spec }
func (ws *WaveSpawner) Members() []EntityID {
	out := make([]EntityID, len(ws.members))
	copy(out, ws.members)
	return out
}

func (ws *WaveSpawner) spawnBatch() {
	s := ws.sim
	for i := 0; i < ws.spec.BatchSize; i++ {
		c := newMobile(s, ws.spawnPoint(), ws.spec.Health)
		s.addCombatant(c)
		ws.members = append(ws.members, c.id)
	}
	ws.Waves++
	s.log.Add(s.tick, "--", "enemy", "wave", "spawn",
		fmt.Sprintf("wave %d: %d enemies", ws.Waves, ws.spec.BatchSize), float64(ws.spec.BatchSize))
	s.emit(Event{Kind: EventWaveSpawned, Entity: KindMobile, Faction: FactionEnemy, Amount: ws.spec.BatchSize})
}

// spawnPoint draws a position in the region, retrying while the body would
// overlap movement-blocking cover.
func (ws *WaveSpawner) spawnPoint() Vec2 {
	s := ws.sim
	r := ws.spec.Region
	cfg := MobileProfile()
	var p Vec2
	for i := 0; i < waveSpawnAttempts; i++ {
		p = V(r.X+s.rng.Float64()*r.W, r.Y+s.rng.Float64()*r.H)
		if !s.world.MovementBlocked(boundsAt(p, cfg)) {
			return p
		}
	}
	return p
}

// OnDefeated drops id from the membership list. The next batch spawns only
// once the list is empty.
func (ws *WaveSpawner) OnDefeated(id EntityID) bool {
	for i, m := range ws.members {
		if m != id {
			continue
		}
		ws.members = append(ws.members[:i], ws.members[i+1:]...)
		if len(ws.members) == 0 && ws.active && !ws.sim.Over() {
			ws.spawnBatch()
		}
		return true
	}
	return false
}

// Tick advances the countdown by one simulation tick.
func (ws *WaveSpawner) Tick() {
	if !ws.active || ws.sim.Over() {
		return
	}
	ws.tickAcc++
	if ws.tickAcc < TickRate {
		return
	}
	ws.tickAcc = 0
	ws.secondsLeft--
	if ws.secondsLeft > 0 {
		return
	}
	ws.active = false
	members := ws.members
	ws.members = nil
	for _, id := range members {
		if c, ok := ws.sim.world.Lookup(id); ok {
			c.terminate()
		}
	}
	ws.sim.log.Add(ws.sim.tick, "--", "enemy", "wave", "expired",
		fmt.Sprintf("%d terminated", len(members)), float64(len(members)))
	ws.sim.win("survived")
}
