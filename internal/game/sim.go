package game

import (
	"fmt"
	"math/rand"
)

// Sim is one encounter: the world, its combatants and the single fixed-step
// loop that advances them. All state changes happen inside Step or inside
// the player intent methods, on the caller's goroutine.
type Sim struct {
	spec LevelSpec
	tick int
	rng  *rand.Rand

	world       *World
	timeline    *Timeline
	projectiles *ProjectileSystem
	movement    MovementResolver

	bus   *EventBus
	sinks []EventSink // external subscribers, kept across Restart
	log   *SimLog
	feed  *CombatFeed

	player     *Combatant
	controller *PlayerController
	cycle      *AttackCycle
	waves      *WaveSpawner
	boss       *Combatant
	bossArmed  bool // roster emptied; waits for the last grunt to be removed

	outcome  OutcomeReason
	defeated int // enemies
}

// NewSim builds the encounter described by spec. A nil log gets a quiet one.
func NewSim(spec LevelSpec, log *SimLog) *Sim {
	if log == nil {
		log = NewSimLog(false)
	}
	s := &Sim{spec: spec, log: log}
	s.build()
	return s
}

func (s *Sim) build() {
	spec := s.spec
	s.tick = 0
	s.rng = rand.New(rand.NewSource(spec.Seed)) // #nosec G404 -- gameplay randomness, reproducible by seed
	s.world = NewWorld(spec.Bounds, spec.GroundY, spec.Cover)
	s.timeline = NewTimeline(s.world.IsLive)
	s.timeline.onStale = func(label string, subject EntityID) {
		s.log.AddVerbose(s.tick, "--", "--", "recover", "stale_action",
			fmt.Sprintf("%s for #%d", label, subject), float64(subject))
	}
	s.projectiles = NewProjectileSystem(s)
	s.movement = NewMovementResolver(s.world)
	s.feed = NewCombatFeed()
	s.outcome = OutcomeReason{}
	s.defeated = 0
	s.boss = nil
	s.bossArmed = false
	s.waves = nil

	s.bus = NewEventBus()
	s.bus.SubscribeAll(EventSinkFunc(s.record))
	s.bus.SubscribeAll(s.feed)
	s.bus.Subscribe(EventFired, EventSinkFunc(s.onFired))
	s.bus.Subscribe(EventDefeated, EventSinkFunc(s.onDefeated))
	s.bus.Subscribe(EventBossDefeated, EventSinkFunc(func(Event) { s.win("bunker destroyed") }))
	for _, sink := range s.sinks {
		s.bus.SubscribeAll(sink)
	}

	pcfg := SideViewPlayerProfile()
	if spec.Perspective == PerspectiveTopDown {
		pcfg = TopDownPlayerProfile()
	}
	if spec.PlayerHealth > 0 {
		pcfg.MaxHealth = spec.PlayerHealth
	}
	s.player = NewCombatant(pcfg, spec.PlayerSpawn)
	s.controller = newPlayerController(s.player, spec.Perspective, spec.Weapons)
	s.player.brain = s.controller
	s.addCombatant(s.player)

	cycleCfg := spec.Cycle
	if cycleCfg.Shots <= 0 {
		cycleCfg = DefaultCycleConfig()
	}
	s.cycle = NewAttackCycle(s, cycleCfg, func() { s.bossArmed = true })
	for _, g := range spec.Grunts {
		c := newGrunt(s, g)
		s.addCombatant(c)
		s.cycle.Add(c.id)
	}
	for _, m := range spec.Mobiles {
		s.addCombatant(newMobile(s, m.Pos, m.Health))
	}
	if spec.Boss != nil {
		s.boss = newBoss(s, *spec.Boss)
		s.addCombatant(s.boss)
	}
	if s.cycle.Len() > 0 {
		s.cycle.Start()
	}
	if spec.Wave != nil && spec.Wave.BatchSize > 0 {
		s.waves = NewWaveSpawner(s, *spec.Wave)
		s.waves.Start()
	}

	s.log.Add(s.tick, "--", "--", "encounter", "start",
		fmt.Sprintf("%s (%s) seed=%d", spec.Name, spec.Perspective, spec.Seed), float64(s.world.Count()))
}

// addCombatant registers c, binds it to the sim and gives enemies a
// unique label such as G3.
func (s *Sim) addCombatant(c *Combatant) {
	s.world.RegisterCombatant(c)
	c.sim = s
	if c.kind != KindPlayer {
		c.label = fmt.Sprintf("%s%d", c.cfg.Label, c.id)
	}
	c.syncView()
}

// Restart rebuilds the encounter from its level spec with a fresh log.
// External sinks stay subscribed.
func (s *Sim) Restart() {
	s.log = NewSimLog(s.log.verbose)
	s.build()
}

// AddSink subscribes an external sink (audio, UI) to every event.
func (s *Sim) AddSink(sink EventSink) {
	s.sinks = append(s.sinks, sink)
	s.bus.SubscribeAll(sink)
}

// Step advances the encounter by one fixed tick:
//
//	1. per-entity countdowns (debounce, flash, crouch, death)
//	2. scheduled actions due this tick
//	3. player intents, then every other live brain
//	4. projectile integration and collision resolution
//	5. wave countdown
//	6. registry compaction, boss wake-up and view sync
func (s *Sim) Step() {
	s.tick++

	for _, c := range s.world.Combatants() {
		c.tickTimers()
	}

	s.timeline.Run(s.tick)

	if s.player.Alive() {
		s.controller.think(s.player, s)
	}
	for _, c := range s.world.Combatants() {
		if c == s.player || c.brain == nil || !c.Alive() {
			continue
		}
		c.brain.think(c, s)
	}

	s.projectiles.Update()

	if s.waves != nil {
		s.waves.Tick()
	}

	s.world.Flush()
	s.wakeBoss()
	for _, c := range s.world.Combatants() {
		c.syncView()
	}
}

// wakeBoss activates the boss once the attack roster has emptied and every
// grunt has finished its death sequence and left the registry.
func (s *Sim) wakeBoss() {
	if !s.bossArmed || len(s.world.CombatantsOf(KindGrunt)) > 0 {
		return
	}
	s.bossArmed = false
	s.ActivateBoss()
}

// emit stamps ev with the current tick and dispatches it.
func (s *Sim) emit(ev Event) {
	ev.Tick = s.tick
	s.bus.Emit(ev)
}

// record mirrors every event into the SimLog. Shots and hits are verbose.
func (s *Sim) record(ev Event) {
	label := ev.Label
	if label == "" {
		label = "--"
	}
	value := fmt.Sprintf("%s at (%.0f,%.0f)", ev.Entity, ev.Pos.X, ev.Pos.Y)
	if ev.Kind == EventFired || ev.Kind == EventHit {
		s.log.AddVerbose(ev.Tick, label, ev.Faction.String(), "event", ev.Kind.String(), value, float64(ev.Amount))
		return
	}
	s.log.Add(ev.Tick, label, ev.Faction.String(), "event", ev.Kind.String(), value, float64(ev.Amount))
}

// onFired gives every grunt a chance to duck when the player shoots.
func (s *Sim) onFired(ev Event) {
	if ev.Faction != FactionPlayer {
		return
	}
	for _, c := range s.world.CombatantsOf(KindGrunt) {
		if g, ok := c.brain.(*gruntBrain); ok {
			g.duck(c, s)
		}
	}
}

func (s *Sim) onDefeated(ev Event) {
	if ev.Faction == FactionEnemy {
		s.defeated++
	}
	s.cycle.Remove(ev.Source)
	if s.waves != nil {
		s.waves.OnDefeated(ev.Source)
	}
}

// ActivateBoss switches the boss to its attacking phase. It is a no-op when
// there is no boss, the boss is already attacking, or the encounter is over.
func (s *Sim) ActivateBoss() bool {
	if s.boss == nil || s.Over() {
		return false
	}
	b, ok := s.boss.brain.(*bossBrain)
	if !ok {
		return false
	}
	return b.activate(s.boss)
}

// Over reports whether the encounter has been decided.
func (s *Sim) Over() bool { return s.outcome.Over() }

func (s *Sim) win(reason string) {
	if s.Over() || !s.player.Alive() {
		return
	}
	s.finish(OutcomeVictory, reason, EventVictory)
}

func (s *Sim) lose(reason string) {
	if s.Over() {
		return
	}
	s.finish(OutcomeDefeat, reason, EventDefeat)
}

func (s *Sim) finish(o Outcome, reason string, kind EventKind) {
	waves := 0
	if s.waves != nil {
		waves = s.waves.Waves
	}
	s.outcome = OutcomeReason{
		Outcome:         o,
		Tick:            s.tick,
		Description:     reason,
		EnemiesDefeated: s.defeated,
		PlayerHealth:    s.player.health.Current,
		Waves:           waves,
	}
	s.cycle.Stop()
	s.log.Add(s.tick, "--", "--", "outcome", o.String(), reason, float64(s.defeated))
	s.emit(Event{Kind: kind, Faction: FactionPlayer, Label: s.player.label, Pos: s.player.pos})
}

// Views returns the renderer state of every registered entity plus the
// lingering explosion visuals.
func (s *Sim) Views() []Presentable {
	var out []Presentable
	for _, c := range s.world.Combatants() {
		out = append(out, c.View())
	}
	for _, p := range s.world.Projectiles() {
		out = append(out, p.View())
	}
	for _, b := range s.projectiles.Blasts() {
		out = append(out, Presentable{
			Kind:    KindBlast,
			Faction: FactionNeutral,
			Label:   "explosion",
			Pos:     b.Pos,
			Bounds:  R(b.Pos.X-b.Radius, b.Pos.Y-b.Radius, b.Radius*2, b.Radius*2),
			Visual:  VisualAttacking,
			Opacity: 1 - float64(b.age)/float64(blastLifetime),
			Radius:  b.Radius,
		})
	}
	return out
}

func (s *Sim) Tick() int { return s.tick }
func (s *Sim) Spec() LevelSpec { return s.spec }
func (s *Sim) World() *World { return s.world }
func (s *Sim) Player() *Combatant { return s.player }
func (s *Sim) Controller() *PlayerController { return s.controller }
func (s *Sim) Cycle() *AttackCycle { return s.cycle }
func (s *Sim) Waves() *WaveSpawner { return s.waves }
func (s *Sim) Boss() *Combatant { return s.boss }
func (s *Sim) Outcome() OutcomeReason { return s.outcome }
func (s *Sim) Log() *SimLog { return s.log }
func (s *Sim) Feed() *CombatFeed { return s.feed }
func (s *Sim) Timeline() *Timeline { return s.timeline }
func (s *Sim) Projectiles() *ProjectileSystem { return s.projectiles }
func (s *Sim) Defeated() int { return s.defeated }
