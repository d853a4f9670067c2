package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/Garsondee/Beachhead/internal/level"
)

// tally is an EventSink counting what happened in one run.
type tally struct {
	fired    map[game.Faction]int
	hits     map[game.Faction]int // by victim faction
	defeated map[game.Kind]int
	blasts   int

	firstDefeatTick int
	bossActiveTick  int
}

func newTally() *tally {
	return &tally{
		fired:           map[game.Faction]int{},
		hits:            map[game.Faction]int{},
		defeated:        map[game.Kind]int{},
		firstDefeatTick: -1,
		bossActiveTick:  -1,
	}
}

func (t *tally) Emit(ev game.Event) {
	switch ev.Kind {
	case game.EventFired:
		t.fired[ev.Faction]++
	case game.EventHit:
		t.hits[ev.Faction]++
	case game.EventDefeated:
		t.defeated[ev.Entity]++
		if t.firstDefeatTick < 0 && ev.Faction == game.FactionEnemy {
			t.firstDefeatTick = ev.Tick
		}
	case game.EventExploded:
		t.blasts++
	case game.EventBossActivated:
		t.bossActiveTick = ev.Tick
	}
}

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	outcome game.OutcomeReason
	tally   *tally

	selections int // shooter cycle picks
	recovered  int // self-healing log entries
	log        *game.SimLog
}

// accuracy is enemy hits per player shot.
func (rs runStats) accuracy() float64 {
	shots := rs.tally.fired[game.FactionPlayer]
	if shots == 0 {
		return 0
	}
	return float64(rs.tally.hits[game.FactionEnemy]) / float64(shots)
}

type config struct {
	level    string
	bot      string
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	verbose  bool
	dumpLog  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.level, "level", "assault", "built-in level name or path to a level YAML file")
	flag.StringVar(&cfg.bot, "bot", "auto", "autopilot: auto, idle, advance, turret")
	flag.IntVar(&cfg.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&cfg.ticks, "ticks", 3600*2, "tick limit per run")
	flag.Int64Var(&cfg.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&cfg.seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&cfg.verbose, "verbose", false, "record shots and hits in the sim log")
	flag.BoolVar(&cfg.dumpLog, "dump-log", false, "print the full sim log of the last run")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Error("headless report failed", "err", err)
		os.Exit(1)
	}
}

var errBadFlag = errors.New("invalid flag")

func run(cfg config) error {
	if cfg.runs <= 0 {
		return fmt.Errorf("%w: -runs must be > 0", errBadFlag)
	}
	if cfg.ticks <= 0 {
		return fmt.Errorf("%w: -ticks must be > 0", errBadFlag)
	}
	spec, err := level.Load(cfg.level)
	if err != nil {
		return err
	}
	if _, err := newBot(cfg.bot, spec.Perspective); err != nil {
		return fmt.Errorf("%w: %w", errBadFlag, err)
	}

	fmt.Printf("=== Headless Combat Report ===\n")
	fmt.Printf("level=%s bot=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		spec.Name, cfg.bot, cfg.runs, cfg.ticks, cfg.seedBase, cfg.seedStep)

	all := make([]runStats, 0, cfg.runs)
	for i := 0; i < cfg.runs; i++ {
		spec.Seed = cfg.seedBase + int64(i)*cfg.seedStep
		b, _ := newBot(cfg.bot, spec.Perspective)
		rs := runOnce(i+1, spec, b, cfg.ticks, cfg.verbose)
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)

	if cfg.dumpLog {
		last := all[len(all)-1]
		fmt.Println("\n=== Sim Log (last run) ===")
		fmt.Print(last.log.Format())
	}
	return nil
}

// runOnce plays one encounter under the bot until it ends or the tick
// limit runs out.
func runOnce(runIndex int, spec game.LevelSpec, b bot, maxTicks int, verbose bool) runStats {
	sim := game.NewSim(spec, game.NewSimLog(verbose))
	t := newTally()
	sim.AddSink(t)

	for sim.Tick() < maxTicks && !sim.Over() {
		b.act(sim)
		sim.Step()
	}

	sl := sim.Log()
	recovered := 0
	for _, e := range sl.Entries() {
		if e.Category == "recover" {
			recovered++
		}
	}
	return runStats{
		runIndex:   runIndex,
		seed:       spec.Seed,
		ticks:      sim.Tick(),
		outcome:    sim.Outcome(),
		tally:      t,
		selections: sl.CountCategory("cycle", "select"),
		recovered:  recovered,
		log:        sl,
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	o := rs.outcome
	if o.Over() {
		fmt.Printf("outcome: %s at tick %d (%s) player_hp=%d waves=%d\n", o.Outcome, o.Tick, o.Description, o.PlayerHealth, o.Waves)
	} else {
		fmt.Printf("outcome: unresolved after %d ticks\n", rs.ticks)
	}
	fmt.Printf("shots: player=%d enemy=%d  hits_taken: player=%d enemy=%d  accuracy=%.2f\n",
		rs.tally.fired[game.FactionPlayer], rs.tally.fired[game.FactionEnemy],
		rs.tally.hits[game.FactionPlayer], rs.tally.hits[game.FactionEnemy], rs.accuracy())
	fmt.Printf("defeated: %s  blasts=%d\n", formatKinds(rs.tally.defeated), rs.tally.blasts)
	fmt.Printf("phase_markers: first_defeat=%d boss_active=%d cycle_selects=%d recovered=%d\n",
		rs.tally.firstDefeatTick, rs.tally.bossActiveTick, rs.selections, rs.recovered)
	fmt.Println()
}

// formatKinds prints a kind histogram in Kind order.
func formatKinds(m map[game.Kind]int) string {
	if len(m) == 0 {
		return "none"
	}
	kinds := make([]game.Kind, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}

// outcomeCounts tallies victories, defeats and unresolved runs.
func outcomeCounts(all []runStats) (wins, losses, open int) {
	for _, rs := range all {
		switch rs.outcome.Outcome {
		case game.OutcomeVictory:
			wins++
		case game.OutcomeDefeat:
			losses++
		default:
			open++
		}
	}
	return wins, losses, open
}

func printAggregate(all []runStats) {
	wins, losses, open := outcomeCounts(all)
	var endTicks []int
	totalShots, totalDefeated := 0, 0
	acc := 0.0
	for _, rs := range all {
		if rs.outcome.Over() {
			endTicks = append(endTicks, rs.outcome.Tick)
		}
		totalShots += rs.tally.fired[game.FactionPlayer]
		totalDefeated += rs.outcome.EnemiesDefeated
		acc += rs.accuracy()
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d victory=%d defeat=%d unresolved=%d\n", len(all), wins, losses, open)
	fmt.Printf("avg_per_run: player_shots=%.1f enemies_defeated=%.1f accuracy=%.2f\n",
		avg(totalShots, len(all)), avg(totalDefeated, len(all)), acc/float64(len(all)))
	fmt.Printf("avg_end_tick=%s\n", avgTickString(endTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
