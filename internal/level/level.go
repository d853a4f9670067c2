// Package level loads encounter layouts from YAML. The two stock levels are
// embedded; any other level is read from disk.
package level

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var builtin embed.FS

var (
	// ErrUnknownLevel is returned for a name that is neither built in nor a
	// YAML file path.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrInvalidLevel wraps every validation failure.
	ErrInvalidLevel = errors.New("invalid level")
)

type vec [2]float64

func (v vec) toVec() game.Vec2 { return game.V(v[0], v[1]) }

type rect [4]float64

func (r rect) toRect() game.Rect { return game.R(r[0], r[1], r[2], r[3]) }

type levelFile struct {
	Name        string  `yaml:"name"`
	Perspective string  `yaml:"perspective"`
	Seed        int64   `yaml:"seed"`
	Bounds      rect    `yaml:"bounds"`
	GroundY     float64 `yaml:"ground_y"`

	Player struct {
		Spawn   vec      `yaml:"spawn"`
		Health  int      `yaml:"health"`
		Weapons []string `yaml:"weapons"`
	} `yaml:"player"`

	Cover []struct {
		Kind string `yaml:"kind"`
		Rect rect   `yaml:"rect"`
	} `yaml:"cover"`

	Grunts []struct {
		Pos        vec     `yaml:"pos"`
		Health     int     `yaml:"health"`
		Protection float64 `yaml:"protection"`
		Patrol     bool    `yaml:"patrol"`
	} `yaml:"grunts"`

	Mobiles []spawnFile `yaml:"mobiles"`
	Boss    *spawnFile  `yaml:"boss"`
	Cycle   *cycleFile  `yaml:"cycle"`
	Wave    *waveFile   `yaml:"wave"`
}

type spawnFile struct {
	Pos    vec `yaml:"pos"`
	Health int `yaml:"health"`
}

// cycleFile holds the shooter cycle timings in milliseconds.
type cycleFile struct {
	StartMs    int `yaml:"start_ms"`
	Shots      int `yaml:"shots"`
	IntervalMs int `yaml:"interval_ms"`
	SettleMs   int `yaml:"settle_ms"`
	HideMs     int `yaml:"hide_ms"`
	AdvanceMs  int `yaml:"advance_ms"`
	RetryMs    int `yaml:"retry_ms"`
}

type waveFile struct {
	Batch   int  `yaml:"batch"`
	Region  rect `yaml:"region"`
	Seconds int  `yaml:"seconds"`
	Health  int  `yaml:"health"`
}

// Names returns the built-in level names, sorted.
func Names() []string {
	entries, err := builtin.ReadDir("levels")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

// Load returns a built-in level by name, or reads name as a YAML file path.
func Load(name string) (game.LevelSpec, error) {
	if data, err := builtin.ReadFile("levels/" + name + ".yaml"); err == nil {
		return Parse(data, name)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".yaml" && ext != ".yml" {
		return game.LevelSpec{}, fmt.Errorf("%w: %q (built in: %s)", ErrUnknownLevel, name, strings.Join(Names(), ", "))
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return game.LevelSpec{}, fmt.Errorf("failed to read level file %s: %w", name, err)
	}
	return Parse(data, name)
}

// MustLoad is Load for the built-in levels, which are known to be valid.
func MustLoad(name string) game.LevelSpec {
	spec, err := Load(name)
	if err != nil {
		panic(err)
	}
	return spec
}

// Parse decodes and validates a level. source names the level in errors.
func Parse(data []byte, source string) (game.LevelSpec, error) {
	var f levelFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return game.LevelSpec{}, fmt.Errorf("failed to parse level YAML from %s: %w", source, err)
	}
	spec, err := f.toSpec()
	if err != nil {
		return game.LevelSpec{}, fmt.Errorf("level %s: %w", source, err)
	}
	if err := Validate(spec); err != nil {
		return game.LevelSpec{}, fmt.Errorf("level %s: %w", source, err)
	}
	log.Debug("level loaded", "name", spec.Name, "source", source,
		"perspective", spec.Perspective, "grunts", len(spec.Grunts), "cover", len(spec.Cover))
	return spec, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}

func (f *levelFile) toSpec() (game.LevelSpec, error) {
	p, ok := game.ParsePerspective(f.Perspective)
	if !ok {
		return game.LevelSpec{}, invalid("unknown perspective %q", f.Perspective)
	}
	spec := game.LevelSpec{
		Name:         f.Name,
		Perspective:  p,
		Bounds:       f.Bounds.toRect(),
		GroundY:      f.GroundY,
		PlayerSpawn:  f.Player.Spawn.toVec(),
		PlayerHealth: f.Player.Health,
		Seed:         f.Seed,
		Cycle:        game.DefaultCycleConfig(),
	}
	for _, w := range f.Player.Weapons {
		weapon, ok := game.ParseWeapon(w)
		if !ok {
			return game.LevelSpec{}, invalid("unknown weapon %q", w)
		}
		spec.Weapons = append(spec.Weapons, weapon)
	}
	for i, c := range f.Cover {
		kind, err := game.ParseCoverKind(c.Kind)
		if err != nil {
			return game.LevelSpec{}, invalid("cover %d: %v", i, err)
		}
		spec.Cover = append(spec.Cover, game.NewCoverZone(kind, c.Rect.toRect()))
	}
	for _, g := range f.Grunts {
		spec.Grunts = append(spec.Grunts, game.GruntSpawn{
			Pos:              g.Pos.toVec(),
			Health:           g.Health,
			ProtectionHeight: g.Protection,
			Patrol:           g.Patrol,
		})
	}
	for _, m := range f.Mobiles {
		spec.Mobiles = append(spec.Mobiles, game.MobileSpawn{Pos: m.Pos.toVec(), Health: m.Health})
	}
	if f.Boss != nil {
		spec.Boss = &game.BossSpawn{Pos: f.Boss.Pos.toVec(), Health: f.Boss.Health}
	}
	if c := f.Cycle; c != nil {
		spec.Cycle = game.CycleConfig{
			StartDelay:   game.TicksFromMs(c.StartMs),
			Shots:        c.Shots,
			ShotInterval: game.TicksFromMs(c.IntervalMs),
			SettleDelay:  game.TicksFromMs(c.SettleMs),
			HideTicks:    game.TicksFromMs(c.HideMs),
			AdvanceDelay: game.TicksFromMs(c.AdvanceMs),
			RetryDelay:   game.TicksFromMs(c.RetryMs),
		}
	}
	if w := f.Wave; w != nil {
		spec.Wave = &game.WaveSpec{
			BatchSize: w.Batch,
			Region:    w.Region.toRect(),
			Seconds:   w.Seconds,
			Health:    w.Health,
		}
	}
	return spec, nil
}

// Validate checks a level for values the simulation cannot run with.
func Validate(spec game.LevelSpec) error {
	b := spec.Bounds
	if b.W <= 0 || b.H <= 0 {
		return invalid("bounds must be positive, got %.0fx%.0f", b.W, b.H)
	}
	if spec.Perspective == game.PerspectiveSide && (spec.GroundY <= b.MinY() || spec.GroundY > b.MaxY()) {
		return invalid("ground_y %.0f outside bounds", spec.GroundY)
	}
	if !b.Contains(spec.PlayerSpawn) {
		return invalid("player spawn (%.0f,%.0f) outside bounds", spec.PlayerSpawn.X, spec.PlayerSpawn.Y)
	}
	if spec.PlayerHealth < 0 {
		return invalid("player health cannot be negative, got %d", spec.PlayerHealth)
	}
	if len(spec.Weapons) == 0 {
		return invalid("at least one weapon is required")
	}
	for i, c := range spec.Cover {
		if c.Rect.W <= 0 || c.Rect.H <= 0 {
			return invalid("cover %d: size must be positive", i)
		}
	}
	for i, g := range spec.Grunts {
		if g.Health < 0 || g.ProtectionHeight < 0 {
			return invalid("grunt %d: health and protection cannot be negative", i)
		}
		if !b.Contains(g.Pos) {
			return invalid("grunt %d outside bounds", i)
		}
	}
	for i, m := range spec.Mobiles {
		if m.Health < 0 {
			return invalid("mobile %d: health cannot be negative, got %d", i, m.Health)
		}
	}
	if spec.Boss != nil {
		if spec.Boss.Health < 0 {
			return invalid("boss health cannot be negative, got %d", spec.Boss.Health)
		}
		// The boss only wakes when the grunt roster empties.
		if len(spec.Grunts) == 0 {
			return invalid("a boss needs at least one grunt")
		}
	}
	if len(spec.Grunts) > 0 {
		c := spec.Cycle
		if c.Shots <= 0 || c.ShotInterval <= 0 || c.HideTicks <= 0 {
			return invalid("cycle needs positive shots, interval and hide time")
		}
	}
	if w := spec.Wave; w != nil {
		if w.BatchSize <= 0 || w.Seconds <= 0 || w.Health < 0 {
			return invalid("wave needs a positive batch size and timer")
		}
		if w.Region.W <= 0 || w.Region.H <= 0 || !w.Region.Inside(b) {
			return invalid("wave region must lie inside the bounds")
		}
	}
	if len(spec.Grunts) == 0 && len(spec.Mobiles) == 0 && spec.Wave == nil {
		return invalid("level has no enemies")
	}
	return nil
}
