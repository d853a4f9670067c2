// Package screen is the ebiten front end over a game.Sim: it turns key
// presses into player intents, steps the simulation at the selected speed
// and draws the views, HUD and combat feed.
package screen

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Beachhead/internal/game"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// hudScale is the integer upscale factor applied to the HUD box.
const hudScale = 2

// Viewport size in world pixels. Wider levels scroll with the player.
const (
	viewW = 1280
	viewH = 650
)

// speeds is the simulation speed ladder selected with , and .
var speeds = []float64{0.25, 0.5, 1, 2, 4}

// Options configures a Screen.
type Options struct {
	// Levels is the progression order; N advances to the next one after a
	// victory.
	Levels []string
	// Load resolves a level name to a spec.
	Load func(name string) (game.LevelSpec, error)
	// Sinks are subscribed to every sim the screen builds (audio).
	Sinks []game.EventSink
	// OnMute is called when M toggles the sound.
	OnMute  func(muted bool)
	Verbose bool
}

// Screen implements ebiten.Game.
type Screen struct {
	opts  Options
	level string
	sim   *game.Sim

	width, height int
	offX, offY    int

	worldBuf *ebiten.Image
	hudBuf   *ebiten.Image
	face     *text.GoXFace

	binds []binding

	camX, camY float64

	speedIdx  int
	paused    bool
	tickAccum float64
	showHUD   bool
	muted     bool
	status    string // transient HUD message
	statusTTL int
}

// New builds the sim for the named level and returns a ready Screen.
func New(name string, opts Options) (*Screen, error) {
	s := &Screen{
		opts:     opts,
		width:    borderWidth*2 + viewW + feedPanelWidth,
		height:   borderWidth*2 + viewH,
		offX:     borderWidth,
		offY:     borderWidth,
		face:     text.NewGoXFace(basicfont.Face7x13),
		speedIdx: 2,
		showHUD:  true,
	}
	s.worldBuf = ebiten.NewImage(viewW, viewH)
	s.hudBuf = ebiten.NewImage(s.width/hudScale, s.height/hudScale)
	if err := s.load(name); err != nil {
		return nil, err
	}
	return s, nil
}

// load replaces the current sim with a fresh one for the named level.
func (s *Screen) load(name string) error {
	spec, err := s.opts.Load(name)
	if err != nil {
		return fmt.Errorf("failed to load level %q: %w", name, err)
	}
	sim := game.NewSim(spec, game.NewSimLog(s.opts.Verbose))
	for _, sink := range s.opts.Sinks {
		sim.AddSink(sink)
	}
	s.level = name
	s.sim = sim
	s.binds = bindingsFor(spec.Perspective)
	s.tickAccum = 0
	log.Info("level started", "level", name, "perspective", spec.Perspective, "seed", spec.Seed)
	return nil
}

// Sim returns the running encounter.
func (s *Screen) Sim() *game.Sim { return s.sim }

// Size returns the window size the screen lays out for.
func (s *Screen) Size() (int, int) { return s.width, s.height }

// Update runs input handling once per frame and the simulation at the
// selected speed. Slow speeds accumulate fractional ticks.
func (s *Screen) Update() error {
	s.handleInput()

	if s.statusTTL > 0 {
		s.statusTTL--
	}
	if s.paused {
		return nil
	}
	s.tickAccum += speeds[s.speedIdx]
	for s.tickAccum >= 1.0 {
		s.tickAccum -= 1.0
		s.sim.Step()
	}
	s.follow()
	return nil
}

func (s *Screen) handleInput() {
	pc := s.sim.Controller()
	for i := range s.binds {
		s.binds[i].poll(pc)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.sim.Restart()
		s.resetBindings()
		s.flash("restarted")
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.nextLevel()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		pc.SwitchWeapon()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.paused = !s.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) && s.speedIdx > 0 {
		s.speedIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) && s.speedIdx < len(speeds)-1 {
		s.speedIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.showHUD = !s.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.muted = !s.muted
		if s.opts.OnMute != nil {
			s.opts.OnMute(s.muted)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.copyLog()
	}
}

// resetBindings forgets held keys so a restart does not replay stale
// releases into the new controller.
func (s *Screen) resetBindings() {
	for i := range s.binds {
		s.binds[i].held = false
	}
}

// nextLevel advances the progression after a victory.
func (s *Screen) nextLevel() {
	if s.sim.Outcome().Outcome != game.OutcomeVictory {
		return
	}
	next, ok := nextIn(s.opts.Levels, s.level)
	if !ok {
		s.flash("no more levels")
		return
	}
	if err := s.load(next); err != nil {
		log.Error("next level", "err", err)
		s.flash("failed to load " + next)
	}
}

func (s *Screen) copyLog() {
	if err := clipboard.WriteAll(s.sim.Log().Format()); err != nil {
		log.Warn("clipboard unavailable", "err", err)
		s.flash("clipboard unavailable")
		return
	}
	s.flash(fmt.Sprintf("copied %d log lines", s.sim.Log().Len()))
}

func (s *Screen) flash(msg string) {
	s.status = msg
	s.statusTTL = 2 * game.TickRate
}

// follow centres the camera on the player, clamped to the level bounds.
func (s *Screen) follow() {
	b := s.sim.World().Bounds
	p := s.sim.Player().Center()
	s.camX = cameraAxis(p.X, viewW, b.X, b.W)
	s.camY = cameraAxis(p.Y, viewH, b.Y, b.H)
}

// cameraAxis returns the viewport origin along one axis that centres on
// focus without showing space outside [lo, lo+span]. Levels smaller than
// the viewport are pinned to lo.
func cameraAxis(focus, view, lo, span float64) float64 {
	if span <= view {
		return lo
	}
	c := focus - view/2
	if c < lo {
		return lo
	}
	if c > lo+span-view {
		return lo + span - view
	}
	return c
}

// nextIn returns the level after cur in order.
func nextIn(order []string, cur string) (string, bool) {
	for i, name := range order {
		if name == cur && i+1 < len(order) {
			return order[i+1], true
		}
	}
	return "", false
}

// Draw renders the world viewport, the feed panel and the HUD.
func (s *Screen) Draw(screen *ebiten.Image) {
	screen.Fill(colWindow)

	s.worldBuf.Clear()
	s.drawWorld(s.worldBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(s.offX), float64(s.offY))
	screen.DrawImage(s.worldBuf, &blit)

	s.drawBorder(screen)
	drawFeed(screen, s.sim.Feed().Recent(), s.offX*2+viewW, s.height)

	if s.showHUD {
		s.drawHUD(screen)
	}
	if s.sim.Over() {
		s.drawBanner(screen)
	}
}

// Layout returns the fixed window size.
func (s *Screen) Layout(_, _ int) (int, int) {
	return s.width, s.height
}
