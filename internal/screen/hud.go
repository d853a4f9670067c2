package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Beachhead/internal/game"
)

// speedLabel formats the sim speed for the HUD.
func speedLabel(speed float64, paused bool) string {
	switch {
	case paused:
		return "PAUSED"
	case speed == float64(int(speed)):
		return fmt.Sprintf("%dx", int(speed))
	default:
		return fmt.Sprintf("%.2gx", speed)
	}
}

// hudLines builds the status box text for the current encounter.
func hudLines(sim *game.Sim, speed string, status string) []string {
	p := sim.Player()
	hp := p.Health()
	lines := []string{
		fmt.Sprintf("%s  t=%ds  SIM: %s", sim.Spec().Name, sim.Tick()/game.TickRate, speed),
		fmt.Sprintf("HP %d/%d  weapon: %s", hp.Current, hp.Max, sim.Controller().Weapon()),
		fmt.Sprintf("enemies down: %d", sim.Defeated()),
	}
	if ws := sim.Waves(); ws != nil {
		lines = append(lines, fmt.Sprintf("wave %d  hostiles %d  hold %ds", ws.Waves, ws.MemberCount(), ws.SecondsLeft()))
	}
	if b := sim.Boss(); b != nil {
		if phase, ok := b.BossPhase(); ok {
			lines = append(lines, fmt.Sprintf("bunker %s  %d/%d", phase, b.Health().Current, b.Health().Max))
		}
	}
	lines = append(lines, "move WASD/arrows  fire Space  Q weapon")
	lines = append(lines, "R restart  P pause  ,/. speed  C copy log")
	if status != "" {
		lines = append(lines, "> "+status)
	}
	return lines
}

// healthColor shades the player's health bar by the remaining fraction.
func healthColor(frac float64) color.RGBA {
	switch {
	case frac > 0.5:
		return color.RGBA{R: 90, G: 200, B: 90, A: 230}
	case frac > 0.25:
		return color.RGBA{R: 220, G: 170, B: 60, A: 230}
	default:
		return color.RGBA{R: 220, G: 60, B: 50, A: 230}
	}
}

func (s *Screen) drawHUD(screen *ebiten.Image) {
	status := ""
	if s.statusTTL > 0 {
		status = s.status
	}
	lines := hudLines(s.sim, speedLabel(speeds[s.speedIdx], s.paused), status)

	// Render into hudBuf at 1x, then scale up.
	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4
	const barH = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*3 + barH)
	bx := float32(s.offX/hudScale + 4)
	by := float32(s.offY/hudScale + 4)

	s.hudBuf.Clear()
	vector.FillRect(s.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(s.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	vector.StrokeLine(s.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 80, G: 140, B: 80, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(s.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	frac := s.sim.Player().Health().Fraction()
	barW := boxW - padX*2
	barY := by + boxH - padY - barH
	vector.FillRect(s.hudBuf, bx+padX, barY, barW, barH, color.RGBA{R: 40, G: 40, B: 40, A: 220}, false)
	vector.FillRect(s.hudBuf, bx+padX, barY, barW*float32(frac), barH, healthColor(frac), false)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(s.hudBuf, opts)
}

// bannerText returns the headline and detail line for a finished encounter.
func bannerText(r game.OutcomeReason, hasNext bool) (string, string) {
	head := "DEFEAT"
	hint := "R to retry"
	if r.Outcome == game.OutcomeVictory {
		head = "VICTORY"
		if hasNext {
			hint = "N for the next level, R to replay"
		} else {
			hint = "R to replay"
		}
	}
	return head, fmt.Sprintf("%s after %ds, %d enemies down. %s", r.Description, r.Tick/game.TickRate, r.EnemiesDefeated, hint)
}

// drawBanner draws the outcome over the viewport centre.
func (s *Screen) drawBanner(screen *ebiten.Image) {
	_, hasNext := nextIn(s.opts.Levels, s.level)
	head, detail := bannerText(s.sim.Outcome(), hasNext)

	cx := float64(s.offX + viewW/2)
	cy := float64(s.offY + viewH/2)
	vector.FillRect(screen, float32(s.offX), float32(cy-60), viewW, 120, color.RGBA{R: 0, G: 0, B: 0, A: 170}, false)

	col := color.RGBA{R: 240, G: 80, B: 70, A: 255}
	if s.sim.Outcome().Outcome == game.OutcomeVictory {
		col = color.RGBA{R: 120, G: 230, B: 120, A: 255}
	}

	const headScale = 5
	w, _ := text.Measure(head, s.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Scale(headScale, headScale)
	op.GeoM.Translate(cx-w*headScale/2, cy-50)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, head, s.face, op)

	const detailScale = 2
	w, _ = text.Measure(detail, s.face, 0)
	op = &text.DrawOptions{}
	op.GeoM.Scale(detailScale, detailScale)
	op.GeoM.Translate(cx-w*detailScale/2, cy+24)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, detail, s.face, op)
}
