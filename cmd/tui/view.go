package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Beachhead/internal/game"
)

// statusRows is the number of rows under the battlefield for the HUD and
// the last feed lines.
const statusRows = 4

// cellOf maps a world position into a cols x rows grid covering b.
func cellOf(p game.Vec2, b game.Rect, cols, rows int) (int, int) {
	cx := int((p.X - b.X) / b.W * float64(cols))
	cy := int((p.Y - b.Y) / b.H * float64(rows))
	return clampInt(cx, 0, cols-1), clampInt(cy, 0, rows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func coverGlyph(k game.CoverKind) rune {
	switch k {
	case game.CoverWall:
		return '#'
	case game.CoverBunker:
		return '='
	case game.CoverPlatform:
		return '_'
	default:
		return '"'
	}
}

// glyphFor picks the character drawn for a view.
func glyphFor(v game.Presentable) rune {
	if v.Visual == game.VisualDying || v.Visual == game.VisualDestroyed {
		return 'x'
	}
	switch v.Kind {
	case game.KindPlayer:
		if v.Visual == game.VisualCrouching {
			return 'a'
		}
		return '@'
	case game.KindGrunt:
		if v.Visual == game.VisualCrouching {
			return 'g'
		}
		return 'G'
	case game.KindMobile:
		return 'm'
	case game.KindBoss:
		if v.Visual == game.VisualAttacking {
			return 'B'
		}
		return 'b'
	case game.KindProjectile:
		return '*'
	default:
		return '%'
	}
}

func styleFor(v game.Presentable) tcell.Style {
	st := tcell.StyleDefault
	switch v.Faction {
	case game.FactionPlayer:
		st = st.Foreground(tcell.ColorDodgerBlue)
	case game.FactionEnemy:
		st = st.Foreground(tcell.ColorRed)
	default:
		st = st.Foreground(tcell.ColorOrange)
	}
	if v.Opacity < 1 && v.Kind != game.KindBlast {
		st = st.Dim(true)
	}
	return st
}

// render draws the whole frame.
func render(scr tcell.Screen, sim *game.Sim, paused, muted bool) {
	scr.Clear()
	cols, h := scr.Size()
	rows := h - statusRows
	if cols <= 0 || rows <= 0 {
		scr.Show()
		return
	}
	w := sim.World()
	b := w.Bounds

	if w.GroundY > 0 {
		_, gy := cellOf(game.V(b.X, w.GroundY), b, cols, rows)
		for x := 0; x < cols; x++ {
			scr.SetContent(x, gy, '-', nil, tcell.StyleDefault.Foreground(tcell.ColorOlive))
		}
	}
	coverStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, z := range w.Cover {
		x0, y0 := cellOf(game.V(z.Rect.X, z.Rect.Y), b, cols, rows)
		x1, y1 := cellOf(game.V(z.Rect.MaxX(), z.Rect.MaxY()), b, cols, rows)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				scr.SetContent(x, y, coverGlyph(z.Kind), nil, coverStyle)
			}
		}
	}
	for _, v := range sim.Views() {
		x, y := cellOf(v.Pos, b, cols, rows)
		if v.Kind == game.KindGrunt || v.Kind == game.KindBoss || v.Kind == game.KindPlayer {
			// Feet-anchored bodies read better one row up.
			y = clampInt(y-1, 0, rows-1)
		}
		scr.SetContent(x, y, glyphFor(v), nil, styleFor(v))
	}

	drawText(scr, 0, rows, tcell.StyleDefault.Reverse(true), padRight(statusLine(sim, paused, muted), cols))
	feed := sim.Feed().Recent()
	for i := 0; i < statusRows-1 && i < len(feed); i++ {
		e := feed[len(feed)-1-i]
		drawText(scr, 0, rows+1+i, tcell.StyleDefault, fmt.Sprintf("%3ds [%s] %s", e.Tick/game.TickRate, e.Label, e.Message))
	}
	scr.Show()
}

// statusLine summarises the encounter in one row.
func statusLine(sim *game.Sim, paused, muted bool) string {
	p := sim.Player()
	s := fmt.Sprintf(" %s  HP %d/%d  %s  down %d  t=%ds",
		sim.Spec().Name, p.Health().Current, p.Health().Max, sim.Controller().Weapon(), sim.Defeated(), sim.Tick()/game.TickRate)
	if ws := sim.Waves(); ws != nil {
		s += fmt.Sprintf("  wave %d hold %ds", ws.Waves, ws.SecondsLeft())
	}
	if paused {
		s += "  PAUSED"
	}
	if muted {
		s += "  muted"
	}
	if o := sim.Outcome(); o.Over() {
		s += fmt.Sprintf("  %s: %s (r restart, esc quit)", o.Outcome, o.Description)
	}
	return s
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}

func drawText(scr tcell.Screen, x, y int, st tcell.Style, s string) {
	for i, r := range s {
		scr.SetContent(x+i, y, r, nil, st)
	}
}
