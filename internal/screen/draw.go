package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Beachhead/internal/game"
)

// flameSpread is the half-width of the flamer cone at its far edge.
const flameSpread = 40

var (
	colWindow = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	colSky    = color.RGBA{R: 22, G: 30, B: 38, A: 255}
	colField  = color.RGBA{R: 28, G: 42, B: 28, A: 255}
	colGround = color.RGBA{R: 58, G: 48, B: 34, A: 255}
	colBorder = color.RGBA{R: 65, G: 90, B: 65, A: 255}
)

// coverColor returns the fill for a cover zone kind.
func coverColor(k game.CoverKind) color.RGBA {
	switch k {
	case game.CoverWall:
		return color.RGBA{R: 90, G: 90, B: 96, A: 255}
	case game.CoverBunker:
		return color.RGBA{R: 110, G: 100, B: 70, A: 255}
	case game.CoverPlatform:
		return color.RGBA{R: 120, G: 84, B: 50, A: 255}
	default:
		return color.RGBA{R: 40, G: 70, B: 36, A: 200}
	}
}

// viewColor picks the body colour for a view, dimmed while dying and
// scaled by its opacity.
func viewColor(v game.Presentable) color.RGBA {
	var c color.RGBA
	switch v.Kind {
	case game.KindPlayer:
		c = color.RGBA{R: 70, G: 130, B: 220, A: 255}
	case game.KindGrunt:
		c = color.RGBA{R: 200, G: 70, B: 60, A: 255}
	case game.KindMobile:
		c = color.RGBA{R: 220, G: 140, B: 40, A: 255}
	case game.KindBoss:
		c = color.RGBA{R: 150, G: 60, B: 150, A: 255}
		if v.Visual == game.VisualAttacking {
			c = color.RGBA{R: 230, G: 80, B: 200, A: 255}
		}
	case game.KindProjectile:
		c = color.RGBA{R: 255, G: 240, B: 160, A: 255}
		if v.Faction == game.FactionEnemy {
			c = color.RGBA{R: 255, G: 120, B: 90, A: 255}
		}
	default:
		c = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	}
	if v.Visual == game.VisualDying || v.Visual == game.VisualDestroyed {
		c.R, c.G, c.B = c.R/2, c.G/2, c.B/2
	}
	return fade(c, v.Opacity)
}

func fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// drawWorld renders everything in world space, shifted by the camera.
func (s *Screen) drawWorld(dst *ebiten.Image) {
	w := s.sim.World()
	ox, oy := float32(-s.camX), float32(-s.camY)
	b := w.Bounds

	dst.Fill(colSky)
	if w.GroundY > 0 {
		vector.FillRect(dst, ox+float32(b.X), oy+float32(w.GroundY), float32(b.W), float32(b.MaxY()-w.GroundY), colGround, false)
	} else {
		vector.FillRect(dst, ox+float32(b.X), oy+float32(b.Y), float32(b.W), float32(b.H), colField, false)
	}

	for _, z := range w.Cover {
		r := z.Rect
		vector.FillRect(dst, ox+float32(r.X), oy+float32(r.Y), float32(r.W), float32(r.H), coverColor(z.Kind), false)
		if z.BlocksProjectiles {
			vector.StrokeRect(dst, ox+float32(r.X), oy+float32(r.Y), float32(r.W), float32(r.H), 1, color.RGBA{R: 20, G: 20, B: 20, A: 200}, false)
		}
	}

	for _, v := range s.sim.Views() {
		switch v.Kind {
		case game.KindProjectile:
			vector.FillCircle(dst, ox+float32(v.Pos.X), oy+float32(v.Pos.Y), 3, viewColor(v), false)
		case game.KindBlast:
			drawBlast(dst, v, ox, oy)
		default:
			drawCombatant(dst, v, ox, oy)
		}
	}
}

func drawCombatant(dst *ebiten.Image, v game.Presentable, ox, oy float32) {
	r := v.Bounds
	x, y := ox+float32(r.X), oy+float32(r.Y)
	col := viewColor(v)
	vector.FillRect(dst, x, y, float32(r.W), float32(r.H), col, false)

	if v.Visual == game.VisualDying || v.Visual == game.VisualDestroyed {
		if v.Explosive {
			vector.StrokeRect(dst, x-2, y-2, float32(r.W)+4, float32(r.H)+4, 2, fade(color.RGBA{R: 255, G: 160, B: 40, A: 255}, v.Opacity), false)
		}
		return
	}

	// Facing tick from the centre.
	cx, cy := ox+float32(r.X+r.W/2), oy+float32(r.Y+r.H/3)
	vector.StrokeLine(dst, cx, cy, cx+float32(v.Facing.X*14), cy+float32(v.Facing.Y*14), 2, color.RGBA{R: 230, G: 230, B: 230, A: 200}, false)

	if v.Kind != game.KindPlayer {
		ebitenutil.DebugPrintAt(dst, v.Label, int(x), int(y)-14)
	}
}

// drawBlast renders either a flamer cone (has a facing) or an explosion.
func drawBlast(dst *ebiten.Image, v game.Presentable, ox, oy float32) {
	col := viewColor(v)
	px, py := ox+float32(v.Pos.X), oy+float32(v.Pos.Y)
	if v.Facing.IsZero() {
		vector.FillCircle(dst, px, py, float32(v.Radius), fade(col, 0.5), false)
		vector.StrokeCircle(dst, px, py, float32(v.Radius), 1.5, col, false)
		return
	}
	far := v.Pos.Add(v.Facing.Scale(v.Radius))
	side := game.V(-v.Facing.Y, v.Facing.X).Scale(flameSpread)
	a, b := far.Add(side), far.Sub(side)

	var path vector.Path
	path.MoveTo(px, py)
	path.LineTo(ox+float32(a.X), oy+float32(a.Y))
	path.LineTo(ox+float32(b.X), oy+float32(b.Y))
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(fade(col, 0.6))
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}

// drawBorder frames the viewport in screen coordinates.
func (s *Screen) drawBorder(dst *ebiten.Image) {
	ox, oy := float32(s.offX), float32(s.offY)
	vector.StrokeRect(dst, ox-1, oy-1, viewW+2, viewH+2, 2.0, colBorder, false)
	vector.StrokeRect(dst, ox-3, oy-3, viewW+6, viewH+6, 1.0, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)
}
