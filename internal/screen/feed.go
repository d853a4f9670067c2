package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Beachhead/internal/game"
)

const (
	feedPanelWidth = 320
	feedLineHeight = 11
)

// factionDot returns the indicator colour for a feed line.
func factionDot(f game.Faction) color.RGBA {
	switch f {
	case game.FactionPlayer:
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	case game.FactionEnemy:
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
}

// feedLine formats one entry as seconds, label and message.
func feedLine(e game.FeedEntry) string {
	return fmt.Sprintf("%3ds [%s] %s", e.Tick/game.TickRate, e.Label, e.Message)
}

// visibleFeed returns the newest entries that fit in a panel of height h.
func visibleFeed(entries []game.FeedEntry, h int) []game.FeedEntry {
	maxVisible := (h - 24) / feedLineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	if len(entries) > maxVisible {
		return entries[len(entries)-maxVisible:]
	}
	return entries
}

// drawFeed renders the combat feed panel at panelX, newest at the bottom.
func drawFeed(screen *ebiten.Image, entries []game.FeedEntry, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "COMBAT FEED", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	visible := visibleFeed(entries, panelH)
	const recent = 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, factionDot(e.Faction), false)
		ebitenutil.DebugPrintAt(screen, feedLine(e), panelX+12, y)
		y += feedLineHeight
	}
}
