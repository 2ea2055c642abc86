package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/band-battle/core"
)

const healthBarWidth = 10

// HUD is the status line drawn under the field
type HUD struct {
	MatchID    string
	Objects    int
	RedHealth  float64
	BlueHealth float64
	Playing    bool
	Paused     bool
	Winner     string // empty while both bands stand
	Dropped    uint64 // frames dropped by the scheduler
}

// drawText writes s starting at (x, y), clipped to the screen width; returns the next column
func (f *Field) drawText(x, y int, s string, style tcell.Style) int {
	sw, _ := f.screen.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		if x >= 0 {
			f.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

// healthBar renders health as a fixed-width bar
func healthBar(health float64) string {
	health = min(1, max(0, health))
	filled := int(health*healthBarWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("·", healthBarWidth-filled)
}

func (f *Field) drawHUD(hud HUD) {
	sw, sh := f.screen.Size()
	y := sh - HudRows
	if y < 0 {
		return
	}

	base := tcell.StyleDefault.Background(tcellColor(RgbHudBg)).Foreground(tcellColor(RgbHudText))
	dim := base.Foreground(tcellColor(RgbHudDim))
	for x := 0; x < sw; x++ {
		f.screen.SetContent(x, y, ' ', nil, base)
	}

	x := f.drawText(0, y, fmt.Sprintf(" objects %d ", hud.Objects), base)
	x = f.drawText(x, y, "│ RED ", base.Foreground(tcellColor(RgbRedTeam)))
	x = f.drawText(x, y, healthBar(hud.RedHealth), base.Foreground(tcellColor(GetHealthColor(hud.RedHealth))))
	x = f.drawText(x, y, " │ BLUE ", base.Foreground(tcellColor(RgbBlueTeam)))
	x = f.drawText(x, y, healthBar(hud.BlueHealth), base.Foreground(tcellColor(GetHealthColor(hud.BlueHealth))))

	status, color := "■ stopped", RgbHudDim
	switch {
	case hud.Paused:
		status, color = "‖ paused", RgbPaused
	case hud.Playing:
		status, color = "▶ playing", RgbPlaying
	}
	x = f.drawText(x, y, " │ ", base)
	x = f.drawText(x, y, status, base.Foreground(tcellColor(color)))

	if hud.Dropped > 0 {
		x = f.drawText(x, y, fmt.Sprintf(" │ dropped %d", hud.Dropped), dim)
	}
	if hud.MatchID != "" {
		f.drawText(x, y, " │ "+hud.MatchID, dim)
	}

	if hud.Winner != "" {
		f.drawBanner(strings.ToUpper(hud.Winner) + " WINS")
	}
}

// drawBanner centers text over the field
func (f *Field) drawBanner(text string) {
	sw, sh := f.screen.Size()
	fieldRows := sh - HudRows
	if fieldRows <= 0 {
		return
	}
	text = "  " + text + "  "
	x := (sw - len([]rune(text))) / 2
	style := tcell.StyleDefault.Background(tcellColor(RgbWinner)).Foreground(tcellColor(core.RGBBlack)).Bold(true)
	f.drawText(x, fieldRows/2, text, style)
}
