// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shieldwall/pkg/engine"
)

const (
	barWidth  = 160
	barHeight = 6
	hudMargin = 8
)

var (
	colorHUDText   = color.RGBA{255, 255, 255, 255}
	colorHPBar     = color.RGBA{90, 120, 255, 255}
	colorMultBar   = color.RGBA{255, 220, 60, 255}
	colorMultFlash = color.RGBA{255, 255, 255, 255}
	colorBarBack   = color.RGBA{40, 40, 40, 255}
)

// HUDSystem draws the score line, the ship and multiplier bars, and the
// state banners. Text is only drawn once a font is set.
type HUDSystem struct {
	sink    SpriteSink
	multMax float64
	font    *common.Font

	hpBack, hpBar     *sprite
	multBack, multBar *sprite
	line, banner      *sprite
}

// NewHUDSystem creates the HUD sprites. multMax scales the multiplier bar.
func NewHUDSystem(sink SpriteSink, multMax float64) *HUDSystem {
	hud := &HUDSystem{sink: sink, multMax: multMax}
	hud.hpBack = hud.rect(colorBarBack)
	hud.hpBar = hud.rect(colorHPBar)
	hud.multBack = hud.rect(colorBarBack)
	hud.multBar = hud.rect(colorMultBar)
	return hud
}

func (hud *HUDSystem) rect(c color.Color) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{
		Drawable: common.Rectangle{},
		Color:    c,
		Scale:    engo.Point{X: 1, Y: 1},
	}
	hud.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// SetFont enables text. The text sprites are created on first use.
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
	if hud.line != nil || font == nil {
		return
	}
	hud.line = hud.rect(colorHUDText)
	hud.banner = hud.rect(colorHUDText)
}

// Sync lays the HUD out for state.
func (hud *HUDSystem) Sync(state *engine.GameState) {
	if state == nil {
		return
	}
	playing := state.Status != engine.StatusLoading && state.Status != engine.StatusTitle

	hp := 0.0
	if state.Ship.MaxHP > 0 {
		hp = float64(state.Ship.HP) / float64(state.Ship.MaxHP)
	}
	hud.bar(hud.hpBack, hud.hpBar, hudMargin, hudMargin+20, hp, playing)

	hud.bar(hud.multBack, hud.multBar, hudMargin, hudMargin+32, hud.multFill(state.Multiplier), playing)
	if state.MultiplierFlash > 0 {
		hud.multBar.RenderComponent.Color = colorMultFlash
	} else {
		hud.multBar.RenderComponent.Color = colorMultBar
	}

	if hud.font == nil {
		return
	}
	hud.text(hud.line, StatusLine(state), hudMargin, hudMargin, playing)
	msg := BannerText(state)
	hud.text(hud.banner, msg, hudMargin, float32(engo.GameHeight())/2, msg != "")
}

// multFill maps the multiplier from [1, max] onto [0, 1].
func (hud *HUDSystem) multFill(mult float64) float64 {
	if hud.multMax <= 1 {
		return 0
	}
	return min(max((mult-1)/(hud.multMax-1), 0), 1)
}

func (hud *HUDSystem) bar(back, fill *sprite, x, y float32, frac float64, visible bool) {
	back.SpaceComponent.Position = engo.Point{X: x, Y: y}
	back.SpaceComponent.Width = barWidth
	back.SpaceComponent.Height = barHeight
	back.RenderComponent.Hidden = !visible

	fill.SpaceComponent.Position = engo.Point{X: x, Y: y}
	fill.SpaceComponent.Width = float32(barWidth * frac)
	fill.SpaceComponent.Height = barHeight
	fill.RenderComponent.Hidden = !visible || frac <= 0
}

func (hud *HUDSystem) text(s *sprite, msg string, x, y float32, visible bool) {
	s.RenderComponent.Drawable = common.Text{Font: hud.font, Text: msg}
	s.SpaceComponent.Position = engo.Point{X: x, Y: y}
	s.RenderComponent.Hidden = !visible
}

// StatusLine is the HUD score line.
func StatusLine(state *engine.GameState) string {
	return fmt.Sprintf("SCORE %06d   WAVE %d   x%.2f   SHIP %d/%d",
		state.Score, state.Wave, state.Multiplier, state.Ship.HP, state.Ship.MaxHP)
}

// BannerText is the centered message for non-playing states, or "".
func BannerText(state *engine.GameState) string {
	switch state.Status {
	case engine.StatusLoading:
		return "LOADING"
	case engine.StatusTitle:
		return "SHIELDWALL - click or press space"
	case engine.StatusWaveClear:
		return fmt.Sprintf("WAVE %d CLEAR   kills %d   blocks %d - click to continue",
			state.Wave, state.Stats.Kills, state.Stats.BlocksBroken)
	case engine.StatusGameOver:
		return fmt.Sprintf("GAME OVER   score %d - click to restart", state.Score)
	}
	return ""
}
