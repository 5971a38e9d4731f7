// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// shakeAmplitude is the window offset, in game units, of a full-strength shake.
const shakeAmplitude = 6

// Camera maps the fixed playfield into the window, letterboxing to keep the
// aspect ratio, and shakes while the screen flash is active.
type Camera struct {
	scale   float64
	offsetX float64
	offsetY float64
	shake   physics.Vector2D

	fieldW float64
	fieldH float64
}

// NewCamera creates a camera for a playfield of the given size.
func NewCamera(fieldW, fieldH float64) *Camera {
	return &Camera{scale: 1, fieldW: fieldW, fieldH: fieldH}
}

// Fit recomputes scale and letterbox offsets for a window of the given size.
func (c *Camera) Fit(windowW, windowH float64) {
	if windowW <= 0 || windowH <= 0 || c.fieldW <= 0 || c.fieldH <= 0 {
		return
	}
	sx := windowW / c.fieldW
	sy := windowH / c.fieldH
	c.scale = min(sx, sy)
	c.offsetX = (windowW - c.fieldW*c.scale) / 2
	c.offsetY = (windowH - c.fieldH*c.scale) / 2
}

// FitGame fits the camera to engo's current game size.
func (c *Camera) FitGame() {
	c.Fit(float64(engo.GameWidth()), float64(engo.GameHeight()))
}

// Shake sets the shake offset for this frame. flash counts down from full; the
// offset alternates sides every tick and fades with the count.
func (c *Camera) Shake(flash, full int, tick uint64) {
	if flash <= 0 || full <= 0 {
		c.shake = physics.Vector2D{}
		return
	}
	amp := shakeAmplitude * float64(flash) / float64(full)
	if tick%2 == 1 {
		amp = -amp
	}
	c.shake = physics.Vector2D{X: amp, Y: -amp / 2}
}

// Scale returns game units per playfield unit.
func (c *Camera) Scale() float64 {
	return c.scale
}

// WorldToScreen converts a playfield point to game coordinates.
func (c *Camera) WorldToScreen(p physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(p.X*c.scale + c.offsetX + c.shake.X),
		Y: float32(p.Y*c.scale + c.offsetY + c.shake.Y),
	}
}

// BoxToScreen converts a playfield box to a game-space position and size.
func (c *Camera) BoxToScreen(b physics.AABB) (engo.Point, float32, float32) {
	return c.WorldToScreen(physics.Vector2D{X: b.X, Y: b.Y}),
		float32(b.W * c.scale), float32(b.H * c.scale)
}

// ScreenToWorldX converts a game-space x back to the playfield, ignoring shake.
// It steers the shield from the mouse.
func (c *Camera) ScreenToWorldX(x float32) float64 {
	if c.scale == 0 {
		return 0
	}
	return (float64(x) - c.offsetX) / c.scale
}
