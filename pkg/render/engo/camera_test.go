package engo

import (
	"math"
	"testing"

	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

func TestCamera_Fit(t *testing.T) {
	tests := []struct {
		name             string
		windowW, windowH float64
		wantScale        float64
		wantX, wantY     float64
	}{
		{"exact", 600, 800, 1, 0, 0},
		{"double", 1200, 1600, 2, 0, 0},
		{"wide_window_letterboxes_x", 1000, 800, 1, 200, 0},
		{"tall_window_letterboxes_y", 300, 800, 0.5, 0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(600, 800)
			c.Fit(tt.windowW, tt.windowH)

			if c.Scale() != tt.wantScale {
				t.Errorf("Scale() = %v, want %v", c.Scale(), tt.wantScale)
			}
			p := c.WorldToScreen(physics.Vector2D{})
			if float64(p.X) != tt.wantX || float64(p.Y) != tt.wantY {
				t.Errorf("origin maps to (%v,%v), want (%v,%v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCamera_FitIgnoresEmptyWindow(t *testing.T) {
	c := NewCamera(600, 800)
	c.Fit(0, 0)
	if c.Scale() != 1 {
		t.Errorf("Scale() = %v, want the initial 1", c.Scale())
	}
}

func TestCamera_ScreenToWorldXRoundTrip(t *testing.T) {
	c := NewCamera(600, 800)
	c.Fit(1000, 800)

	for _, x := range []float64{0, 120.5, 300, 600} {
		p := c.WorldToScreen(physics.Vector2D{X: x})
		if got := c.ScreenToWorldX(p.X); math.Abs(got-x) > 1e-3 {
			t.Errorf("round trip of %v gave %v", x, got)
		}
	}
}

func TestCamera_BoxToScreen(t *testing.T) {
	c := NewCamera(600, 800)
	c.Fit(1200, 1600)

	pos, w, h := c.BoxToScreen(physics.AABB{X: 10, Y: 20, W: 48, H: 16})
	if pos.X != 20 || pos.Y != 40 || w != 96 || h != 32 {
		t.Errorf("BoxToScreen() = %v %v %v", pos, w, h)
	}
}

func TestCamera_Shake(t *testing.T) {
	c := NewCamera(600, 800)

	c.Shake(10, 10, 2)
	even := c.WorldToScreen(physics.Vector2D{})
	c.Shake(10, 10, 3)
	odd := c.WorldToScreen(physics.Vector2D{})
	if even.X != shakeAmplitude || odd.X != -shakeAmplitude {
		t.Errorf("full shake x = %v / %v, want +-%d", even.X, odd.X, shakeAmplitude)
	}
	if c.ScreenToWorldX(100) != 100 {
		t.Error("ScreenToWorldX should ignore shake")
	}

	c.Shake(5, 10, 2)
	if got := c.WorldToScreen(physics.Vector2D{}).X; got != shakeAmplitude/2.0 {
		t.Errorf("half shake x = %v", got)
	}

	c.Shake(0, 10, 2)
	if got := c.WorldToScreen(physics.Vector2D{}); got.X != 0 || got.Y != 0 {
		t.Errorf("no flash should not shake, got %v", got)
	}
}
