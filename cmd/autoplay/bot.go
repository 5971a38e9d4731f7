package main

import (
	"math"

	"github.com/opd-ai/go-shieldwall/pkg/engine"
)

// aimGain converts the horizontal distance to the target enemy into an offset
// under the ball, so the bounce angle leans toward it.
const aimGain = 0.1

// pickBall returns the ball the shield should chase: the lowest one that is
// falling, else the lowest one at all.
func pickBall(state *engine.GameState) (engine.BallState, bool) {
	var best engine.BallState
	found, falling := false, false
	for _, b := range state.Balls {
		down := b.Velocity.Y > 0
		switch {
		case !found:
		case down && !falling:
		case down == falling && b.Position.Y > best.Position.Y:
		default:
			continue
		}
		best, found, falling = b, true, down
	}
	return best, found
}

// lowestEnemy returns the center x of the living enemy closest to the danger line.
func lowestEnemy(state *engine.GameState) (float64, bool) {
	bottom := math.Inf(-1)
	x, found := 0.0, false
	for _, e := range state.Enemies {
		if b := e.Bounds.Bottom(); b > bottom {
			bottom, x, found = b, e.Bounds.X+e.Bounds.W/2, true
		}
	}
	return x, found
}

// shieldTarget picks where to put the shield for this tick.
func shieldTarget(state *engine.GameState) float64 {
	ball, ok := pickBall(state)
	if !ok {
		return state.Shield.CenterX
	}
	target := ball.Position.X
	if x, ok := lowestEnemy(state); ok {
		limit := state.Shield.Bounds.W / 4
		offset := max(-limit, min(limit, (x-ball.Position.X)*aimGain))
		target -= offset
	}
	return target
}

// hasRestingBall reports whether a ball is waiting on the shield for launch.
func hasRestingBall(state *engine.GameState) bool {
	for _, b := range state.Balls {
		if !b.Launched {
			return true
		}
	}
	return false
}
