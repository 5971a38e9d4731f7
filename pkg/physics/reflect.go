// pkg/physics/reflect.go
package physics

import "math"

// HitPosition maps x onto [-1, 1] across a reflector centered at centerX.
func HitPosition(x, centerX, halfWidth float64) float64 {
	if halfWidth <= 0 {
		return 0
	}
	return Clamp((x-centerX)/halfWidth, -1, 1)
}

// PaddleReflect rebuilds a velocity from where the ball struck the paddle. The
// outgoing direction is tilted up to maxAngle from vertical and the speed is kept.
func PaddleReflect(ballX float64, vel Vector2D, centerX, halfWidth, maxAngle float64) Vector2D {
	hitPos := HitPosition(ballX, centerX, halfWidth)
	return FromUpAngle(hitPos*maxAngle, vel.Length())
}

// CurvedSurfaceY returns the height of a bowed paddle top at x. The crown rises
// curvature*height above topY at the center and meets topY at both ends.
func CurvedSurfaceY(x, centerX, halfWidth, topY, height, curvature float64) float64 {
	t := HitPosition(x, centerX, halfWidth)
	return topY - curvature*height*(1-t*t)
}

// EnforceMinDY keeps vertical speed at least minDY in magnitude. Zero becomes upward.
func EnforceMinDY(dy, minDY float64) float64 {
	if math.Abs(dy) >= minDY {
		return dy
	}
	if dy > 0 {
		return minDY
	}
	return -minDY
}
