// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a position or velocity on the playfield. Y grows downward.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns magnitude squared
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// WithLength rescales v to the given magnitude. A zero vector points straight up.
func (v Vector2D) WithLength(length float64) Vector2D {
	l := v.Length()
	if l == 0 {
		return Vector2D{X: 0, Y: -length}
	}
	return v.Scale(length / l)
}

// FromUpAngle builds a velocity of the given speed tilted theta radians from straight
// up; positive theta leans right.
func FromUpAngle(theta, speed float64) Vector2D {
	return Vector2D{
		X: speed * math.Sin(theta),
		Y: -speed * math.Cos(theta),
	}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
