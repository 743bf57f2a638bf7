package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vector2 is a plain 2D value. Arithmetic (Add, Sub, Mult, Dot, Length,
// Distance) comes from Chipmunk's vector type.
type Vector2 = cp.Vector

// Vec builds a Vector2.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Normalize returns the unit vector of v, or fallback when v has no length.
func Normalize(v, fallback Vector2) Vector2 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

func finite(v Vector2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
