package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// World is the fixed rectangular simulation area. The y axis points up:
// Bounds.B is the floor and Bounds.T the ceiling.
type World struct {
	bounds cp.BB
}

// NewWorld creates a world spanning [xMin, xMax] x [yMin, yMax].
func NewWorld(xMin, yMin, xMax, yMax float64) (World, error) {
	for _, v := range []float64{xMin, yMin, xMax, yMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return World{}, fmt.Errorf("%w: non-finite edge", ErrInvalidBounds)
		}
	}
	if xMin >= xMax || yMin >= yMax {
		return World{}, fmt.Errorf("%w: (%g,%g)-(%g,%g)", ErrInvalidBounds, xMin, yMin, xMax, yMax)
	}
	return World{bounds: cp.BB{L: xMin, B: yMin, R: xMax, T: yMax}}, nil
}

// Bounds returns the world rectangle.
func (w World) Bounds() cp.BB {
	return w.bounds
}

func (w World) XMin() float64 { return w.bounds.L }
func (w World) YMin() float64 { return w.bounds.B }
func (w World) XMax() float64 { return w.bounds.R }
func (w World) YMax() float64 { return w.bounds.T }

func (w World) Width() float64  { return w.bounds.R - w.bounds.L }
func (w World) Height() float64 { return w.bounds.T - w.bounds.B }

// Contains reports whether p lies inside the world, edges included.
func (w World) Contains(p Vector2) bool {
	return finite(p) && w.bounds.ContainsVect(p)
}

// Valid reports whether the world was built by NewWorld.
func (w World) Valid() bool {
	return w.bounds.L < w.bounds.R && w.bounds.B < w.bounds.T
}

// outside returns how far p lies beyond the bounds on either axis, 0 when inside.
func (w World) outside(p Vector2) float64 {
	d := 0.0
	d = math.Max(d, w.bounds.L-p.X)
	d = math.Max(d, p.X-w.bounds.R)
	d = math.Max(d, w.bounds.B-p.Y)
	d = math.Max(d, p.Y-w.bounds.T)
	return d
}
