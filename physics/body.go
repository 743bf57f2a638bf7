package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodyID identifies a body for the lifetime of an Engine. IDs are never reused.
type BodyID uint64

// Generation is the fragment depth of a body.
type Generation uint8

const (
	// GenerationThrown marks the ball launched by the user.
	GenerationThrown Generation = 0
	// GenerationFragment marks explosion fragments. They never explode again.
	GenerationFragment Generation = 1
)

// Body is a circular point mass. Only Position and Velocity change while a
// body is alive; Radius and Mass are fixed at creation.
type Body struct {
	ID         BodyID
	Position   Vector2
	Velocity   Vector2
	Radius     float64
	Mass       float64
	Generation Generation
	Alive      bool
}

// MassForRadius is the area based mass used for every body: density * π * r².
func MassForRadius(radius, density float64) float64 {
	return density * math.Pi * radius * radius
}

// Speed is the magnitude of the body's velocity.
func (b Body) Speed() float64 {
	return b.Velocity.Length()
}

// BB returns the axis aligned box around the body's circle.
func (b Body) BB() cp.BB {
	return cp.NewBBForCircle(b.Position, b.Radius)
}

// Overlaps reports whether the circles of a and b strictly intersect.
func (b Body) Overlaps(o Body) bool {
	r := b.Radius + o.Radius
	return b.Position.DistanceSq(o.Position) < r*r
}
