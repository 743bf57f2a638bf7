package physics

import (
	"fmt"
	"math"
)

// Config holds the engine tuning. Velocities are in units/second, gravity in
// units/second².
type Config struct {
	Gravity Vector2

	// WallRestitution scales the reflected velocity component on a wall bounce.
	WallRestitution float64
	// PairRestitution is used for the body/body impulse. 1 is perfectly elastic.
	PairRestitution float64
	// ExplosionThreshold is the pre-bounce speed a thrown body must exceed to explode.
	ExplosionThreshold float64

	BallRadius float64
	// Density converts area to mass: m = Density * π * r².
	Density float64

	// RestSpeed retires fragments whose speed after a wall contact drops below it.
	// Zero keeps fragments forever.
	RestSpeed float64
	// OffBoundsTolerance is how far a centre may stray outside the world before
	// the body is removed.
	OffBoundsTolerance float64
	// RestingPushBias converts overlap into separating velocity for overlapping
	// pairs that are not approaching each other.
	RestingPushBias float64
	// SeparationIterations bounds the positional relaxation passes per step.
	SeparationIterations int

	// MaxEvents caps the undrained event queue. Zero means unbounded.
	MaxEvents int
}

// DefaultConfig returns the tuning the sandbox ships with.
func DefaultConfig() Config {
	return Config{
		Gravity:              Vec(0, -900),
		WallRestitution:      0.7,
		PairRestitution:      1,
		ExplosionThreshold:   700,
		BallRadius:           10,
		Density:              1,
		RestSpeed:            20,
		OffBoundsTolerance:   50,
		RestingPushBias:      0.2,
		SeparationIterations: 64,
		MaxEvents:            4096,
	}
}

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	switch {
	case !finite(c.Gravity):
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	case !unitInterval(c.WallRestitution):
		return fmt.Errorf("%w: wall restitution %v not in (0,1]", ErrInvalidConfig, c.WallRestitution)
	case !unitInterval(c.PairRestitution):
		return fmt.Errorf("%w: pair restitution %v not in (0,1]", ErrInvalidConfig, c.PairRestitution)
	case !nonNegative(c.ExplosionThreshold):
		return fmt.Errorf("%w: explosion threshold %v", ErrInvalidConfig, c.ExplosionThreshold)
	case !positive(c.BallRadius):
		return fmt.Errorf("%w: ball radius %v", ErrInvalidConfig, c.BallRadius)
	case !positive(c.Density):
		return fmt.Errorf("%w: density %v", ErrInvalidConfig, c.Density)
	case !nonNegative(c.RestSpeed):
		return fmt.Errorf("%w: rest speed %v", ErrInvalidConfig, c.RestSpeed)
	case !nonNegative(c.OffBoundsTolerance):
		return fmt.Errorf("%w: off-bounds tolerance %v", ErrInvalidConfig, c.OffBoundsTolerance)
	case !nonNegative(c.RestingPushBias):
		return fmt.Errorf("%w: resting push bias %v", ErrInvalidConfig, c.RestingPushBias)
	case c.SeparationIterations < 1:
		return fmt.Errorf("%w: separation iterations %d", ErrInvalidConfig, c.SeparationIterations)
	case c.MaxEvents < 0:
		return fmt.Errorf("%w: max events %d", ErrInvalidConfig, c.MaxEvents)
	}
	return nil
}

func unitInterval(v float64) bool {
	return v > 0 && v <= 1
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
