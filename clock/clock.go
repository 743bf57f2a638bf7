package clock

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStep     = errors.New("clock: step must be positive")
	ErrNegativeElapsed = errors.New("clock: elapsed time is negative")
)

// DefaultStep is 60 physics steps per second.
const DefaultStep = time.Second / 60

// Stepper is advanced by the clock in constant increments of dt seconds.
type Stepper interface {
	Step(dt float64) error
}

// StepperFunc adapts a function to Stepper.
type StepperFunc func(dt float64) error

func (f StepperFunc) Step(dt float64) error {
	return f(dt)
}

// Clock is a fixed timestep accumulator. Render frames feed it whatever time
// actually passed; the target only ever sees steps of exactly Step. Time is
// kept as an integer Duration so accumulation never drifts.
type Clock struct {
	step     time.Duration
	maxSteps int
	target   Stepper

	acc     time.Duration
	paused  bool
	steps   uint64
	dropped time.Duration
}

// New creates a clock driving target. maxSteps caps the steps taken by one
// Advance call; leftover time beyond the cap is dropped so a long stall does
// not snowball. maxSteps <= 0 means no cap.
func New(step time.Duration, maxSteps int, target Stepper) (*Clock, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}
	if target == nil {
		return nil, errors.New("clock: nil target")
	}
	return &Clock{step: step, maxSteps: maxSteps, target: target}, nil
}

// Step returns the fixed step size.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Advance adds elapsed to the accumulator and runs as many whole steps as it
// covers. It returns the number of steps run. If the target fails, Advance
// stops and keeps the unspent time.
func (c *Clock) Advance(elapsed time.Duration) (int, error) {
	if elapsed < 0 {
		return 0, fmt.Errorf("%w: %v", ErrNegativeElapsed, elapsed)
	}
	if c.paused {
		return 0, nil
	}

	c.acc += elapsed
	dt := c.step.Seconds()
	n := 0
	for c.acc >= c.step {
		if c.maxSteps > 0 && n >= c.maxSteps {
			drop := c.acc - c.acc%c.step
			c.dropped += drop
			c.acc -= drop
			break
		}
		if err := c.target.Step(dt); err != nil {
			return n, err
		}
		c.acc -= c.step
		c.steps++
		n++
	}
	return n, nil
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
// Renderers may use it to interpolate between the last two states.
func (c *Clock) Alpha() float64 {
	return float64(c.acc) / float64(c.step)
}

// Pause stops time from accumulating until Resume.
func (c *Clock) Pause() {
	c.paused = true
}

// Resume restarts accumulation. Time that passed while paused is not replayed.
func (c *Clock) Resume() {
	c.paused = false
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Reset drops accumulated time and counters. The pause state is kept.
func (c *Clock) Reset() {
	c.acc = 0
	c.steps = 0
	c.dropped = 0
}

// Steps returns the number of steps run since the last Reset.
func (c *Clock) Steps() uint64 {
	return c.steps
}

// Dropped returns how much time the step cap discarded since the last Reset.
func (c *Clock) Dropped() time.Duration {
	return c.dropped
}
