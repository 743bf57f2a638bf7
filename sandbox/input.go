package sandbox

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned for velocity text that is not a usable speed.
var ErrInvalidInput = errors.New("sandbox: invalid input")

// ParseVelocity parses a throw speed in units/second. The text must be a
// finite number in [0, maxSpeed]. A non-positive maxSpeed disables the upper
// bound.
func ParseVelocity(text string, maxSpeed float64) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty velocity", ErrInvalidInput)
	}

	// ParseFloat also takes hex floats; only plain decimal is a velocity
	if digits := strings.ToLower(strings.TrimLeft(s, "+-")); strings.HasPrefix(digits, "0x") {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidInput, s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidInput, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative velocity %g", ErrInvalidInput, v)
	}
	if maxSpeed > 0 && v > maxSpeed {
		return 0, fmt.Errorf("%w: velocity %g above %g", ErrInvalidInput, v, maxSpeed)
	}
	return v, nil
}
