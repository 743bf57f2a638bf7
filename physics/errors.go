package physics

import "errors"

var (
	ErrInvalidSpawn    = errors.New("physics: spawn position outside world bounds")
	ErrInvalidTimestep = errors.New("physics: timestep must be positive and finite")
	ErrInvalidConfig   = errors.New("physics: invalid engine config")
	ErrInvalidBounds   = errors.New("physics: invalid world bounds")
)
