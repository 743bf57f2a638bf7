package explosion

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/milk9111/ballblast/physics"
)

var ErrInvalidConfig = errors.New("explosion: invalid config")

// Config tunes fragment count, size and speed.
type Config struct {
	// Count is MinFragments + floor(impactSpeed / SpeedPerFragment), clamped
	// to [MinFragments, MaxFragments].
	MinFragments     int
	MaxFragments     int
	SpeedPerFragment float64

	// FragmentRadius must be smaller than the parent's radius; larger values
	// fall back to half the parent radius.
	FragmentRadius float64

	// Each fragment leaves at impactSpeed * U(SpeedFractionMin, SpeedFractionMax).
	SpeedFractionMin float64
	SpeedFractionMax float64

	// AngleJitter randomises each direction by up to this fraction of half
	// the angular spacing between fragments. 0 gives a perfectly even fan.
	AngleJitter float64

	// Gap is extra clearance between the ring of fragments and the parent centre.
	Gap float64
}

// DefaultConfig returns small fragments that leave at 20-40% of the impact
// speed.
func DefaultConfig() Config {
	return Config{
		MinFragments:     5,
		MaxFragments:     12,
		SpeedPerFragment: 25,
		FragmentRadius:   5,
		SpeedFractionMin: 0.2,
		SpeedFractionMax: 0.4,
		AngleJitter:      0.5,
		Gap:              1,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MinFragments < 2:
		return fmt.Errorf("%w: min fragments %d < 2", ErrInvalidConfig, c.MinFragments)
	case c.MaxFragments < c.MinFragments:
		return fmt.Errorf("%w: max fragments %d < min %d", ErrInvalidConfig, c.MaxFragments, c.MinFragments)
	case !(c.SpeedPerFragment > 0) || math.IsInf(c.SpeedPerFragment, 0):
		return fmt.Errorf("%w: speed per fragment %v", ErrInvalidConfig, c.SpeedPerFragment)
	case !(c.FragmentRadius > 0) || math.IsInf(c.FragmentRadius, 0):
		return fmt.Errorf("%w: fragment radius %v", ErrInvalidConfig, c.FragmentRadius)
	case !(c.SpeedFractionMin >= 0) || c.SpeedFractionMax < c.SpeedFractionMin || !(c.SpeedFractionMax < 1):
		return fmt.Errorf("%w: speed fraction [%v, %v] not within [0, 1)", ErrInvalidConfig, c.SpeedFractionMin, c.SpeedFractionMax)
	case !(c.AngleJitter >= 0 && c.AngleJitter <= 1):
		return fmt.Errorf("%w: angle jitter %v not in [0, 1]", ErrInvalidConfig, c.AngleJitter)
	case !(c.Gap >= 0) || math.IsInf(c.Gap, 0):
		return fmt.Errorf("%w: gap %v", ErrInvalidConfig, c.Gap)
	}
	return nil
}

// CountRequest is the input of a CountPolicy.
type CountRequest struct {
	ImpactSpeed  float64
	ParentMass   float64
	MinFragments int
	MaxFragments int
}

// CountPolicy decides how many fragments an impact produces. The result is
// clamped to the configured range either way.
type CountPolicy interface {
	Count(req CountRequest) (int, error)
}

// LinearCount is the built-in policy.
type LinearCount struct {
	SpeedPerFragment float64
}

func (p LinearCount) Count(req CountRequest) (int, error) {
	if !(p.SpeedPerFragment > 0) {
		return req.MinFragments, nil
	}
	extra := math.Floor(req.ImpactSpeed / p.SpeedPerFragment)
	if math.IsNaN(extra) || extra < 0 {
		extra = 0
	}
	if extra > float64(req.MaxFragments) {
		extra = float64(req.MaxFragments)
	}
	return req.MinFragments + int(extra), nil
}

// Option configures a Spawner.
type Option func(s *Spawner)

// WithCountPolicy replaces the linear fragment count formula.
func WithCountPolicy(p CountPolicy) Option {
	return func(s *Spawner) {
		if p != nil {
			s.policy = p
		}
	}
}

// Spawner produces fragments on an even ring around the impact point. All
// randomness comes from one seeded source, so a seed replays exactly.
type Spawner struct {
	cfg    Config
	rng    *rand.Rand
	policy CountPolicy
	linear LinearCount
}

var _ physics.Spawner = (*Spawner)(nil)

// New creates a spawner seeded with seed.
func New(cfg Config, seed int64, opts ...Option) (*Spawner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Spawner{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		linear: LinearCount{SpeedPerFragment: cfg.SpeedPerFragment},
	}
	s.policy = s.linear
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Count returns the clamped fragment count for an impact.
func (s *Spawner) Count(impactSpeed, parentMass float64) int {
	req := CountRequest{
		ImpactSpeed:  impactSpeed,
		ParentMass:   parentMass,
		MinFragments: s.cfg.MinFragments,
		MaxFragments: s.cfg.MaxFragments,
	}
	n, err := s.policy.Count(req)
	if err != nil {
		log.Printf("Explosion: count policy failed, using linear count: %v", err)
		n, _ = s.linear.Count(req)
	}
	return min(max(n, s.cfg.MinFragments), s.cfg.MaxFragments)
}

// Spawn implements physics.Spawner.
func (s *Spawner) Spawn(req physics.SpawnRequest) []physics.Fragment {
	n := s.Count(req.ImpactSpeed, req.Parent.Mass)

	fr := s.cfg.FragmentRadius
	if req.Parent.Radius > 0 && fr >= req.Parent.Radius {
		fr = req.Parent.Radius / 2
	}

	// Neighbours on a ring of radius R sit 2R·sin(π/n) apart, so this R
	// keeps every pair at least 2·fr apart.
	spacing := math.Pi / float64(n)
	ring := math.Max(req.Parent.Radius, fr/math.Sin(spacing)) + s.cfg.Gap
	center := fitRing(req.Position, ring+fr, req.World)

	base := s.rng.Float64() * 2 * spacing
	out := make([]physics.Fragment, 0, n)
	for i := 0; i < n; i++ {
		angle := base + float64(i)*2*spacing
		dir := physics.Vec(math.Cos(angle), math.Sin(angle))

		heading := angle + (s.rng.Float64()*2-1)*s.cfg.AngleJitter*spacing
		frac := s.cfg.SpeedFractionMin + s.rng.Float64()*(s.cfg.SpeedFractionMax-s.cfg.SpeedFractionMin)
		speed := req.ImpactSpeed * frac

		out = append(out, physics.Fragment{
			Position: center.Add(dir.Mult(ring)),
			Velocity: physics.Vec(math.Cos(heading), math.Sin(heading)).Mult(speed),
			Radius:   fr,
		})
	}
	return out
}

// fitRing moves a ring's centre the least distance that keeps a circle of
// radius extent around it inside the world. An axis too small for the ring
// centres it on that axis.
func fitRing(p physics.Vector2, extent float64, w physics.World) physics.Vector2 {
	if !w.Valid() {
		return p
	}
	return physics.Vec(
		fitAxis(p.X, extent, w.XMin(), w.XMax()),
		fitAxis(p.Y, extent, w.YMin(), w.YMax()),
	)
}

func fitAxis(v, extent, lo, hi float64) float64 {
	lo, hi = lo+extent, hi-extent
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}
