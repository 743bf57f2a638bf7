package sandbox

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/milk9111/ballblast/clock"
	"github.com/milk9111/ballblast/explosion"
	"github.com/milk9111/ballblast/physics"
	"github.com/milk9111/ballblast/prefabs"
)

// ErrBallInFlight rejects a throw while the previous ball is still live.
var ErrBallInFlight = errors.New("sandbox: ball already in flight")

// RenderBody is what a renderer gets to see of a body.
type RenderBody struct {
	ID         physics.BodyID
	Position   physics.Vector2
	Radius     float64
	Generation physics.Generation
}

type Stats struct {
	Bodies     int
	Explosions int
	Steps      uint64
	Dropped    time.Duration
}

type options struct {
	seed   int64
	debug  bool
	policy explosion.CountPolicy
}

type Option func(o *options)

// WithSeed overrides the spec's explosion seed.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithDebug logs every explosion.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// WithCountPolicy replaces the spec's count script.
func WithCountPolicy(p explosion.CountPolicy) Option {
	return func(o *options) { o.policy = p }
}

// Sandbox ties the engine to a fixed-step clock and exposes the actions the
// UI can take: throw, refresh, tick and snapshot. It is meant to be driven
// from a single goroutine.
type Sandbox struct {
	spec   *prefabs.SandboxSpec
	engine *physics.Engine
	clock  *clock.Clock

	spawn    physics.Vector2
	maxSpeed float64
	debug    bool

	// events collected step by step since the last Tick returned
	pending []physics.Event
}

// New builds a sandbox from spec. A zero seed in both the spec and the
// options seeds the spawner from the wall clock.
func New(spec *prefabs.SandboxSpec, opts ...Option) (*Sandbox, error) {
	if spec == nil {
		d := prefabs.DefaultSandboxSpec()
		spec = &d
	}

	o := options{seed: spec.Explosion.Seed}
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy == nil {
		o.policy = countPolicy(spec)
	}
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}

	world, err := World(spec)
	if err != nil {
		return nil, err
	}

	var spawnOpts []explosion.Option
	if o.policy != nil {
		spawnOpts = append(spawnOpts, explosion.WithCountPolicy(o.policy))
	}
	spawner, err := explosion.New(ExplosionConfig(spec), o.seed, spawnOpts...)
	if err != nil {
		return nil, err
	}

	engine, err := physics.New(PhysicsConfig(spec), world, spawner)
	if err != nil {
		return nil, err
	}

	spawn := physics.Vec(spec.Throw.SpawnX, spec.Throw.SpawnY)
	if !world.Contains(spawn) {
		return nil, fmt.Errorf("%w: spawn point (%g, %g)", physics.ErrInvalidSpawn, spawn.X, spawn.Y)
	}

	s := &Sandbox{
		spec:     spec,
		engine:   engine,
		spawn:    spawn,
		maxSpeed: spec.Throw.MaxSpeed,
		debug:    o.debug,
	}

	s.clock, err = clock.New(StepDuration(spec), spec.Clock.MaxStepsPerFrame, clock.StepperFunc(s.step))
	if err != nil {
		return nil, err
	}

	if o.debug {
		log.Printf("Sandbox: world %gx%g, seed %d, step %v", world.Width(), world.Height(), o.seed, s.clock.Step())
	}
	return s, nil
}

func (s *Sandbox) Spec() *prefabs.SandboxSpec {
	return s.spec
}

func (s *Sandbox) World() physics.World {
	return s.engine.World()
}

// Throw launches a ball horizontally from the spawn point at the speed in
// text. Nothing changes on error.
func (s *Sandbox) Throw(text string) (physics.BodyID, error) {
	speed, err := ParseVelocity(text, s.maxSpeed)
	if err != nil {
		return 0, err
	}
	if s.inFlight() {
		return 0, ErrBallInFlight
	}

	id, err := s.engine.AddBody(physics.Vec(speed, 0), s.spawn)
	if err != nil {
		return 0, err
	}
	if s.debug {
		log.Printf("Sandbox: threw body %d at %g units/s", id, speed)
	}
	return id, nil
}

func (s *Sandbox) inFlight() bool {
	for _, b := range s.engine.Snapshot() {
		if b.Generation == physics.GenerationThrown {
			return true
		}
	}
	return false
}

// Refresh removes every body and resets the clock.
func (s *Sandbox) Refresh() {
	s.engine.Clear()
	s.clock.Reset()
	s.pending = nil
}

// Tick advances the clock by elapsed wall time and returns the engine events
// produced by the steps it ran.
func (s *Sandbox) Tick(elapsed time.Duration) ([]physics.Event, error) {
	_, err := s.clock.Advance(elapsed)
	events := s.pending
	s.pending = nil
	return events, err
}

// step runs one engine step and takes its events right away, so a long Tick
// never lets the engine's bounded queue overflow.
func (s *Sandbox) step(dt float64) error {
	if err := s.engine.Step(dt); err != nil {
		return err
	}
	for _, evt := range s.engine.Events() {
		if ex, ok := evt.(physics.Exploded); ok && s.debug {
			log.Printf("Sandbox: body %d exploded at (%.1f, %.1f), impact %.1f, %d fragments",
				ex.ID, ex.Position.X, ex.Position.Y, ex.ImpactSpeed, len(ex.Fragments))
		}
		s.pending = append(s.pending, evt)
	}
	return nil
}

// Snapshot returns the live bodies ordered by ID.
func (s *Sandbox) Snapshot() []RenderBody {
	bodies := s.engine.Snapshot()
	out := make([]RenderBody, len(bodies))
	for i, b := range bodies {
		out[i] = RenderBody{
			ID:         b.ID,
			Position:   b.Position,
			Radius:     b.Radius,
			Generation: b.Generation,
		}
	}
	return out
}

func (s *Sandbox) Stats() Stats {
	return Stats{
		Bodies:     s.engine.Len(),
		Explosions: s.engine.Explosions(),
		Steps:      s.clock.Steps(),
		Dropped:    s.clock.Dropped(),
	}
}

// Alpha is the clock's interpolation fraction.
func (s *Sandbox) Alpha() float64 {
	return s.clock.Alpha()
}

func (s *Sandbox) Pause() {
	s.clock.Pause()
}

func (s *Sandbox) Resume() {
	s.clock.Resume()
}

func (s *Sandbox) Paused() bool {
	return s.clock.Paused()
}
