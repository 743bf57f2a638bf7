package physics

import (
	"fmt"
	"math"
	"sync"
)

// SpawnRequest describes the impact that triggered an explosion.
type SpawnRequest struct {
	Parent      Body // copy of the exploding body, position clamped to the wall
	Position    Vector2
	ImpactSpeed float64 // |v| before the bounce
	World       World
}

// Fragment is a body produced by a Spawner. The engine assigns its ID, mass
// and generation.
type Fragment struct {
	Position Vector2
	Velocity Vector2
	Radius   float64
}

// Spawner turns an impact into fragments.
type Spawner interface {
	Spawn(req SpawnRequest) []Fragment
}

// Engine owns the live body set and advances it in fixed steps. Every public
// method takes the engine lock, so a step is atomic with respect to Snapshot.
//
// A nil Spawner disables explosions; thrown bodies then only bounce.
type Engine struct {
	mu sync.Mutex

	cfg     Config
	world   World
	spawner Spawner

	bodies  *bodySet
	nextID  BodyID
	events  eventQueue
	steps   uint64
	blasts  int
	touched map[BodyID]struct{}
}

type explosion struct {
	parent Body
	speed  float64
}

// New builds an engine for world.
func New(cfg Config, world World, spawner Spawner) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !world.Valid() {
		return nil, ErrInvalidBounds
	}
	if 2*cfg.BallRadius >= world.Width() || 2*cfg.BallRadius >= world.Height() {
		return nil, fmt.Errorf("%w: ball diameter %v does not fit the world", ErrInvalidConfig, 2*cfg.BallRadius)
	}
	return &Engine{
		cfg:     cfg,
		world:   world,
		spawner: spawner,
		bodies:  newBodySet(),
		events:  eventQueue{limit: cfg.MaxEvents},
		touched: make(map[BodyID]struct{}),
	}, nil
}

// World returns the simulation bounds.
func (e *Engine) World() World {
	return e.world
}

// AddBody inserts a thrown (generation 0) body. The position must lie inside
// the world and the velocity must be finite; otherwise ErrInvalidSpawn is
// returned and nothing changes.
func (e *Engine) AddBody(velocity, position Vector2) (BodyID, error) {
	if !e.world.Contains(position) {
		return 0, fmt.Errorf("%w: (%g, %g)", ErrInvalidSpawn, position.X, position.Y)
	}
	if !finite(velocity) {
		return 0, fmt.Errorf("%w: non-finite velocity", ErrInvalidSpawn)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.insert(position, velocity, e.cfg.BallRadius, GenerationThrown), nil
}

func (e *Engine) insert(pos, vel Vector2, radius float64, gen Generation) BodyID {
	e.nextID++
	e.bodies.Insert(Body{
		ID:         e.nextID,
		Position:   pos,
		Velocity:   vel,
		Radius:     radius,
		Mass:       MassForRadius(radius, e.cfg.Density),
		Generation: gen,
		Alive:      true,
	})
	return e.nextID
}

// Step advances the simulation by dt seconds: purge, integrate, walls,
// explosions, body pairs, retirement. A non-positive or non-finite dt returns
// ErrInvalidTimestep without touching any state.
func (e *Engine) Step(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTimestep, dt)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.bodies.Compact(func(b *Body) bool { return b.Alive })
	clear(e.touched)

	bodies := e.bodies.Values()
	var pending []explosion
	for i := range bodies {
		b := &bodies[i]
		e.integrate(b, dt)
		pre := b.Speed()
		if !e.resolveWalls(b) {
			continue
		}
		e.touched[b.ID] = struct{}{}
		if e.spawner != nil && b.Generation == GenerationThrown && pre > e.cfg.ExplosionThreshold {
			pending = append(pending, explosion{parent: *b, speed: pre})
		}
	}

	for _, ex := range pending {
		e.explode(ex)
	}

	e.resolvePairs(dt)
	e.retire()
	e.steps++
	return nil
}

func (e *Engine) integrate(b *Body, dt float64) {
	b.Velocity = b.Velocity.Add(e.cfg.Gravity.Mult(dt))
	b.Position = b.Position.Add(b.Velocity.Mult(dt))
}

func (e *Engine) explode(ex explosion) {
	parent := e.bodies.Get(ex.parent.ID)
	if parent == nil || !parent.Alive {
		return
	}
	parent.Alive = false
	e.blasts++
	e.events.Push(Removed{ID: ex.parent.ID, Reason: RemovedExploded})

	frags := e.spawner.Spawn(SpawnRequest{
		Parent:      ex.parent,
		Position:    ex.parent.Position,
		ImpactSpeed: ex.speed,
		World:       e.world,
	})

	ids := make([]BodyID, 0, len(frags))
	for _, f := range frags {
		if !positive(f.Radius) || !finite(f.Position) || !finite(f.Velocity) {
			continue
		}
		ids = append(ids, e.insert(f.Position, f.Velocity, f.Radius, GenerationFragment))
	}
	e.events.Push(Exploded{
		ID:          ex.parent.ID,
		Position:    ex.parent.Position,
		ImpactSpeed: ex.speed,
		Fragments:   ids,
	})
}

// retire marks spent fragments and strays as dead. They are purged at the
// start of the next step.
func (e *Engine) retire() {
	bodies := e.bodies.Values()
	for i := range bodies {
		b := &bodies[i]
		if !b.Alive {
			continue
		}
		if !finite(b.Position) || !finite(b.Velocity) || e.world.outside(b.Position) > e.cfg.OffBoundsTolerance {
			b.Alive = false
			e.events.Push(Removed{ID: b.ID, Reason: RemovedOffBounds})
			continue
		}
		if b.Generation != GenerationFragment || e.cfg.RestSpeed == 0 {
			continue
		}
		if _, ok := e.touched[b.ID]; ok && b.Speed() < e.cfg.RestSpeed {
			b.Alive = false
			e.events.Push(Removed{ID: b.ID, Reason: RemovedDissipated})
		}
	}
}

// Clear drops every body and pending event and zeroes the explosion count.
// IDs keep counting up, so an ID seen before a Clear never names a different
// body afterwards.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.bodies.Reset()
	e.events.flush()
	e.blasts = 0
	clear(e.touched)
}

// Snapshot returns copies of the live bodies ordered by ID.
func (e *Engine) Snapshot() []Body {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Body, 0, e.bodies.Len())
	for _, b := range e.bodies.Values() {
		if b.Alive {
			out = append(out, b)
		}
	}
	return out
}

// Body returns a copy of the live body with id.
func (e *Engine) Body(id BodyID) (Body, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.bodies.Get(id)
	if b == nil || !b.Alive {
		return Body{}, false
	}
	return *b, true
}

// Len returns the number of live bodies.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, b := range e.bodies.Values() {
		if b.Alive {
			n++
		}
	}
	return n
}

// Steps returns how many steps have run since the engine was created.
func (e *Engine) Steps() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.steps
}

// Explosions returns how many bodies exploded since the engine was created or
// last cleared. Unlike the event queue it never drops anything.
func (e *Engine) Explosions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blasts
}

// Events drains the events produced since the last call.
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Drain()
}
