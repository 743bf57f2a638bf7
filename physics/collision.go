package physics

import "math"

// separationSlop is added to every positional correction so rounding never
// leaves a resolved pair a hair closer than the sum of radii.
const separationSlop = 1e-6

// resolveWalls clamps b inside the world and reflects the velocity component
// heading into each wall it crossed. Axes are handled independently, so a
// corner hit bounces on both in the same step. Returns true if any axis
// bounced.
func (e *Engine) resolveWalls(b *Body) bool {
	bounds := e.world.Bounds()
	rest := e.cfg.WallRestitution
	bounced := false

	switch {
	case b.Position.X-b.Radius < bounds.L:
		b.Position.X = bounds.L + b.Radius
		if b.Velocity.X < 0 {
			e.reflect(b, AxisX, &b.Velocity.X, rest)
			bounced = true
		}
	case b.Position.X+b.Radius > bounds.R:
		b.Position.X = bounds.R - b.Radius
		if b.Velocity.X > 0 {
			e.reflect(b, AxisX, &b.Velocity.X, rest)
			bounced = true
		}
	}

	switch {
	case b.Position.Y-b.Radius < bounds.B:
		b.Position.Y = bounds.B + b.Radius
		if b.Velocity.Y < 0 {
			e.reflect(b, AxisY, &b.Velocity.Y, rest)
			bounced = true
		}
	case b.Position.Y+b.Radius > bounds.T:
		b.Position.Y = bounds.T - b.Radius
		if b.Velocity.Y > 0 {
			e.reflect(b, AxisY, &b.Velocity.Y, rest)
			bounced = true
		}
	}
	return bounced
}

func (e *Engine) reflect(b *Body, axis Axis, component *float64, rest float64) {
	before := *component
	*component = -before * rest
	e.events.Push(WallBounce{
		ID:          b.ID,
		Axis:        axis,
		SpeedBefore: abs(before),
		SpeedAfter:  abs(*component),
	})
}

// resolvePairs tests every unordered pair of live bodies once, in ID order.
// Overlapping pairs are pushed apart and receive an impulse along the
// normal. Corrections can open new overlaps with neighbours, so the live set
// is then relaxed positionally until nothing overlaps or the iteration
// budget runs out.
func (e *Engine) resolvePairs(dt float64) {
	e.eachOverlap(func(a, b *Body) {
		e.events.Push(e.resolvePair(a, b, dt))
	})

	for iter := 1; iter < e.cfg.SeparationIterations; iter++ {
		moved := false
		e.eachOverlap(func(a, b *Body) {
			separate(a, b, Normalize(b.Position.Sub(a.Position), Vec(1, 0)))
			e.keepInside(a)
			e.keepInside(b)
			moved = true
		})
		if !moved {
			return
		}
	}
}

// eachOverlap calls fn for every strictly overlapping pair of live bodies,
// lower ID first. A cp.BB test rejects far pairs before the exact check.
func (e *Engine) eachOverlap(fn func(a, b *Body)) {
	bodies := e.bodies.Values()
	for i := 0; i < len(bodies); i++ {
		a := &bodies[i]
		if !a.Alive {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b := &bodies[j]
			if !b.Alive || !a.BB().Intersects(b.BB()) || !a.Overlaps(*b) {
				continue
			}
			fn(a, b)
		}
	}
}

// resolvePair separates a and b and applies the collision impulse. The
// positional correction is split by inverse mass; the heavier body moves less.
func (e *Engine) resolvePair(a, b *Body, dt float64) Collision {
	delta := b.Position.Sub(a.Position)
	dist := delta.Length()
	n := Normalize(delta, Vec(1, 0))
	overlap := a.Radius + b.Radius - dist

	separate(a, b, n)
	e.keepInside(a)
	e.keepInside(b)

	invA, invB := 1/a.Mass, 1/b.Mass
	invSum := invA + invB

	var j float64
	if vn := b.Velocity.Sub(a.Velocity).Dot(n); vn < 0 {
		j = -(1 + e.cfg.PairRestitution) * vn / invSum
	} else {
		j = e.cfg.RestingPushBias * overlap / dt / invSum
	}

	a.Velocity = a.Velocity.Sub(n.Mult(j * invA))
	b.Velocity = b.Velocity.Add(n.Mult(j * invB))

	return Collision{A: a.ID, B: b.ID, Normal: n, Impulse: j}
}

// separate moves a and b apart along n until they just touch.
func separate(a, b *Body, n Vector2) {
	dist := b.Position.Sub(a.Position).Dot(n)
	overlap := a.Radius + b.Radius - dist + separationSlop
	if overlap <= 0 {
		return
	}
	invA, invB := 1/a.Mass, 1/b.Mass
	invSum := invA + invB
	a.Position = a.Position.Sub(n.Mult(overlap * invA / invSum))
	b.Position = b.Position.Add(n.Mult(overlap * invB / invSum))
}

// keepInside clamps a body's position back inside the walls after a pair
// correction. Velocity is left alone; the wall pass of the next step handles
// it.
func (e *Engine) keepInside(b *Body) {
	bounds := e.world.Bounds()
	b.Position.X = clamp(b.Position.X, bounds.L+b.Radius, bounds.R-b.Radius)
	b.Position.Y = clamp(b.Position.Y, bounds.B+b.Radius, bounds.T-b.Radius)
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
