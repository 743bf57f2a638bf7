package sandbox

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/milk9111/ballblast/explosion"
	"github.com/milk9111/ballblast/physics"
	"github.com/milk9111/ballblast/prefabs"
)

const frame = time.Second / 60

func newTestSandbox(t *testing.T, mutate func(s *prefabs.SandboxSpec)) *Sandbox {
	t.Helper()
	spec := prefabs.DefaultSandboxSpec()
	spec.Explosion.Seed = 7
	if mutate != nil {
		mutate(&spec)
	}
	sb, err := New(&spec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sb
}

func tickUntil(t *testing.T, sb *Sandbox, frames int, done func(events []physics.Event) bool) bool {
	t.Helper()
	for i := 0; i < frames; i++ {
		events, err := sb.Tick(frame)
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if done(events) {
			return true
		}
	}
	return false
}

func TestNewRejectsBadSpec(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *prefabs.SandboxSpec)
	}{
		{name: "inverted world", mutate: func(s *prefabs.SandboxSpec) { s.World.XMax = -1 }},
		{name: "spawn outside", mutate: func(s *prefabs.SandboxSpec) { s.Throw.SpawnX = 900 }},
		{name: "bad restitution", mutate: func(s *prefabs.SandboxSpec) { s.Physics.WallRestitution = 2 }},
		{name: "bad fragments", mutate: func(s *prefabs.SandboxSpec) { s.Explosion.MinFragments = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := prefabs.DefaultSandboxSpec()
			tt.mutate(&spec)
			if _, err := New(&spec, WithSeed(1)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewNilSpecUsesDefaults(t *testing.T) {
	sb, err := New(nil, WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sb.World().Width() != 500 {
		t.Fatalf("expected default world, got width %v", sb.World().Width())
	}
}

func TestThrowRejectsInvalidInput(t *testing.T) {
	sb := newTestSandbox(t, nil)

	for _, text := range []string{"", "abc", "-10", "NaN"} {
		t.Run(text, func(t *testing.T) {
			_, err := sb.Throw(text)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if got := sb.Stats().Bodies; got != 0 {
				t.Fatalf("expected body count unchanged at 0, got %d", got)
			}
		})
	}
}

func TestThrowSpawnsAtSpawnPoint(t *testing.T) {
	sb := newTestSandbox(t, nil)

	id, err := sb.Throw("120")
	if err != nil {
		t.Fatalf("Throw: %v", err)
	}
	snap := sb.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 body, got %d", len(snap))
	}
	b := snap[0]
	if b.ID != id || b.Generation != physics.GenerationThrown {
		t.Fatalf("unexpected body %+v", b)
	}
	if b.Position.X != 50 || b.Position.Y != 250 {
		t.Fatalf("expected spawn at (50,250), got %v", b.Position)
	}
	if b.Radius != 10 {
		t.Fatalf("expected radius 10, got %v", b.Radius)
	}
}

func TestThrowWhileInFlight(t *testing.T) {
	sb := newTestSandbox(t, nil)

	if _, err := sb.Throw("100"); err != nil {
		t.Fatalf("Throw: %v", err)
	}
	if _, err := sb.Throw("100"); !errors.Is(err, ErrBallInFlight) {
		t.Fatalf("expected ErrBallInFlight, got %v", err)
	}
	if got := sb.Stats().Bodies; got != 1 {
		t.Fatalf("expected 1 body, got %d", got)
	}

	sb.Refresh()
	if _, err := sb.Throw("100"); err != nil {
		t.Fatalf("Throw after refresh: %v", err)
	}
}

func TestBelowThresholdBounceKeepsOneBody(t *testing.T) {
	sb := newTestSandbox(t, nil)

	// from y=250 under gravity 900 the floor impact is about 660 units/s
	if _, err := sb.Throw("50"); err != nil {
		t.Fatalf("Throw: %v", err)
	}

	bounced := tickUntil(t, sb, 180, func(events []physics.Event) bool {
		if got := sb.Stats().Bodies; got != 1 {
			t.Fatalf("expected 1 body, got %d", got)
		}
		for _, evt := range events {
			switch e := evt.(type) {
			case physics.Exploded:
				t.Fatalf("unexpected explosion of body %d", e.ID)
			case physics.WallBounce:
				if e.Axis == physics.AxisY {
					return true
				}
			}
		}
		return false
	})
	if !bounced {
		t.Fatalf("expected a floor bounce")
	}

	// the next few frames still hold exactly one body
	tickUntil(t, sb, 30, func([]physics.Event) bool {
		if got := sb.Stats().Bodies; got != 1 {
			t.Fatalf("expected 1 body after bounce, got %d", got)
		}
		return false
	})
}

func TestThrownBallExplodes(t *testing.T) {
	sb := newTestSandbox(t, func(s *prefabs.SandboxSpec) {
		s.World = prefabs.WorldSpec{XMin: 0, YMin: 0, XMax: 500, YMax: 500}
		s.Physics.Gravity = prefabs.VectorSpec{X: 0, Y: -9.8}
		s.Physics.WallRestitution = 0.8
		s.Physics.ExplosionThreshold = 40
		s.Throw.SpawnX = 10
		s.Throw.SpawnY = 250
		s.Explosion.CountScript = ""
		s.Clock.MaxStepsPerFrame = 0
	})

	id, err := sb.Throw("50")
	if err != nil {
		t.Fatalf("Throw: %v", err)
	}

	var ex physics.Exploded
	found := false
	for i := 0; i < 20 && !found; i++ {
		events, err := sb.Tick(time.Second)
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		for _, evt := range events {
			if e, ok := evt.(physics.Exploded); ok {
				ex = e
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("expected the ball to explode")
	}
	if ex.ID != id {
		t.Fatalf("expected body %d to explode, got %d", id, ex.ID)
	}

	n := len(ex.Fragments)
	if n < 5 || n > 12 {
		t.Fatalf("expected 5..12 fragments, got %d", n)
	}
	if got := sb.Stats().Explosions; got != 1 {
		t.Fatalf("expected 1 explosion, got %d", got)
	}

	world := sb.World()
	for _, b := range sb.Snapshot() {
		if b.ID == id {
			t.Fatalf("exploded body still live")
		}
		if b.Generation != physics.GenerationFragment {
			t.Fatalf("expected fragment generation, got %d", b.Generation)
		}
		if !world.Contains(b.Position) {
			t.Fatalf("fragment %d outside world at %v", b.ID, b.Position)
		}
	}
}

func TestScriptedCountPolicy(t *testing.T) {
	policy, err := explosion.NewScriptCount("fixed", []byte("count = 6"))
	if err != nil {
		t.Fatalf("NewScriptCount: %v", err)
	}
	sb := newTestSandbox(t, nil)
	sb, err = New(sb.Spec(), WithSeed(3), WithCountPolicy(policy))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := sb.Throw("1000"); err != nil {
		t.Fatalf("Throw: %v", err)
	}
	exploded := tickUntil(t, sb, 120, func(events []physics.Event) bool {
		for _, evt := range events {
			if e, ok := evt.(physics.Exploded); ok {
				if len(e.Fragments) != 6 {
					t.Fatalf("expected 6 fragments, got %d", len(e.Fragments))
				}
				return true
			}
		}
		return false
	})
	if !exploded {
		t.Fatalf("expected an explosion")
	}
}

func TestRefresh(t *testing.T) {
	sb := newTestSandbox(t, nil)

	if _, err := sb.Throw("1000"); err != nil {
		t.Fatalf("Throw: %v", err)
	}
	tickUntil(t, sb, 60, func([]physics.Event) bool { return false })

	sb.Refresh()
	sb.Refresh()

	if got := len(sb.Snapshot()); got != 0 {
		t.Fatalf("expected empty snapshot, got %d", got)
	}
	st := sb.Stats()
	if st.Bodies != 0 || st.Steps != 0 || st.Explosions != 0 {
		t.Fatalf("expected zeroed stats, got %+v", st)
	}
}

func TestPauseStopsTime(t *testing.T) {
	sb := newTestSandbox(t, nil)
	if _, err := sb.Throw("100"); err != nil {
		t.Fatalf("Throw: %v", err)
	}

	sb.Pause()
	if !sb.Paused() {
		t.Fatalf("expected paused")
	}
	before := sb.Snapshot()[0].Position
	if _, err := sb.Tick(time.Second); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if after := sb.Snapshot()[0].Position; after != before {
		t.Fatalf("expected no movement while paused, %v -> %v", before, after)
	}

	sb.Resume()
	if _, err := sb.Tick(frame * 2); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if sb.Stats().Steps == 0 {
		t.Fatalf("expected steps after resume")
	}
}

func TestTickRejectsNegativeElapsed(t *testing.T) {
	sb := newTestSandbox(t, nil)
	if _, err := sb.Tick(-time.Second); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLongTickKeepsExplosion(t *testing.T) {
	for _, rest := range []float64{20, 0} {
		t.Run(fmt.Sprintf("rest_speed_%g", rest), func(t *testing.T) {
			sb := newTestSandbox(t, func(s *prefabs.SandboxSpec) {
				s.Clock.MaxStepsPerFrame = 0
				s.Physics.RestSpeed = rest
			})
			if _, err := sb.Throw("1000"); err != nil {
				t.Fatalf("Throw: %v", err)
			}

			events, err := sb.Tick(30 * time.Second)
			if err != nil {
				t.Fatalf("Tick: %v", err)
			}
			exploded := 0
			for _, evt := range events {
				if _, ok := evt.(physics.Exploded); ok {
					exploded++
				}
			}
			if exploded != 1 {
				t.Fatalf("expected 1 Exploded event among %d events, got %d", len(events), exploded)
			}
			if got := sb.Stats().Explosions; got != 1 {
				t.Fatalf("Stats().Explosions = %d, want 1", got)
			}
		})
	}
}
