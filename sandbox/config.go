package sandbox

import (
	"log"
	"time"

	"github.com/milk9111/ballblast/explosion"
	"github.com/milk9111/ballblast/physics"
	"github.com/milk9111/ballblast/prefabs"
)

// PhysicsConfig maps the physics section of a spec onto engine tuning.
func PhysicsConfig(spec *prefabs.SandboxSpec) physics.Config {
	p := spec.Physics
	cfg := physics.DefaultConfig()
	cfg.Gravity = physics.Vec(p.Gravity.X, p.Gravity.Y)
	cfg.WallRestitution = p.WallRestitution
	cfg.PairRestitution = p.PairRestitution
	cfg.ExplosionThreshold = p.ExplosionThreshold
	cfg.BallRadius = p.BallRadius
	cfg.Density = p.Density
	cfg.RestSpeed = p.RestSpeed
	cfg.OffBoundsTolerance = p.OffBoundsTolerance
	cfg.RestingPushBias = p.RestingPushBias
	cfg.SeparationIterations = p.SeparationIterations
	return cfg
}

// ExplosionConfig maps the explosion section of a spec onto spawner tuning.
func ExplosionConfig(spec *prefabs.SandboxSpec) explosion.Config {
	e := spec.Explosion
	return explosion.Config{
		MinFragments:     e.MinFragments,
		MaxFragments:     e.MaxFragments,
		SpeedPerFragment: e.SpeedPerFragment,
		FragmentRadius:   e.FragmentRadius,
		SpeedFractionMin: e.SpeedFractionMin,
		SpeedFractionMax: e.SpeedFractionMax,
		AngleJitter:      e.AngleJitter,
		Gap:              e.Gap,
	}
}

// World builds the simulation bounds of a spec.
func World(spec *prefabs.SandboxSpec) (physics.World, error) {
	w := spec.World
	return physics.NewWorld(w.XMin, w.YMin, w.XMax, w.YMax)
}

// StepDuration is the fixed clock step for the spec's tick rate.
func StepDuration(spec *prefabs.SandboxSpec) time.Duration {
	if spec.Clock.TPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(spec.Clock.TPS)
}

// countPolicy loads the optional fragment count script. A missing or broken
// script falls back to the linear count.
func countPolicy(spec *prefabs.SandboxSpec) explosion.CountPolicy {
	name := spec.Explosion.CountScript
	if name == "" {
		return nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		log.Printf("Sandbox: count script %s unavailable, using linear count: %v", name, err)
		return nil
	}
	policy, err := explosion.NewScriptCount(name, src)
	if err != nil {
		log.Printf("Sandbox: count script %s rejected, using linear count: %v", name, err)
		return nil
	}
	return policy
}
