// Command simulate throws one ball through the sandbox without a window and
// prints what happens.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/milk9111/ballblast/physics"
	"github.com/milk9111/ballblast/prefabs"
	"github.com/milk9111/ballblast/sandbox"
)

func main() {
	configPath := flag.String("config", "", "sandbox spec yaml (defaults to the embedded prefabs/sandbox.yaml)")
	velocity := flag.String("v", "800", "throw velocity in units/s")
	seconds := flag.Float64("t", 5, "simulated seconds")
	seed := flag.Int64("seed", 1, "explosion seed")
	verbose := flag.Bool("verbose", false, "print collisions and wall bounces too")
	flag.Parse()

	var (
		spec *prefabs.SandboxSpec
		err  error
	)
	if *configPath != "" {
		spec, err = prefabs.LoadSandboxSpecFile(*configPath)
	} else {
		spec, err = prefabs.LoadSandboxSpec()
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := run(os.Stdout, spec, *velocity, time.Duration(*seconds*float64(time.Second)), *seed, *verbose); err != nil {
		log.Fatal(err)
	}
}

func run(out io.Writer, spec *prefabs.SandboxSpec, velocity string, d time.Duration, seed int64, verbose bool) error {
	// headless runs take every step the duration covers
	spec.Clock.MaxStepsPerFrame = 0

	sb, err := sandbox.New(spec, sandbox.WithSeed(seed))
	if err != nil {
		return err
	}
	id, err := sb.Throw(velocity)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "threw body %d at %s units/s\n", id, velocity)

	events, err := sb.Tick(d)
	if err != nil {
		return err
	}
	for _, evt := range events {
		if line := describe(evt, verbose); line != "" {
			fmt.Fprintln(out, line)
		}
	}

	st := sb.Stats()
	fmt.Fprintf(out, "after %d steps: %d live bodies, %d explosions\n", st.Steps, st.Bodies, st.Explosions)
	for _, b := range sb.Snapshot() {
		fmt.Fprintf(out, "  body %d gen %d r %.1f at (%.2f, %.2f)\n", b.ID, b.Generation, b.Radius, b.Position.X, b.Position.Y)
	}
	return nil
}

func describe(evt physics.Event, verbose bool) string {
	switch e := evt.(type) {
	case physics.Exploded:
		return fmt.Sprintf("body %d exploded at (%.2f, %.2f), impact %.2f, fragments %v",
			e.ID, e.Position.X, e.Position.Y, e.ImpactSpeed, e.Fragments)
	case physics.Removed:
		if e.Reason == physics.RemovedExploded {
			return ""
		}
		return fmt.Sprintf("body %d removed: %s", e.ID, e.Reason)
	case physics.WallBounce:
		if !verbose {
			return ""
		}
		return fmt.Sprintf("body %d bounced on %s: %.2f -> %.2f", e.ID, e.Axis, e.SpeedBefore, e.SpeedAfter)
	case physics.Collision:
		if !verbose {
			return ""
		}
		return fmt.Sprintf("bodies %d and %d collided, impulse %.2f", e.A, e.B, e.Impulse)
	}
	return ""
}
