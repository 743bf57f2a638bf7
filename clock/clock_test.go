package clock

import (
	"errors"
	"testing"
	"time"
)

type recorder struct {
	dts  []float64
	fail int // fail on this call number, 1-based; 0 never fails
}

func (r *recorder) Step(dt float64) error {
	r.dts = append(r.dts, dt)
	if r.fail > 0 && len(r.dts) == r.fail {
		return errors.New("boom")
	}
	return nil
}

func TestNew(t *testing.T) {
	if _, err := New(0, 0, &recorder{}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if _, err := New(-time.Millisecond, 0, &recorder{}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if _, err := New(DefaultStep, 0, nil); err == nil {
		t.Fatal("expected error for nil target")
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	step := 10 * time.Millisecond
	cases := []struct {
		name      string
		frames    []time.Duration
		wantSteps []int
		wantAlpha float64
	}{
		{"exact_frames", []time.Duration{step, step, step}, []int{1, 1, 1}, 0},
		{"short_frames_accumulate", []time.Duration{4 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}, []int{0, 0, 1}, 0.2},
		{"long_frame_runs_several", []time.Duration{35 * time.Millisecond}, []int{3}, 0.5},
		{"jittery_frames", []time.Duration{16 * time.Millisecond, 17 * time.Millisecond, 15 * time.Millisecond, 12 * time.Millisecond}, []int{1, 2, 1, 2}, 0},
		{"zero_frame", []time.Duration{0}, []int{0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &recorder{}
			clk, err := New(step, 0, r)
			if err != nil {
				t.Fatal(err)
			}
			total := 0
			for i, f := range c.frames {
				n, err := clk.Advance(f)
				if err != nil {
					t.Fatalf("frame %d: %v", i, err)
				}
				if n != c.wantSteps[i] {
					t.Fatalf("frame %d: %d steps, want %d", i, n, c.wantSteps[i])
				}
				total += n
			}
			if len(r.dts) != total || clk.Steps() != uint64(total) {
				t.Fatalf("target saw %d steps, clock counted %d, want %d", len(r.dts), clk.Steps(), total)
			}
			for _, dt := range r.dts {
				if dt != step.Seconds() {
					t.Fatalf("step dt = %v, want %v", dt, step.Seconds())
				}
			}
			if a := clk.Alpha(); a < c.wantAlpha-1e-9 || a > c.wantAlpha+1e-9 {
				t.Fatalf("alpha = %v, want %v", a, c.wantAlpha)
			}
		})
	}
}

func TestSameTotalTimeSameSteps(t *testing.T) {
	// however the frames split the time, the step sequence is the same
	splits := [][]time.Duration{
		{time.Second},
		{250 * time.Millisecond, 250 * time.Millisecond, 500 * time.Millisecond},
		repeat(time.Second/100, 100),
		repeat(time.Second/7, 7),
	}
	for _, frames := range splits {
		r := &recorder{}
		clk, _ := New(DefaultStep, 0, r)
		var total time.Duration
		for _, f := range frames {
			total += f
			if _, err := clk.Advance(f); err != nil {
				t.Fatal(err)
			}
		}
		if want := int(total / DefaultStep); len(r.dts) != want {
			t.Fatalf("%d frames: %d steps, want %d", len(frames), len(r.dts), want)
		}
	}
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func TestMaxStepsDropsBacklog(t *testing.T) {
	r := &recorder{}
	clk, _ := New(10*time.Millisecond, 5, r)

	n, err := clk.Advance(time.Second + 3*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("ran %d steps, want 5", n)
	}
	if clk.Dropped() != 950*time.Millisecond {
		t.Fatalf("dropped %v, want 950ms", clk.Dropped())
	}
	if a := clk.Alpha(); a < 0.3-1e-9 || a > 0.3+1e-9 {
		t.Fatalf("alpha = %v, want 0.3", a)
	}
}

func TestNegativeElapsed(t *testing.T) {
	r := &recorder{}
	clk, _ := New(DefaultStep, 0, r)
	if _, err := clk.Advance(-time.Millisecond); !errors.Is(err, ErrNegativeElapsed) {
		t.Fatalf("expected ErrNegativeElapsed, got %v", err)
	}
	if clk.Alpha() != 0 || len(r.dts) != 0 {
		t.Fatal("negative elapsed changed clock state")
	}
}

func TestTargetErrorKeepsTime(t *testing.T) {
	r := &recorder{fail: 2}
	clk, _ := New(10*time.Millisecond, 0, r)

	n, err := clk.Advance(30 * time.Millisecond)
	if err == nil {
		t.Fatal("expected target error")
	}
	if n != 1 {
		t.Fatalf("ran %d successful steps, want 1", n)
	}
	if a := clk.Alpha(); a != 2 {
		t.Fatalf("unspent time = %v steps, want 2", a)
	}
}

func TestPause(t *testing.T) {
	r := &recorder{}
	clk, _ := New(10*time.Millisecond, 0, r)

	clk.Pause()
	if n, _ := clk.Advance(100 * time.Millisecond); n != 0 || !clk.Paused() {
		t.Fatalf("paused clock ran %d steps", n)
	}
	clk.Resume()
	if n, _ := clk.Advance(10 * time.Millisecond); n != 1 {
		t.Fatalf("resumed clock ran %d steps, want 1", n)
	}
}

func TestReset(t *testing.T) {
	clk, _ := New(10*time.Millisecond, 0, StepperFunc(func(float64) error { return nil }))
	if _, err := clk.Advance(25 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	clk.Reset()
	if clk.Steps() != 0 || clk.Alpha() != 0 || clk.Dropped() != 0 {
		t.Fatalf("reset left state: steps=%d alpha=%v dropped=%v", clk.Steps(), clk.Alpha(), clk.Dropped())
	}
}
