package common

import (
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.25, 2.5},
		{-4, 4, 0.5, 0},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Fatalf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := map[float64]float64{
		-1:         0,
		0.5:        0.5,
		3:          1,
		math.NaN(): 0,
	}
	for in, want := range tests {
		if got := Clamp01(in); got != want {
			t.Fatalf("Clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestViewportFlipsY(t *testing.T) {
	v := Viewport{XMin: 0, YMax: 500, Top: 30}

	tests := []struct {
		name   string
		x, y   float64
		sx, sy float32
	}{
		{name: "floor", x: 0, y: 0, sx: 0, sy: 530},
		{name: "ceiling", x: 500, y: 500, sx: 500, sy: 30},
		{name: "middle", x: 250, y: 250, sx: 250, sy: 280},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := v.ToScreen(tt.x, tt.y)
			if sx != tt.sx || sy != tt.sy {
				t.Fatalf("ToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}
