package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SandboxFile is the default sandbox spec name.
const SandboxFile = "sandbox.yaml"

type SandboxSpec struct {
	Name      string        `yaml:"name"`
	World     WorldSpec     `yaml:"world"`
	Physics   PhysicsSpec   `yaml:"physics"`
	Explosion ExplosionSpec `yaml:"explosion"`
	Throw     ThrowSpec     `yaml:"throw"`
	Clock     ClockSpec     `yaml:"clock"`
	UI        UISpec        `yaml:"ui"`
}

type WorldSpec struct {
	XMin float64 `yaml:"x_min"`
	YMin float64 `yaml:"y_min"`
	XMax float64 `yaml:"x_max"`
	YMax float64 `yaml:"y_max"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PhysicsSpec struct {
	Gravity              VectorSpec `yaml:"gravity"`
	WallRestitution      float64    `yaml:"wall_restitution"`
	PairRestitution      float64    `yaml:"pair_restitution"`
	ExplosionThreshold   float64    `yaml:"explosion_threshold"`
	BallRadius           float64    `yaml:"ball_radius"`
	Density              float64    `yaml:"density"`
	RestSpeed            float64    `yaml:"rest_speed"`
	OffBoundsTolerance   float64    `yaml:"off_bounds_tolerance"`
	RestingPushBias      float64    `yaml:"resting_push_bias"`
	SeparationIterations int        `yaml:"separation_iterations"`
}

type ExplosionSpec struct {
	Seed             int64   `yaml:"seed"`
	MinFragments     int     `yaml:"min_fragments"`
	MaxFragments     int     `yaml:"max_fragments"`
	SpeedPerFragment float64 `yaml:"speed_per_fragment"`
	FragmentRadius   float64 `yaml:"fragment_radius"`
	SpeedFractionMin float64 `yaml:"speed_fraction_min"`
	SpeedFractionMax float64 `yaml:"speed_fraction_max"`
	AngleJitter      float64 `yaml:"angle_jitter"`
	Gap              float64 `yaml:"gap"`
	CountScript      string  `yaml:"count_script"`
}

type ThrowSpec struct {
	SpawnX   float64 `yaml:"spawn_x"`
	SpawnY   float64 `yaml:"spawn_y"`
	MaxSpeed float64 `yaml:"max_speed"`
}

type ClockSpec struct {
	TPS              int `yaml:"tps"`
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"`
}

type UISpec struct {
	ToolbarHeight  int        `yaml:"toolbar_height"`
	Background     *YAMLColor `yaml:"background"`
	Wall           *YAMLColor `yaml:"wall"`
	Ball           *YAMLColor `yaml:"ball"`
	Warning        *YAMLColor `yaml:"warning"`
	WarningSeconds float64    `yaml:"warning_seconds"`
}

// DefaultSandboxSpec is the baseline that yaml files are decoded over, so a
// spec only needs the keys it changes.
func DefaultSandboxSpec() SandboxSpec {
	return SandboxSpec{
		Name:  "ballblast",
		World: WorldSpec{XMin: 0, YMin: 0, XMax: 500, YMax: 500},
		Physics: PhysicsSpec{
			Gravity:              VectorSpec{X: 0, Y: -900},
			WallRestitution:      0.7,
			PairRestitution:      1,
			ExplosionThreshold:   700,
			BallRadius:           10,
			Density:              1,
			RestSpeed:            20,
			OffBoundsTolerance:   50,
			RestingPushBias:      0.2,
			SeparationIterations: 64,
		},
		Explosion: ExplosionSpec{
			MinFragments:     5,
			MaxFragments:     12,
			SpeedPerFragment: 25,
			FragmentRadius:   5,
			SpeedFractionMin: 0.2,
			SpeedFractionMax: 0.4,
			AngleJitter:      0.5,
			Gap:              1,
		},
		Throw: ThrowSpec{SpawnX: 50, SpawnY: 250, MaxSpeed: 5000},
		Clock: ClockSpec{TPS: 60, MaxStepsPerFrame: 8},
		UI: UISpec{
			ToolbarHeight:  30,
			WarningSeconds: 2,
		},
	}
}

// LoadSandboxSpec loads sandbox.yaml over the defaults.
func LoadSandboxSpec() (*SandboxSpec, error) {
	data, err := Load(SandboxFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", SandboxFile, err)
	}
	return DecodeSandboxSpec(data)
}

// LoadSandboxSpecFile loads a sandbox spec from an arbitrary path.
func LoadSandboxSpecFile(path string) (*SandboxSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	return DecodeSandboxSpec(data)
}

// DecodeSandboxSpec decodes yaml over DefaultSandboxSpec.
func DecodeSandboxSpec(data []byte) (*SandboxSpec, error) {
	spec := DefaultSandboxSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal sandbox spec: %w", err)
	}
	if spec.Clock.TPS <= 0 {
		return nil, fmt.Errorf("prefabs: clock tps must be positive, got %d", spec.Clock.TPS)
	}
	return &spec, nil
}

// ColorOr returns the colour or fallback when the yaml left it unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
