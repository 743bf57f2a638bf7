package explosion

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptCount is a CountPolicy backed by a tengo script. The script sees the
// globals impact_speed, parent_mass, min_fragments and max_fragments and must
// assign count:
//
//	count = min_fragments + int(impact_speed / 25)
type ScriptCount struct {
	name     string
	compiled *tengo.Compiled
}

var _ CountPolicy = (*ScriptCount)(nil)

// NewScriptCount compiles src. name only labels errors.
func NewScriptCount(name string, src []byte) (*ScriptCount, error) {
	script := tengo.NewScript(src)
	_ = script.Add("impact_speed", 0.0)
	_ = script.Add("parent_mass", 0.0)
	_ = script.Add("min_fragments", 0)
	_ = script.Add("max_fragments", 0)
	_ = script.Add("count", 0)

	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("explosion: compile %s: %w", name, err)
	}
	return &ScriptCount{name: name, compiled: compiled}, nil
}

func (s *ScriptCount) Count(req CountRequest) (int, error) {
	if s == nil || s.compiled == nil {
		return 0, fmt.Errorf("explosion: nil count script")
	}
	vars := []struct {
		name  string
		value any
	}{
		{"impact_speed", req.ImpactSpeed},
		{"parent_mass", req.ParentMass},
		{"min_fragments", req.MinFragments},
		{"max_fragments", req.MaxFragments},
		{"count", req.MinFragments},
	}
	for _, v := range vars {
		if err := s.compiled.Set(v.name, v.value); err != nil {
			return 0, fmt.Errorf("explosion: %s: set %s: %w", s.name, v.name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("explosion: run %s: %w", s.name, err)
	}

	result := s.compiled.Get("count")
	switch result.ValueType() {
	case "int":
		return result.Int(), nil
	case "float":
		f := result.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("explosion: %s: count is %v", s.name, f)
		}
		return int(math.Max(math.Min(f, float64(req.MaxFragments)), 0)), nil
	default:
		return 0, fmt.Errorf("explosion: %s: count has type %s", s.name, result.ValueType())
	}
}
