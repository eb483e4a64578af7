package scorer

import (
	"encoding/json"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/model"
)

// Scorer computes completeness against a fixed registry.
type Scorer struct {
	registry Registry
	total    int
}

// New creates a Scorer. An empty registry falls back to DefaultRegistry.
func New(r Registry) *Scorer {
	if len(r) == 0 {
		r = DefaultRegistry()
	}
	r = slices.Clone(r)
	return &Scorer{registry: r, total: r.Total()}
}

// Registry returns a copy of the registry the scorer was built with.
func (s *Scorer) Registry() Registry {
	return slices.Clone(s.registry)
}

// Score returns the percentage of registry weight the profile fills, rounded
// to one decimal, and the missing field names in registry order. A field is
// missing when it is absent, null, an empty string, an empty list or an
// empty object.
func (s *Scorer) Score(p model.ParsedProfile) (float64, []string) {
	fields := profileFields(p)

	missing := []string{}
	var earned int
	for _, fw := range s.registry {
		if present(fields[fw.Field]) {
			earned += fw.Weight
			continue
		}
		missing = append(missing, fw.Field)
	}

	if s.total <= 0 {
		return 0, missing
	}
	pct := float64(earned) / float64(s.total) * 100
	return math.Round(pct*10) / 10, missing
}

// Apply scores p and stores the result on it.
func (s *Scorer) Apply(p *model.ParsedProfile) {
	p.CompletenessScore, p.MissingFields = s.Score(*p)
}

// profileFields returns the profile keyed by JSON field name, so registries
// can name any serialized field.
func profileFields(p model.ParsedProfile) map[string]json.RawMessage {
	data, err := json.Marshal(p)
	if err != nil {
		zap.L().Warn("scorer: marshal profile", zap.String("name", p.Name), zap.Error(err))
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		zap.L().Warn("scorer: decode profile", zap.String("name", p.Name), zap.Error(err))
		return nil
	}
	return fields
}

func present(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
