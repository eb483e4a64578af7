// Package scorer measures how completely a parsed profile fills a weighted
// field registry.
package scorer

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FieldWeight is one scored field. Field is the profile's JSON field name.
type FieldWeight struct {
	Field  string `yaml:"field"`
	Weight int    `yaml:"weight"`
}

// Registry is the ordered set of scored fields. Order determines the order
// of missing field names in score results.
type Registry []FieldWeight

// DefaultRegistry returns the enrichment field registry. Weights sum to 100.
func DefaultRegistry() Registry {
	return Registry{
		{Field: "awarenessStage", Weight: 15},
		{Field: "sophisticationLevel", Weight: 10},
		{Field: "contentPreferences", Weight: 10},
		{Field: "influenceSources", Weight: 10},
		{Field: "purchaseBehavior", Weight: 15},
		{Field: "competitorContext", Weight: 10},
		{Field: "communicationStyle", Weight: 10},
		{Field: "seasonalContext", Weight: 5},
		{Field: "negativeTriggers", Weight: 10},
		{Field: "awarenessSignals", Weight: 5},
	}
}

// Total returns the sum of all weights.
func (r Registry) Total() int {
	var sum int
	for _, fw := range r {
		sum += fw.Weight
	}
	return sum
}

// ValidateRegistry checks that a registry can produce a meaningful score.
func ValidateRegistry(r Registry) error {
	var errs []string

	if len(r) == 0 {
		errs = append(errs, "registry must have at least one field")
	}

	seen := make(map[string]bool, len(r))
	for i, fw := range r {
		if strings.TrimSpace(fw.Field) == "" {
			errs = append(errs, fmt.Sprintf("entry %d has no field name", i))
			continue
		}
		if fw.Weight <= 0 {
			errs = append(errs, fmt.Sprintf("%s weight must be > 0", fw.Field))
		}
		if seen[fw.Field] {
			errs = append(errs, fmt.Sprintf("%s listed more than once", fw.Field))
		}
		seen[fw.Field] = true
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: registry validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadRegistry reads a registry from a YAML file of the form:
//
//	fields:
//	  - field: awarenessStage
//	    weight: 15
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scorer: read registry %s", path)
	}

	var wrapper struct {
		Fields Registry `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "scorer: parse registry")
	}
	if err := ValidateRegistry(wrapper.Fields); err != nil {
		return nil, err
	}
	return wrapper.Fields, nil
}
