// Package extract turns one focus group block into a structured profile.
package extract

import (
	"strings"

	"github.com/sells-group/audience-cli/internal/model"
)

// Config controls which section titles feed each list field.
type Config struct {
	ListFields []ListField
}

// DefaultConfig returns the extraction settings for the standard audience
// document conventions.
func DefaultConfig() Config {
	return Config{ListFields: DefaultListFields()}
}

// Extractor pulls profile fields out of focus group blocks. Patterns are
// compiled once in New, so an Extractor is safe for concurrent use.
type Extractor struct {
	lists []listExtractor

	category     labelPattern
	overview     labelPattern
	overviewPara paragraphPattern
	promise      labelPattern
	promisePara  paragraphPattern
}

// New builds an Extractor. A Config with no list fields uses the defaults.
func New(cfg Config) *Extractor {
	if len(cfg.ListFields) == 0 {
		cfg = DefaultConfig()
	}
	e := &Extractor{
		category:     newLabelPattern("Category"),
		overview:     newLabelPattern("Overview"),
		overviewPara: newParagraphPattern("Overview"),
		promise:      newLabelPattern("Transformation Promise"),
		promisePara:  newParagraphPattern("Transformation Promise"),
	}
	for _, lf := range cfg.ListFields {
		e.lists = append(e.lists, newListExtractor(lf))
	}
	return e
}

// Extract reads every supported field from block. Missing scalars stay
// empty, missing sub-records stay nil, and missing lists become empty
// slices. It never fails: a block with no recognizable heading yields a
// profile with an empty Name, which callers treat as "not a focus group".
func (e *Extractor) Extract(block string) model.ParsedProfile {
	var p model.ParsedProfile
	p.Number, p.Name, p.Nickname = parseHeading(strings.Split(block, "\n"))

	p.Category = e.category.find(block)
	p.Overview = e.overview.find(block)
	if p.Overview == "" {
		p.Overview = e.overviewPara.find(block)
	}

	p.Demographics = demographics(block)
	p.Psychographics = psychographics(block)

	for _, le := range e.lists {
		p.SetList(le.field, le.extract(block))
	}

	p.TransformationPromise = e.promise.find(block)
	if p.TransformationPromise == "" {
		p.TransformationPromise = e.promisePara.find(block)
	}

	p.FillEmptyLists()
	return p
}
