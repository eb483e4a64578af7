// Package segment splits audience research documents into per-focus-group blocks.
package segment

import (
	"regexp"
	"slices"
	"strings"
)

// BoundaryPattern detects the start of a focus group section in one
// authoring convention.
type BoundaryPattern interface {
	Name() string
	// Offsets returns the byte offset of every section start in text.
	Offsets(text string) []int
}

// RegexPattern is a BoundaryPattern backed by a multi-line regular expression.
type RegexPattern struct {
	name string
	re   *regexp.Regexp
}

// NewRegexPattern compiles expr into a named boundary pattern. It panics on an
// invalid expression, like regexp.MustCompile.
func NewRegexPattern(name, expr string) RegexPattern {
	return RegexPattern{name: name, re: regexp.MustCompile(expr)}
}

func (p RegexPattern) Name() string { return p.name }

func (p RegexPattern) Offsets(text string) []int {
	locs := p.re.FindAllStringIndex(text, -1)
	out := make([]int, 0, len(locs))
	for _, loc := range locs {
		out = append(out, loc[0])
	}
	return out
}

// DefaultPatterns returns the heading conventions seen in audience documents:
//
//	## Group N: "Name" (Nickname)
//	**FOCUS GROUP #N**
//	# N. Name - "Nickname"
func DefaultPatterns() []BoundaryPattern {
	return []BoundaryPattern{
		NewRegexPattern("group_heading", `(?m)^#{1,3}\s+Group\s+\d+\s*:`),
		NewRegexPattern("focus_group_marker", `(?m)^\*\*FOCUS\s+GROUP\s+#\d+\*\*`),
		NewRegexPattern("numbered_heading", `(?m)^#{1,2}\s+\d+\.\s+\S`),
	}
}

// Segmenter splits a document on the union of its boundary patterns.
type Segmenter struct {
	patterns []BoundaryPattern
}

// New creates a Segmenter. With no patterns it uses DefaultPatterns.
func New(patterns ...BoundaryPattern) *Segmenter {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	return &Segmenter{patterns: slices.Clone(patterns)}
}

// Segment returns the text of each focus group section in document order.
// Boundaries from every pattern are merged, so documents that mix heading
// styles still split in order. A document with no boundary yields nil.
func (s *Segmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var bounds []int
	for _, p := range s.patterns {
		bounds = append(bounds, p.Offsets(text)...)
	}
	if len(bounds) == 0 {
		return nil
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	var blocks []string
	for i, start := range bounds {
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1]
		}
		if block := strings.TrimSpace(text[start:end]); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
