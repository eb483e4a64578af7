package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/audience-cli/internal/model"
)

// minItemLen drops list lines that are only leftover markup.
const minItemLen = 3

var (
	// listStopRe ends a list section at the next markdown or bold heading.
	// The first body line never stops the section.
	listStopRe = regexp.MustCompile(`\n(?:#{2,4}\s|\*\*[A-Z])`)

	boldNumberRe   = regexp.MustCompile(`^\*\*\d+\.\s*`)
	bulletMarkerRe = regexp.MustCompile(`^[-*•✓✗⚠→★]\s*`)
)

// ListField maps a profile list field to the section titles it may appear
// under, tried in order.
type ListField struct {
	Field  model.ListField
	Titles []string
}

// DefaultListFields returns the section titles used by the audience documents.
func DefaultListFields() []ListField {
	return []ListField{
		{Field: model.FieldCoreDesires, Titles: []string{"Core Desires"}},
		{Field: model.FieldPainPoints, Titles: []string{"Pain Points"}},
		{Field: model.FieldFears, Titles: []string{"Fears", "Fears & Anxieties"}},
		{Field: model.FieldBeliefs, Titles: []string{"Beliefs", "Beliefs & Worldview"}},
		{Field: model.FieldObjections, Titles: []string{"Objections", "Common Objections"}},
		{Field: model.FieldEmotionalTriggers, Titles: []string{"Emotional Triggers"}},
		{Field: model.FieldLanguagePatterns, Titles: []string{"Language Patterns"}},
		{Field: model.FieldEbookAngles, Titles: []string{"Ebook Angles", "Ebook Positioning Angles"}},
		{Field: model.FieldMarketingHooks, Titles: []string{"Marketing Hooks", "Marketing Hooks & Headlines"}},
	}
}

// sectionPattern matches a list section header in either style:
//
//	### Title (optional subtitle)
//	**TITLE (optional subtitle)**
type sectionPattern struct {
	heading *regexp.Regexp
	bold    *regexp.Regexp
}

func newSectionPattern(title string) sectionPattern {
	words := strings.Fields(title)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return sectionPattern{
		heading: regexp.MustCompile(`(?i)(?:^|\n)#{2,4}\s+` + regexp.QuoteMeta(title) + `[^\n]*\n`),
		bold:    regexp.MustCompile(`(?i)(?:^|\n)\*\*` + strings.Join(words, `\s+`) + `[^*]*\*\*\s*\n`),
	}
}

// body returns the text between the section header and the next header.
func (sp sectionPattern) body(text string) (string, bool) {
	for _, re := range []*regexp.Regexp{sp.heading, sp.bold} {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[1]:]
		if stop := listStopRe.FindStringIndex(body); stop != nil {
			body = body[:stop[0]]
		}
		return body, true
	}
	return "", false
}

type listExtractor struct {
	field    model.ListField
	sections []sectionPattern
}

func newListExtractor(lf ListField) listExtractor {
	le := listExtractor{field: lf.Field}
	for _, title := range lf.Titles {
		le.sections = append(le.sections, newSectionPattern(title))
	}
	return le
}

// extract returns the cleaned items of the first title that yields any.
func (le listExtractor) extract(text string) []string {
	for _, sp := range le.sections {
		body, ok := sp.body(text)
		if !ok {
			continue
		}
		if items := listItems(body); len(items) > 0 {
			return items
		}
	}
	return []string{}
}

func listItems(body string) []string {
	items := []string{}
	for _, line := range strings.Split(body, "\n") {
		if item := cleanItem(line); utf8.RuneCountInString(item) >= minItemLen {
			items = append(items, item)
		}
	}
	return items
}

// cleanItem strips list markup from one line: a bold number prefix
// (**1. ) before or after a bullet or symbol marker, emphasis, and one layer
// of quotes.
func cleanItem(line string) string {
	s := strings.TrimSpace(line)
	if s == "" {
		return ""
	}
	s = boldNumberRe.ReplaceAllString(s, "")
	s = bulletMarkerRe.ReplaceAllString(s, "")
	s = boldNumberRe.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, "*")
	s = strings.TrimRight(s, "*")
	s = strings.TrimSpace(s)
	s = trimQuotes(s)
	return strings.TrimSpace(s)
}

func trimQuotes(s string) string {
	for _, q := range []string{`"`, "“"} {
		if strings.HasPrefix(s, q) {
			s = s[len(q):]
			break
		}
	}
	for _, q := range []string{`"`, "”"} {
		if strings.HasSuffix(s, q) {
			s = s[:len(s)-len(q)]
			break
		}
	}
	return s
}
