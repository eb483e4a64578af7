package extract

import (
	"regexp"
	"strings"
)

var (
	// tableStopRe ends a pandoc table cell: a blank line, the next bold
	// label, or a dashed table rule.
	tableStopRe = regexp.MustCompile(`\n\s*(?:\n|\*\*|-{5,})`)
	lineBreakRe = regexp.MustCompile(`\s*\n\s*`)

	// paragraphStopRe ends a heading-introduced paragraph.
	paragraphStopRe = regexp.MustCompile(`\n(?:\*\*[A-Z]|#{2,})`)
)

// labelPattern finds the value of one label in the three authoring formats:
//
//	**Label:** value
//	Label: value
//	**Label**        value that may wrap onto
//	                 indented continuation lines
type labelPattern struct {
	bold  *regexp.Regexp
	plain *regexp.Regexp
	table *regexp.Regexp
}

func newLabelPattern(label string) labelPattern {
	q := regexp.QuoteMeta(label)
	return labelPattern{
		bold:  regexp.MustCompile(`(?i)\*\*` + q + `\*?\*?\s*:\s*\*?\*?\s*(.+)`),
		plain: regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:[-•]\s+)?` + q + `\s*:\s*(.+)`),
		table: regexp.MustCompile(`(?i)\*\*` + q + `\*\*\s+`),
	}
}

// find returns the first non-empty value, trying bold, plain, then table
// format. It returns "" when the label is absent.
func (lp labelPattern) find(text string) string {
	for _, re := range []*regexp.Regexp{lp.bold, lp.plain} {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := trimEmphasis(m[1]); v != "" {
				return v
			}
		}
	}
	return lp.tableValue(text)
}

func (lp labelPattern) tableValue(text string) string {
	loc := lp.table.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	if rest == "" {
		return ""
	}
	end := len(rest)
	// The cell holds at least one character before a stop can apply.
	if stop := tableStopRe.FindStringIndex(rest[1:]); stop != nil {
		end = stop[0] + 1
	}
	return trimEmphasis(joinLines(rest[:end]))
}

// paragraphPattern finds a paragraph introduced by a section heading, either
// **TITLE** or ### Title, and running to the next heading.
type paragraphPattern struct {
	heads []*regexp.Regexp
}

func newParagraphPattern(title string) paragraphPattern {
	words := strings.Fields(title)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	t := strings.Join(words, `\s+`)
	return paragraphPattern{heads: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*\*` + t + `\*\*[ \t]*\n`),
		regexp.MustCompile(`(?i)(?:^|\n)#{2,4}\s+` + t + `[^\n]*\n`),
	}}
}

func (pp paragraphPattern) find(text string) string {
	for _, head := range pp.heads {
		loc := head.FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := strings.TrimLeft(text[loc[1]:], " \t\r\n")
		if stop := paragraphStopRe.FindStringIndex(body); stop != nil {
			body = body[:stop[0]]
		}
		body = emphasisRe.ReplaceAllString(body, "")
		if v := joinLines(body); v != "" {
			return v
		}
	}
	return ""
}

// joinLines collapses line breaks and surrounding whitespace into single spaces.
func joinLines(s string) string {
	return strings.TrimSpace(lineBreakRe.ReplaceAllString(strings.TrimSpace(s), " "))
}

func trimEmphasis(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "*")
	s = strings.TrimRight(s, "*")
	return strings.TrimSpace(s)
}

// splitList splits a comma-separated value into trimmed, non-empty items.
// A comma between two digits (50,000) does not split.
func splitList(s string) []string {
	items := []string{}
	runes := []rune(s)
	start := 0
	for i, r := range runes {
		if r != ',' {
			continue
		}
		if i > 0 && i+1 < len(runes) && isDigit(runes[i-1]) && isDigit(runes[i+1]) {
			continue
		}
		if item := strings.TrimSpace(string(runes[start:i])); item != "" {
			items = append(items, item)
		}
		start = i + 1
	}
	if item := strings.TrimSpace(string(runes[start:])); item != "" {
		items = append(items, item)
	}
	return items
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
