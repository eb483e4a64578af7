package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	groupNumberRe  = regexp.MustCompile(`^(?:#{1,3}\s+)?Group\s+(\d+)`)
	focusMarkerRe  = regexp.MustCompile(`^\*\*FOCUS\s+GROUP\s+#(\d+)\*\*`)
	numberedLineRe = regexp.MustCompile(`^(?:#{1,2}\s+)?(\d+)\.\s+`)
	boldLineRe     = regexp.MustCompile(`^\*\*[^*]+\*\*$`)
	italicQuoteRe  = regexp.MustCompile(`^\*\\?["“]`)

	headingMarkRe   = regexp.MustCompile(`^#{1,6}\s*`)
	quotedParenRe   = regexp.MustCompile(`^(?:Group\s+\d+\s*:\s*)?["“]([^"”]+)["”]\s*\(([^)]+)\)`)
	numberedNickRe  = regexp.MustCompile(`^\d+\.\s+(.+?)\s*[-–]\s*["“]([^"”]+)["”]`)
	groupQuotedRe   = regexp.MustCompile(`^Group\s+\d+\s*:\s*["“]([^"”]+)["”]`)
	quotedRe        = regexp.MustCompile(`["“]([^"”]+)["”]`)
	emphasisRe      = regexp.MustCompile(`\*+`)
	parentheticalRe = regexp.MustCompile(`\(([^)]+)\)`)
)

// parseHeading reads the focus group number, name and nickname from the
// first lines of a block. The heading convention is detected from the first line.
func parseHeading(lines []string) (number *int, name, nickname string) {
	line := func(i int) string {
		if i < len(lines) {
			return strings.TrimSpace(lines[i])
		}
		return ""
	}
	first := line(0)

	switch {
	case groupNumberRe.MatchString(first):
		// ## Group N: "Name" (Nickname)
		number = atoiPtr(groupNumberRe.FindStringSubmatch(first)[1])
		name, nickname = NameAndNickname(first, "")

	case focusMarkerRe.MatchString(first):
		// **FOCUS GROUP #N** / **Name** / *"Nickname"*
		// Lead-in lines before the bold name are skipped.
		number = atoiPtr(focusMarkerRe.FindStringSubmatch(first)[1])
		var nameLine, nickLine string
		for _, l := range lines[1:] {
			l = strings.TrimSpace(l)
			if l == "" {
				continue
			}
			if nameLine == "" {
				if !boldLineRe.MatchString(l) {
					continue
				}
				nameLine = l
				continue
			}
			if italicQuoteRe.MatchString(l) {
				nickLine = l
			}
			break
		}
		if nameLine != "" {
			name, nickname = NameAndNickname(nameLine, nickLine)
		}

	case numberedLineRe.MatchString(first):
		// # N. Name - "Nickname"
		number = atoiPtr(numberedLineRe.FindStringSubmatch(first)[1])
		name, nickname = NameAndNickname(first, "")

	default:
		name, nickname = NameAndNickname(first, line(1))
	}
	return number, name, nickname
}

// nameStrategy tries to read a name and nickname from a cleaned heading and
// an optional following line.
type nameStrategy func(heading, subheading string) (name, nickname string, ok bool)

var nameStrategies = []nameStrategy{
	quotedNameWithParenNickname,
	numberedNameWithQuotedNickname,
	boldNameWithItalicNickname,
	groupQuotedName,
}

// NameAndNickname extracts a focus group name and nickname from a heading
// line. subheading is the following line for the bold-name format and may be
// empty. The first matching strategy wins; if none match, emphasis is
// stripped from the heading and a trailing parenthetical becomes the nickname.
func NameAndNickname(heading, subheading string) (name, nickname string) {
	clean := strings.TrimSpace(heading)
	clean = headingMarkRe.ReplaceAllString(clean, "")
	clean = strings.TrimPrefix(clean, "**")
	clean = strings.TrimSuffix(clean, "**")

	for _, strategy := range nameStrategies {
		if name, nickname, ok := strategy(clean, subheading); ok {
			return name, nickname
		}
	}

	name = strings.TrimSpace(emphasisRe.ReplaceAllString(clean, ""))
	if loc := parentheticalRe.FindStringSubmatchIndex(name); loc != nil {
		nickname = strings.TrimSpace(name[loc[2]:loc[3]])
		name = strings.TrimSpace(name[:loc[0]])
	}
	return name, nickname
}

// Group N: "Name" (Nickname), or "Name" (Nickname).
func quotedNameWithParenNickname(heading, _ string) (string, string, bool) {
	m := quotedParenRe.FindStringSubmatch(heading)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// N. Name - "Nickname"
func numberedNameWithQuotedNickname(heading, _ string) (string, string, bool) {
	m := numberedNickRe.FindStringSubmatch(heading)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// **Name** followed by *"Nickname"*. Pandoc output escapes the quotes (\"),
// so backslashes are dropped before looking for the quoted nickname.
func boldNameWithItalicNickname(heading, subheading string) (string, string, bool) {
	if subheading == "" {
		return "", "", false
	}
	name := strings.TrimSpace(emphasisRe.ReplaceAllString(heading, ""))
	var nickname string
	if m := quotedRe.FindStringSubmatch(strings.ReplaceAll(subheading, `\`, "")); m != nil {
		nickname = strings.TrimSpace(m[1])
	}
	return name, nickname, true
}

// Group N: "Name"
func groupQuotedName(heading, _ string) (string, string, bool) {
	m := groupQuotedRe.FindStringSubmatch(heading)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), "", true
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
