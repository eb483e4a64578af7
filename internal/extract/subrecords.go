package extract

import (
	"regexp"

	"github.com/sells-group/audience-cli/internal/model"
)

var (
	psychHeadingRe = regexp.MustCompile(`(?i)(?:^|\n)#{2,4}\s+Psychographics[^\n]*\n`)
	psychBoldRe    = regexp.MustCompile(`(?i)\*\*PSYCHOGRAPHICS\*\*\s*\n`)

	psychHeadingStopRe = regexp.MustCompile(`\n#{2,4}\s|\n\*\*[A-Za-z]`)
	psychBoldStopRe    = regexp.MustCompile(`\n\*\*[A-Za-z]`)
)

var (
	ageRangeLabel  = newLabelPattern("Age Range")
	ageLabel       = newLabelPattern("Age")
	genderLabel    = newLabelPattern("Gender")
	incomeLabel    = newLabelPattern("Income")
	lifestyleLabel = newLabelPattern("Lifestyle")
	triggersLabel  = newLabelPattern("Triggers")
	valuesLabel    = newLabelPattern("Values")
	beliefsLabel   = newLabelPattern("Beliefs")
	identityLabel  = newLabelPattern("Identity")
)

// demographics reads the demographic fields from anywhere in the block. It
// returns nil when none of age, gender, income or lifestyle is present.
func demographics(text string) *model.Demographics {
	age := ageRangeLabel.find(text)
	if age == "" {
		age = ageLabel.find(text)
	}
	d := &model.Demographics{
		AgeRange:  age,
		Gender:    genderLabel.find(text),
		Income:    incomeLabel.find(text),
		Lifestyle: lifestyleLabel.find(text),
		Triggers:  splitList(triggersLabel.find(text)),
	}
	if d.AgeRange == "" && d.Gender == "" && d.Income == "" && d.Lifestyle == "" {
		return nil
	}
	return d
}

// psychographics reads the psychographic fields from the Psychographics
// section only, so its Lifestyle and Beliefs labels do not collide with the
// demographic and list fields of the same name.
func psychographics(text string) *model.Psychographics {
	section, ok := psychSection(text)
	if !ok {
		return nil
	}
	p := &model.Psychographics{
		Values:    splitList(valuesLabel.find(section)),
		Beliefs:   splitList(beliefsLabel.find(section)),
		Lifestyle: lifestyleLabel.find(section),
		Identity:  identityLabel.find(section),
	}
	if len(p.Values) == 0 && len(p.Beliefs) == 0 && p.Lifestyle == "" && p.Identity == "" {
		return nil
	}
	return p
}

func psychSection(text string) (string, bool) {
	for _, h := range []struct{ head, stop *regexp.Regexp }{
		{psychHeadingRe, psychHeadingStopRe},
		{psychBoldRe, psychBoldStopRe},
	} {
		loc := h.head.FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[1]:]
		if stop := h.stop.FindStringIndex(body); stop != nil {
			body = body[:stop[0]]
		}
		return body, true
	}
	return "", false
}
