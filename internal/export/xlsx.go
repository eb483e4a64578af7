// Package export writes parsed profiles to spreadsheet workbooks for review.
package export

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/audience-cli/internal/model"
)

// Sheet names.
const (
	ProfilesSheet = "Profiles"
	StagingSheet  = "Staging"
)

// column is one spreadsheet column over a profile.
type column struct {
	header string
	value  func(p model.ParsedProfile) string
}

func joined(items []string) string { return strings.Join(items, "\n") }

var profileColumns = []column{
	{"Number", func(p model.ParsedProfile) string {
		if p.Number == nil {
			return ""
		}
		return strconv.Itoa(*p.Number)
	}},
	{"Name", func(p model.ParsedProfile) string { return p.Name }},
	{"Nickname", func(p model.ParsedProfile) string { return p.Nickname }},
	{"Category", func(p model.ParsedProfile) string { return p.Category }},
	{"Overview", func(p model.ParsedProfile) string { return p.Overview }},
	{"Age Range", func(p model.ParsedProfile) string {
		if p.Demographics == nil {
			return ""
		}
		return p.Demographics.AgeRange
	}},
	{"Gender", func(p model.ParsedProfile) string {
		if p.Demographics == nil {
			return ""
		}
		return p.Demographics.Gender
	}},
	{"Income", func(p model.ParsedProfile) string {
		if p.Demographics == nil {
			return ""
		}
		return p.Demographics.Income
	}},
	{"Core Desires", func(p model.ParsedProfile) string { return joined(p.CoreDesires) }},
	{"Pain Points", func(p model.ParsedProfile) string { return joined(p.PainPoints) }},
	{"Fears", func(p model.ParsedProfile) string { return joined(p.Fears) }},
	{"Beliefs", func(p model.ParsedProfile) string { return joined(p.Beliefs) }},
	{"Objections", func(p model.ParsedProfile) string { return joined(p.Objections) }},
	{"Emotional Triggers", func(p model.ParsedProfile) string { return joined(p.EmotionalTriggers) }},
	{"Language Patterns", func(p model.ParsedProfile) string { return joined(p.LanguagePatterns) }},
	{"Ebook Angles", func(p model.ParsedProfile) string { return joined(p.EbookAngles) }},
	{"Marketing Hooks", func(p model.ParsedProfile) string { return joined(p.MarketingHooks) }},
	{"Transformation Promise", func(p model.ParsedProfile) string { return p.TransformationPromise }},
	{"Awareness Stage", func(p model.ParsedProfile) string { return p.AwarenessStage }},
	{"Sophistication Level", func(p model.ParsedProfile) string { return p.SophisticationLevel }},
	{"Price Range", func(p model.ParsedProfile) string {
		if p.PurchaseBehavior == nil {
			return ""
		}
		return p.PurchaseBehavior.PriceRange
	}},
	{"Missing Fields", func(p model.ParsedProfile) string { return strings.Join(p.MissingFields, ", ") }},
}

// ProfileHeaders returns the column headers of the profiles sheet. The
// completeness score is the final column.
func ProfileHeaders() []string {
	headers := make([]string, 0, len(profileColumns)+1)
	for _, c := range profileColumns {
		headers = append(headers, c.header)
	}
	return append(headers, "Completeness Score")
}

// WriteProfiles saves profiles to a new workbook at path, one row per profile.
func WriteProfiles(path string, profiles []model.ParsedProfile) error {
	f := xlsx.NewFile()
	if err := addProfileSheet(f, profiles); err != nil {
		return err
	}
	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

// WriteStaging saves staging records to a new workbook at path: a Staging
// sheet with the match decisions and a Profiles sheet with the profiles.
func WriteStaging(path string, records []model.StagingRecord) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet(StagingSheet)
	if err != nil {
		return eris.Wrap(err, "xlsx: add staging sheet")
	}
	addStrings(sheet.AddRow(), []string{
		"ID", "Name", "Nickname", "Match Status", "Matched ID", "Confidence", "Reason", "Needs Enrichment", "Review Status",
	})
	for _, r := range records {
		row := sheet.AddRow()
		matched := ""
		if r.Match.MatchedID != nil {
			matched = *r.Match.MatchedID
		}
		addStrings(row, []string{r.ID, r.Profile.Name, r.Profile.Nickname, string(r.Match.Status), matched})
		row.AddCell().SetFloat(r.Match.Confidence)
		addStrings(row, []string{r.Match.Reason})
		row.AddCell().SetBool(r.NeedsEnrichment)
		addStrings(row, []string{r.ReviewStatus})
	}

	profiles := make([]model.ParsedProfile, len(records))
	for i, r := range records {
		profiles[i] = r.Profile
	}
	if err := addProfileSheet(f, profiles); err != nil {
		return err
	}
	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

func addProfileSheet(f *xlsx.File, profiles []model.ParsedProfile) error {
	sheet, err := f.AddSheet(ProfilesSheet)
	if err != nil {
		return eris.Wrap(err, "xlsx: add profiles sheet")
	}
	addStrings(sheet.AddRow(), ProfileHeaders())
	for _, p := range profiles {
		row := sheet.AddRow()
		for _, c := range profileColumns {
			row.AddCell().SetString(c.value(p))
		}
		row.AddCell().SetFloat(p.CompletenessScore)
	}
	return nil
}

func addStrings(row *xlsx.Row, values []string) {
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
