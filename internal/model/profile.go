// Package model holds the focus group profile, match and staging records
// shared by the parser, matcher and catalog.
package model

// Demographics holds the demographic sub-record of a focus group.
type Demographics struct {
	AgeRange  string   `json:"ageRange"`
	Gender    string   `json:"gender"`
	Income    string   `json:"income"`
	Lifestyle string   `json:"lifestyle"`
	Triggers  []string `json:"triggers"`
}

// Psychographics holds the psychographic sub-record of a focus group.
type Psychographics struct {
	Values    []string `json:"values"`
	Beliefs   []string `json:"beliefs"`
	Lifestyle string   `json:"lifestyle"`
	Identity  string   `json:"identity"`
}

// ParsedProfile is one focus group extracted from an audience research document.
// The JSON field names are consumed by the staging import and must stay stable.
type ParsedProfile struct {
	Number         *int            `json:"number"`
	Name           string          `json:"name"`
	Nickname       string          `json:"nickname,omitempty"`
	Category       string          `json:"category,omitempty"`
	Overview       string          `json:"overview,omitempty"`
	Demographics   *Demographics   `json:"demographics,omitempty"`
	Psychographics *Psychographics `json:"psychographics,omitempty"`

	CoreDesires       []string `json:"coreDesires"`
	PainPoints        []string `json:"painPoints"`
	Fears             []string `json:"fears"`
	Beliefs           []string `json:"beliefs"`
	Objections        []string `json:"objections"`
	EmotionalTriggers []string `json:"emotionalTriggers"`
	LanguagePatterns  []string `json:"languagePatterns"`
	EbookAngles       []string `json:"ebookAngles"`
	MarketingHooks    []string `json:"marketingHooks"`

	TransformationPromise string `json:"transformationPromise,omitempty"`

	Enrichment

	CompletenessScore float64  `json:"completenessScore"`
	MissingFields     []string `json:"missingFields"`
}

// ListField identifies one of the nine list-valued profile fields.
type ListField string

const (
	FieldCoreDesires       ListField = "coreDesires"
	FieldPainPoints        ListField = "painPoints"
	FieldFears             ListField = "fears"
	FieldBeliefs           ListField = "beliefs"
	FieldObjections        ListField = "objections"
	FieldEmotionalTriggers ListField = "emotionalTriggers"
	FieldLanguagePatterns  ListField = "languagePatterns"
	FieldEbookAngles       ListField = "ebookAngles"
	FieldMarketingHooks    ListField = "marketingHooks"
)

// SetList assigns items to the list field identified by f. Unknown fields are ignored.
func (p *ParsedProfile) SetList(f ListField, items []string) {
	if items == nil {
		items = []string{}
	}
	switch f {
	case FieldCoreDesires:
		p.CoreDesires = items
	case FieldPainPoints:
		p.PainPoints = items
	case FieldFears:
		p.Fears = items
	case FieldBeliefs:
		p.Beliefs = items
	case FieldObjections:
		p.Objections = items
	case FieldEmotionalTriggers:
		p.EmotionalTriggers = items
	case FieldLanguagePatterns:
		p.LanguagePatterns = items
	case FieldEbookAngles:
		p.EbookAngles = items
	case FieldMarketingHooks:
		p.MarketingHooks = items
	}
}

// FillEmptyLists replaces nil list fields with empty slices so they
// serialize as [] rather than null.
func (p *ParsedProfile) FillEmptyLists() {
	for _, l := range []*[]string{
		&p.CoreDesires, &p.PainPoints, &p.Fears, &p.Beliefs, &p.Objections,
		&p.EmotionalTriggers, &p.LanguagePatterns, &p.EbookAngles, &p.MarketingHooks,
		&p.MissingFields,
	} {
		if *l == nil {
			*l = []string{}
		}
	}
}
