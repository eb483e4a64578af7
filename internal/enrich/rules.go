// Package enrich infers marketing enrichment fields from parsed profile content
// using keyword rule tables.
package enrich

import (
	"strings"

	"github.com/sells-group/audience-cli/internal/model"
)

// AwarenessRule scores one awareness stage. BeliefKeywords are searched in
// the combined beliefs, objections, language patterns and pain points;
// ObjectionKeywords in the objections alone.
type AwarenessRule struct {
	Stage             string
	BeliefKeywords    []string
	ObjectionKeywords []string
}

// SophisticationRule scores one market sophistication stage. Hook matches
// count double.
type SophisticationRule struct {
	Level             string
	HookKeywords      []string
	LanguageKeywords  []string
	BeliefKeywords    []string
	ObjectionKeywords []string
}

// PriceTier maps income keywords to a price range label. Tiers are checked
// in order, so higher incomes come first.
type PriceTier struct {
	Label    string
	Keywords []string
}

// DecisionStyle maps psychographic and objection keywords to a decision
// process label.
type DecisionStyle struct {
	Label    string
	Keywords []string
}

// Rules holds every inference table. Stages earlier in a table win ties.
type Rules struct {
	Awareness      []AwarenessRule
	Sophistication []SophisticationRule
	PriceTiers     []PriceTier
	DecisionStyles []DecisionStyle
}

// Fallback values written when the rule tables have nothing to go on.
const (
	PriceUnknown    = "unknown"
	PriceOpenEnded  = "premium/high-end"
	PriceDefault    = "mid-range"
	DecisionUnknown = "unknown"
	DecisionMixed   = "mixed/unknown"
	NoTriggers      = "no triggers identified"
	NoObjections    = "none recorded"
)

// SourceAuto marks enrichment values produced by inference rather than by hand.
const SourceAuto = "auto"

const (
	noIndicators     = "no strong indicators"
	maxBeliefSignals = 3
	maxOtherSignals  = 2
)

// DefaultRules returns the built-in rule tables.
func DefaultRules() Rules {
	return Rules{
		Awareness: []AwarenessRule{
			{
				Stage:             model.AwarenessMostAware,
				BeliefKeywords:    []string{"best", "compared to", "deal", "coupon", "worth it"},
				ObjectionKeywords: []string{"price", "cost", "cheaper", "alternative"},
			},
			{
				Stage:             model.AwarenessProductAware,
				BeliefKeywords:    []string{"tried", "didn't work", "looking for", "better option"},
				ObjectionKeywords: []string{"different", "trust", "guarantee", "scam"},
			},
			{
				Stage:             model.AwarenessSolutionAware,
				BeliefKeywords:    []string{"i know", "should", "need to", "heard about"},
				ObjectionKeywords: []string{"time", "effort", "complicated", "overwhelmed"},
			},
			{
				Stage:             model.AwarenessProblemAware,
				BeliefKeywords:    []string{"struggling", "can't", "frustrated", "why", "stuck"},
				ObjectionKeywords: []string{"nothing works", "tried everything", "genetics"},
			},
			{
				Stage:             model.AwarenessUnaware,
				BeliefKeywords:    []string{"fine", "doesn't matter", "someday", "not a priority"},
				ObjectionKeywords: []string{"don't need", "happy", "later"},
			},
		},
		Sophistication: []SophisticationRule{
			{
				Level:            "stage1",
				HookKeywords:     []string{"lose", "get", "fast", "#1", "best", "easy", "simple", "guaranteed", "free"},
				LanguageKeywords: []string{"never tried", "first time", "new to", "just starting", "simple solution"},
				BeliefKeywords:   []string{"just need", "simple", "one thing", "quick fix"},
			},
			{
				Level:             "stage2",
				HookKeywords:      []string{"more effective", "faster", "clinically proven", "leading", "results", "powerful", "advanced"},
				LanguageKeywords:  []string{"more effective", "faster results", "need proof", "want something better"},
				BeliefKeywords:    []string{"seen claims", "more powerful", "need something better", "heard this before"},
				ObjectionKeywords: []string{"heard this before", "prove it", "skeptical", "doubt"},
			},
			{
				Level:             "stage3",
				HookKeywords:      []string{"patented", "proprietary", "unique", "formula", "process", "method", "mechanism", "technology", "system"},
				LanguageKeywords:  []string{"how does it work", "what's the science", "what makes this different", "mechanism", "explain how"},
				BeliefKeywords:    []string{"method matters", "understand", "mechanism", "science", "how it works"},
				ObjectionKeywords: []string{"what's different", "how exactly", "explain", "science"},
			},
			{
				Level:             "stage4",
				HookKeywords:      []string{"double-blind", "peer-reviewed", "bioavailable", "clinical", "study", "research", "evidence", "published"},
				LanguageKeywords:  []string{"show me the research", "studies say", "clinical data", "evidence-based", "peer-reviewed"},
				BeliefKeywords:    []string{"tried unique mechanisms", "real proof", "data", "evidence-based", "only trust"},
				ObjectionKeywords: []string{"other products claimed", "peer-reviewed", "evidence", "where's the proof", "clinical"},
			},
			{
				Level:             "stage5",
				HookKeywords:      []string{"join", "movement", "community", "tribe", "built by", "for lifters", "brand", "elite", "represent"},
				LanguageKeywords:  []string{"identify as", "part of", "community", "brand represents", "who I am", "my people"},
				BeliefKeywords:    []string{"align with", "values", "community matters", "I am what", "identity", "represent"},
				ObjectionKeywords: []string{"represent me", "who else uses", "community", "belong"},
			},
		},
		PriceTiers: []PriceTier{
			{Label: "premium/high-end", Keywords: []string{"200k", "150k", "100k"}},
			{Label: "premium", Keywords: []string{"90k"}},
			{Label: "mid-to-premium", Keywords: []string{"75k", "80k", "60k"}},
			{Label: "mid-range", Keywords: []string{"50k", "45k", "40k"}},
			{Label: "low-to-mid range", Keywords: []string{"35k", "30k"}},
			{Label: "budget/value-conscious", Keywords: []string{"under", "student", "<25", "<$25", "25k"}},
		},
		DecisionStyles: []DecisionStyle{
			{Label: "research-heavy/analytical", Keywords: []string{"evidence", "research", "data", "analytical", "methodical", "rational", "data-driven", "studies", "proof"}},
			{Label: "impulsive/emotional", Keywords: []string{"spontaneous", "impulse", "quick", "instant", "now", "act fast", "fomo", "limited time"}},
			{Label: "socially-influenced", Keywords: []string{"community", "friends", "family", "peers", "reviews", "recommendations", "word of mouth", "influencer"}},
			{Label: "deliberate/methodical", Keywords: []string{"careful", "thorough", "compare", "weigh", "consider", "deliberate", "cautious", "risk-averse"}},
		},
	}
}

// matchKeywords returns the keywords that appear (case-insensitive) in text,
// in keyword order.
func matchKeywords(keywords []string, text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// joinLower lowercases and space-joins the given lists.
func joinLower(lists ...[]string) string {
	var parts []string
	for _, l := range lists {
		for _, s := range l {
			parts = append(parts, strings.ToLower(s))
		}
	}
	return strings.Join(parts, " ")
}

func confidenceFor(score, high, medium int) string {
	switch {
	case score >= high:
		return model.ConfidenceHigh
	case score >= medium:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
