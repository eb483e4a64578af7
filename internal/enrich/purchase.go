package enrich

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sells-group/audience-cli/internal/model"
)

// PurchaseResult is the inferred purchase behavior of one profile.
type PurchaseResult struct {
	Behavior   model.PurchaseBehavior `json:"purchaseBehavior"`
	Confidence string                 `json:"confidence"`
	Reasoning  string                 `json:"reasoning"`
}

// InferPurchaseBehavior derives buying triggers, price range, decision
// process and objection history from the parsed fields of p. Confidence
// reflects how many of the five source fields were populated: high at 4,
// medium at 2.
func InferPurchaseBehavior(p model.ParsedProfile, tiers []PriceTier, styles []DecisionStyle) PurchaseResult {
	var sources []string
	if p.Demographics != nil {
		sources = append(sources, "demographics")
	}
	if len(p.PainPoints) > 0 {
		sources = append(sources, "painPoints")
	}
	if len(p.Objections) > 0 {
		sources = append(sources, "objections")
	}
	if len(p.EmotionalTriggers) > 0 {
		sources = append(sources, "emotionalTriggers")
	}
	if p.Psychographics != nil {
		sources = append(sources, "psychographics")
	}

	behavior := model.PurchaseBehavior{
		BuyingTriggers:   buyingTriggers(p),
		PriceRange:       priceRange(p.Demographics, tiers),
		DecisionProcess:  decisionProcess(p.Psychographics, p.Objections, styles),
		ObjectionHistory: []string{NoObjections},
	}
	if len(p.Objections) > 0 {
		behavior.ObjectionHistory = slices.Clone(p.Objections)
	}

	used := "none"
	if len(sources) > 0 {
		used = strings.Join(sources, ", ")
	}
	return PurchaseResult{
		Behavior:   behavior,
		Confidence: confidenceFor(len(sources), 4, 2),
		Reasoning: fmt.Sprintf("Inferred from %d data sources (%s). Price range from income: %s. Decision process: %s.",
			len(sources), used, behavior.PriceRange, behavior.DecisionProcess),
	}
}

func priceRange(d *model.Demographics, tiers []PriceTier) string {
	if d == nil {
		return PriceUnknown
	}
	income := strings.ToLower(d.Income)
	if income == "" {
		return PriceUnknown
	}
	for _, tier := range tiers {
		if len(matchKeywords(tier.Keywords, income)) > 0 {
			return tier.Label
		}
	}
	// "$100k+" style open-ended incomes.
	if strings.Contains(income, "+") {
		return PriceOpenEnded
	}
	return PriceDefault
}

func decisionProcess(psych *model.Psychographics, objections []string, styles []DecisionStyle) string {
	if psych == nil && len(objections) == 0 {
		return DecisionUnknown
	}

	var text string
	if psych != nil {
		text = joinLower(psych.Values, psych.Beliefs, []string{psych.Lifestyle, psych.Identity})
	}
	text += " " + joinLower(objections)

	best, bestScore := "", 0
	for _, style := range styles {
		if n := len(matchKeywords(style.Keywords, text)); n > bestScore {
			best, bestScore = style.Label, n
		}
	}
	if bestScore == 0 {
		return DecisionMixed
	}
	return best
}

func buyingTriggers(p model.ParsedProfile) []string {
	var triggers []string
	triggers = append(triggers, p.EmotionalTriggers...)
	for _, pp := range p.PainPoints {
		triggers = append(triggers, "pain point: "+pp)
	}
	if p.Demographics != nil {
		for _, t := range p.Demographics.Triggers {
			triggers = append(triggers, "life event: "+t)
		}
	}
	if len(triggers) == 0 {
		return []string{NoTriggers}
	}
	return triggers
}
