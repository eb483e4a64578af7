package enrich

import (
	"fmt"

	"github.com/sells-group/audience-cli/internal/model"
)

const hookWeight = 2

// SophisticationResult is the market sophistication classification of one profile.
type SophisticationResult struct {
	Level      string `json:"sophisticationLevel"`
	Confidence string `json:"confidence"`
	Score      int    `json:"score"`
	Reasoning  string `json:"reasoning"`
}

// InferSophistication classifies p into a market sophistication stage.
// Marketing hook matches score 2; language, belief and objection matches
// score 1. Confidence is high at 4 or more, medium at 2.
func InferSophistication(p model.ParsedProfile, rules []SophisticationRule) SophisticationResult {
	hooks := joinLower(p.MarketingHooks)
	language := joinLower(p.LanguagePatterns)
	beliefs := joinLower(p.Beliefs)
	objections := joinLower(p.Objections)

	var (
		best    SophisticationResult
		reasons []string
		found   bool
	)
	for _, rule := range rules {
		var score int
		var matches []string
		for _, src := range []struct {
			label    string
			keywords []string
			text     string
			weight   int
		}{
			{"hook", rule.HookKeywords, hooks, hookWeight},
			{"language", rule.LanguageKeywords, language, 1},
			{"belief", rule.BeliefKeywords, beliefs, 1},
			{"objection", rule.ObjectionKeywords, objections, 1},
		} {
			for _, kw := range matchKeywords(src.keywords, src.text) {
				score += src.weight
				matches = append(matches, fmt.Sprintf("%s contains '%s'", src.label, kw))
			}
		}
		if found && score <= best.Score {
			continue
		}
		found = true
		best = SophisticationResult{Level: rule.Level, Score: score}
		reasons = matches
	}

	if !found {
		return SophisticationResult{Confidence: model.ConfidenceLow, Reasoning: noIndicators}
	}

	best.Confidence = confidenceFor(best.Score, 4, 2)
	best.Reasoning = fmt.Sprintf("Matched %d weighted indicators for %s: %s", best.Score, best.Level, summarize(reasons, 4))
	return best
}
