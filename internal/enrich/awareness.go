package enrich

import (
	"fmt"
	"strings"

	"github.com/sells-group/audience-cli/internal/model"
)

// AwarenessResult is the awareness classification of one profile.
type AwarenessResult struct {
	Stage      string                  `json:"awarenessStage"`
	Confidence string                  `json:"awarenessConfidence"`
	Signals    *model.AwarenessSignals `json:"awarenessSignals,omitempty"`
	Score      int                     `json:"score"`
	Reasoning  string                  `json:"reasoning"`
}

// InferAwareness classifies p into an awareness stage. Each belief keyword
// found in the combined text scores 1, as does each objection keyword found
// in an objection. Confidence is high at 3 or more, medium at 2.
func InferAwareness(p model.ParsedProfile, rules []AwarenessRule) AwarenessResult {
	allText := joinLower(p.Beliefs, p.Objections, p.LanguagePatterns, p.PainPoints)
	objections := joinLower(p.Objections)
	language := joinLower(p.LanguagePatterns)

	var (
		best    AwarenessResult
		bestHit []string
		found   bool
	)
	for _, rule := range rules {
		beliefHits := matchKeywords(rule.BeliefKeywords, allText)
		objectionHits := matchKeywords(rule.ObjectionKeywords, objections)
		score := len(beliefHits) + len(objectionHits)
		if found && score <= best.Score {
			continue
		}
		found = true

		var reasons []string
		var beliefSig, objectionSig, languageSig []string
		for _, kw := range beliefHits {
			r := fmt.Sprintf("beliefs/language contains '%s'", kw)
			reasons = append(reasons, r)
			beliefSig = append(beliefSig, r)
			if strings.Contains(language, strings.ToLower(kw)) {
				languageSig = append(languageSig, fmt.Sprintf("language contains '%s'", kw))
			}
		}
		for _, kw := range objectionHits {
			r := fmt.Sprintf("objection contains '%s'", kw)
			reasons = append(reasons, r)
			objectionSig = append(objectionSig, r)
		}

		best = AwarenessResult{Stage: rule.Stage, Score: score}
		best.Signals = signals(beliefSig, objectionSig, languageSig)
		bestHit = reasons
	}

	if !found {
		return AwarenessResult{Confidence: model.ConfidenceLow, Reasoning: noIndicators}
	}

	best.Confidence = confidenceFor(best.Score, 3, 2)
	best.Reasoning = fmt.Sprintf("Matched %d indicators for %s: %s", best.Score, best.Stage, summarize(bestHit, 3))
	return best
}

func signals(beliefs, objections, language []string) *model.AwarenessSignals {
	if len(beliefs) == 0 && len(objections) == 0 && len(language) == 0 {
		return nil
	}
	return &model.AwarenessSignals{
		BeliefsSignal:    strings.Join(head(beliefs, maxBeliefSignals), "; "),
		ObjectionsSignal: strings.Join(head(objections, maxOtherSignals), "; "),
		LanguageSignal:   strings.Join(head(language, maxOtherSignals), "; "),
	}
}

func summarize(reasons []string, n int) string {
	if len(reasons) == 0 {
		return noIndicators
	}
	return strings.Join(head(reasons, n), "; ")
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
