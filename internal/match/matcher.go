// Package match reconciles parsed focus groups against an existing catalog.
package match

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/audience-cli/internal/model"
)

// Tier confidences and the similarity floor for the fuzzy tiers.
const (
	ExactNameConfidence     = 1.0
	ExactNicknameConfidence = 0.95
	SubstringConfidence     = 0.85
	SimilarityThreshold     = 0.80

	// maxFuzzyConfidence keeps fuzzy tiers below the enrich_existing floor.
	maxFuzzyConfidence = 0.94
)

// Reason tags for the fixed tiers.
const (
	ReasonExactName     = "exact_name"
	ReasonExactNickname = "exact_nickname"
	ReasonNameSubstring = "name_substring"
	ReasonNoMatch       = "no_match"
)

// Match resolves a parsed name/nickname against existing records using a
// five-tier cascade:
//  1. Exact name (enrich_existing, 1.0)
//  2. Exact nickname (enrich_existing, 0.95)
//  3. Name substring in either direction (possible_match, 0.85)
//  4. Name edit-distance similarity >= 0.80 (possible_match)
//  5. Nickname-to-name similarity >= 0.80 (possible_match)
//
// Records are visited in snapshot order and the first tier that fires for a
// record is returned immediately. An earlier record's weak match therefore
// wins over a stronger match on a later record.
func Match(parsedName, parsedNickname string, existing []model.ExistingRecord) model.MatchResult {
	name := normalize(parsedName)
	nick := normalize(parsedNickname)

	for _, rec := range existing {
		if res, ok := matchRecord(name, nick, rec); ok {
			zap.L().Debug("match: resolved",
				zap.String("parsed_name", parsedName),
				zap.String("matched_id", rec.ID),
				zap.String("reason", res.Reason),
				zap.Float64("confidence", res.Confidence),
			)
			return res
		}
	}

	return model.MatchResult{
		Status:     model.MatchCreateNew,
		Confidence: 0.0,
		Reason:     ReasonNoMatch,
	}
}

func matchRecord(name, nick string, rec model.ExistingRecord) (model.MatchResult, bool) {
	existingName := normalize(rec.Name)
	existingNick := normalize(rec.Nickname)

	if name == existingName {
		return found(rec, model.MatchEnrichExisting, ExactNameConfidence, ReasonExactName), true
	}

	if nick != "" && nick == existingNick {
		return found(rec, model.MatchEnrichExisting, ExactNicknameConfidence, ReasonExactNickname), true
	}

	if strings.Contains(existingName, name) || strings.Contains(name, existingName) {
		return found(rec, model.MatchPossible, SubstringConfidence, ReasonNameSubstring), true
	}

	if sim := Similarity(name, existingName); sim >= SimilarityThreshold {
		return found(rec, model.MatchPossible, fuzzyConfidence(sim), fmt.Sprintf("fuzzy_%.2f", sim)), true
	}

	if nick != "" && existingName != "" {
		if sim := Similarity(nick, existingName); sim >= SimilarityThreshold {
			return found(rec, model.MatchPossible, fuzzyConfidence(sim), fmt.Sprintf("nick_to_name_%.2f", sim)), true
		}
	}

	return model.MatchResult{}, false
}

func found(rec model.ExistingRecord, status model.MatchStatus, confidence float64, reason string) model.MatchResult {
	id := rec.ID
	return model.MatchResult{
		Status:     status,
		MatchedID:  &id,
		Confidence: confidence,
		Reason:     reason,
	}
}

// normalize composes the string to NFC, trims it and lowercases it.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// fuzzyConfidence rounds a similarity to two decimals. Long names one edit
// apart can round to 0.95 or above, which would read as enrich_existing, so
// the value is capped. The fuzzy_ and nick_to_name_ reason tags keep the
// uncapped similarity, so a capped result reads confidence 0.94 with a
// reason such as fuzzy_0.97.
func fuzzyConfidence(sim float64) float64 {
	return math.Min(math.Round(sim*100)/100, maxFuzzyConfidence)
}
