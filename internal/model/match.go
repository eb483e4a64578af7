package model

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// MatchStatus is the reconciliation decision for a parsed profile.
type MatchStatus string

const (
	MatchEnrichExisting MatchStatus = "enrich_existing"
	MatchPossible       MatchStatus = "possible_match"
	MatchCreateNew      MatchStatus = "create_new"
)

// MatchResult is the outcome of matching one parsed name/nickname pair
// against a catalog snapshot. MatchedID is nil when Status is create_new.
type MatchResult struct {
	Status     MatchStatus `json:"matchStatus"`
	MatchedID  *string     `json:"matchedId"`
	Confidence float64     `json:"confidence"`
	Reason     string      `json:"reason"`
}

// ExistingRecord is a catalog entry that parsed profiles are reconciled against.
type ExistingRecord struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
}

// UnmarshalJSON accepts either "_id" or "id" as the identifier key.
func (r *ExistingRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		UnderscoreID *string `json:"_id"`
		ID           *string `json:"id"`
		Name         *string `json:"name"`
		Nickname     *string `json:"nickname"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.UnderscoreID != nil:
		r.ID = *raw.UnderscoreID
	case raw.ID != nil:
		r.ID = *raw.ID
	}
	if raw.Name != nil {
		r.Name = *raw.Name
	}
	if raw.Nickname != nil {
		r.Nickname = *raw.Nickname
	}
	return nil
}

// Validate checks that the record carries the fields matching depends on.
func (r ExistingRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return eris.New("model: existing record missing id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return eris.Errorf("model: existing record %s missing name", r.ID)
	}
	return nil
}
