package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistingRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ExistingRecord
	}{
		{"underscore id", `{"_id": "fg_001", "name": "A", "nickname": "The A"}`, ExistingRecord{ID: "fg_001", Name: "A", Nickname: "The A"}},
		{"plain id", `{"id": "fg_002", "name": "B"}`, ExistingRecord{ID: "fg_002", Name: "B"}},
		{"underscore wins", `{"_id": "x", "id": "y", "name": "C"}`, ExistingRecord{ID: "x", Name: "C"}},
		{"no id", `{"name": "D"}`, ExistingRecord{Name: "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ExistingRecord
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExistingRecord_MarshalUsesUnderscoreID(t *testing.T) {
	data, err := json.Marshal(ExistingRecord{ID: "fg_001", Name: "A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id": "fg_001", "name": "A"}`, string(data))
}

func TestExistingRecord_Validate(t *testing.T) {
	assert.NoError(t, ExistingRecord{ID: "a", Name: "A"}.Validate())

	err := ExistingRecord{Name: "A"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")

	err = ExistingRecord{ID: "a", Name: " "}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a missing name")
}

func TestMatchResult_NullMatchedID(t *testing.T) {
	data, err := json.Marshal(MatchResult{Status: MatchCreateNew, Reason: "no_match"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"matchStatus": "create_new", "matchedId": null, "confidence": 0, "reason": "no_match"}`, string(data))
}

func TestParsedProfile_SetList(t *testing.T) {
	var p ParsedProfile
	p.SetList(FieldFears, []string{"Failing again"})
	p.SetList(FieldMarketingHooks, nil)
	p.SetList(ListField("unknown"), []string{"ignored"})

	assert.Equal(t, []string{"Failing again"}, p.Fears)
	assert.NotNil(t, p.MarketingHooks)
	assert.Empty(t, p.MarketingHooks)
	assert.Nil(t, p.CoreDesires)
}

func TestParsedProfile_FillEmptyListsSerializesArrays(t *testing.T) {
	p := ParsedProfile{Name: "Busy Parents", CoreDesires: []string{"More time"}}
	p.FillEmptyLists()

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `["More time"]`, string(raw["coreDesires"]))
	for _, key := range []string{"painPoints", "fears", "beliefs", "objections", "emotionalTriggers", "languagePatterns", "ebookAngles", "marketingHooks", "missingFields"} {
		assert.Equal(t, "[]", string(raw[key]), key)
	}
	assert.Equal(t, "null", string(raw["number"]))
	_, hasNickname := raw["nickname"]
	assert.False(t, hasNickname)
}
