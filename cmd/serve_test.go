//go:build !integration

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/audience-cli/internal/catalog"
	"github.com/sells-group/audience-cli/internal/model"
	"github.com/sells-group/audience-cli/internal/pipeline"
)

type failingSource struct{}

func (failingSource) Records(context.Context) ([]model.ExistingRecord, error) {
	return nil, errors.New("boom")
}

func newTestRouter(t *testing.T, source catalog.Source) http.Handler {
	t.Helper()
	return buildRouter(pipeline.New(pipeline.Options{}), source, nil)
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Health(t *testing.T) {
	rr := serve(newTestRouter(t, nil), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Parse(t *testing.T) {
	doc, err := os.ReadFile(twoGroupsDoc)
	require.NoError(t, err)
	payload, err := json.Marshal(parseBody{Document: string(doc)})
	require.NoError(t, err)

	rr := serve(newTestRouter(t, nil), http.MethodPost, "/v1/parse", string(payload))
	require.Equal(t, http.StatusOK, rr.Code)

	profiles := decodeProfiles(t, rr.Body.Bytes())
	require.Len(t, profiles, 2)
	assert.Equal(t, "Fat Loss Seekers", profiles[0].Name)
}

func TestRouter_ParseEmptyDocument(t *testing.T) {
	rr := serve(newTestRouter(t, nil), http.MethodPost, "/v1/parse", `{"document": ""}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestRouter_InvalidBody(t *testing.T) {
	h := newTestRouter(t, nil)
	for _, path := range []string{"/v1/parse", "/v1/match", "/v1/score"} {
		rr := serve(h, http.MethodPost, path, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
		assert.Contains(t, rr.Body.String(), "invalid request body", path)
	}
}

func TestRouter_MatchInlineSnapshot(t *testing.T) {
	rr := serve(newTestRouter(t, nil), http.MethodPost, "/v1/match", `{
		"name": "Fat Loss Seeker",
		"existing": [{"_id": "fg_001", "name": "Fat Loss Seekers"}]
	}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res model.MatchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, model.MatchPossible, res.Status)
	assert.Equal(t, "name_substring", res.Reason)
}

func TestRouter_MatchConfiguredCatalog(t *testing.T) {
	h := newTestRouter(t, catalog.JSONFile{Path: existingJSON})
	rr := serve(h, http.MethodPost, "/v1/match", `{"name": "Someone", "nickname": "the scale watchers"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res model.MatchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, model.MatchEnrichExisting, res.Status)
	require.NotNil(t, res.MatchedID)
	assert.Equal(t, "fg_001", *res.MatchedID)
}

func TestRouter_MatchErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   catalog.Source
		body     string
		wantCode int
		wantMsg  string
	}{
		{"missing name", nil, `{"existing": []}`, http.StatusBadRequest, "name is required"},
		{"no catalog", nil, `{"name": "x"}`, http.StatusBadRequest, "no catalog configured"},
		{"malformed inline", nil, `{"name": "x", "existing": [{"name": "no id"}]}`, http.StatusUnprocessableEntity, "malformed"},
		{"catalog failure", failingSource{}, `{"name": "x"}`, http.StatusInternalServerError, "catalog unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newTestRouter(t, tt.source), http.MethodPost, "/v1/match", tt.body)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantMsg)
		})
	}
}

func TestRouter_Score(t *testing.T) {
	rr := serve(newTestRouter(t, nil), http.MethodPost, "/v1/score", `[{"name": "Busy Parents", "coreDesires": ["More family time"]}]`)
	require.Equal(t, http.StatusOK, rr.Code)

	profiles := decodeProfiles(t, rr.Body.Bytes())
	require.Len(t, profiles, 1)
	assert.Greater(t, profiles[0].CompletenessScore, 0.0)
	assert.NotContains(t, profiles[0].MissingFields, "coreDesires")
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := buildRouter(pipeline.New(pipeline.Options{}), nil, []string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/v1/parse", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	rr := serve(newTestRouter(t, nil), http.MethodGet, "/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
