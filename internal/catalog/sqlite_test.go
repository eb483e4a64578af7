package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/audience-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_ImportAndRecords(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	n, err := st.Import(ctx, []model.ExistingRecord{
		{ID: "fg_002", Name: "Muscle Builders"},
		{ID: "fg_001", Name: "Fat Loss Seekers", Nickname: "The Scale Watchers"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := st.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ExistingRecord{
		{ID: "fg_002", Name: "Muscle Builders"},
		{ID: "fg_001", Name: "Fat Loss Seekers", Nickname: "The Scale Watchers"},
	}, records)
}

func TestSQLite_ImportUpsertKeepsOrder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.Import(ctx, []model.ExistingRecord{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	})
	require.NoError(t, err)

	_, err = st.Import(ctx, []model.ExistingRecord{
		{ID: "a", Name: "Alpha Renamed", Nickname: "The First"},
		{ID: "c", Name: "Gamma"},
	})
	require.NoError(t, err)

	records, err := st.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "Alpha Renamed", records[0].Name)
	assert.Equal(t, "The First", records[0].Nickname)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}

func TestSQLite_ImportRejectsInvalid(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.Import(ctx, []model.ExistingRecord{
		{ID: "a", Name: "Alpha"},
		{ID: "b"},
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformed))

	records, err := st.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLite_RecordsEmpty(t *testing.T) {
	st := newTestSQLiteStore(t)

	records, err := st.Records(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSQLite_Staging(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	id := "fg_001"
	staged := []model.StagingRecord{
		{
			ID:              "s1",
			Profile:         model.ParsedProfile{Name: "Fat Loss Seekers", CompletenessScore: 40},
			Match:           model.MatchResult{Status: model.MatchEnrichExisting, MatchedID: &id, Confidence: 1, Reason: "exact_name"},
			NeedsEnrichment: true,
			ReviewStatus:    model.ReviewPending,
		},
		{
			ID:           "s2",
			Profile:      model.ParsedProfile{Name: "Yoga Fans"},
			Match:        model.MatchResult{Status: model.MatchCreateNew, Reason: "no_match"},
			ReviewStatus: "approved",
		},
	}
	require.NoError(t, st.SaveStaging(ctx, staged))

	all, err := st.ListStaging(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "s1", all[0].ID)
	require.NotNil(t, all[0].Match.MatchedID)
	assert.Equal(t, "fg_001", *all[0].Match.MatchedID)
	assert.Equal(t, 40.0, all[0].Profile.CompletenessScore)
	assert.Nil(t, all[1].Match.MatchedID)

	pending, err := st.ListStaging(ctx, model.ReviewPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Fat Loss Seekers", pending[0].Profile.Name)
}

func TestSQLite_StagingDuplicateIDFails(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := model.StagingRecord{ID: "dup", Profile: model.ParsedProfile{Name: "A"}, ReviewStatus: model.ReviewPending}
	require.NoError(t, st.SaveStaging(ctx, []model.StagingRecord{rec}))

	err := st.SaveStaging(ctx, []model.StagingRecord{rec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: insert staging dup")
}

func TestOpenExisting(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	_, err := OpenExisting(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: open")

	st, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(ctx))
	_, err = st.Import(ctx, []model.ExistingRecord{{ID: "a", Name: "Alpha"}})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	reopened, err := OpenExisting(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() }) //nolint:errcheck

	records, err := reopened.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ExistingRecord{{ID: "a", Name: "Alpha"}}, records)
}
