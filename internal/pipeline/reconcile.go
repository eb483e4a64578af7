package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/audience-cli/internal/match"
	"github.com/sells-group/audience-cli/internal/model"
)

// Reconcile matches each profile against the catalog snapshot and returns
// staging records in profile order.
func (p *Parser) Reconcile(ctx context.Context, profiles []model.ParsedProfile, existing []model.ExistingRecord) ([]model.StagingRecord, error) {
	records := make([]model.StagingRecord, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, prof := range profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := match.Match(prof.Name, prof.Nickname, existing)
			records[i] = model.StagingRecord{
				ID:              uuid.NewString(),
				Profile:         prof,
				Match:           res,
				NeedsEnrichment: prof.CompletenessScore < 100,
				ReviewStatus:    model.ReviewPending,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: reconcile")
	}

	counts := map[model.MatchStatus]int{}
	for _, r := range records {
		counts[r.Match.Status]++
	}
	zap.L().Info("pipeline: reconciled profiles",
		zap.Int("profiles", len(records)),
		zap.Int("enrich_existing", counts[model.MatchEnrichExisting]),
		zap.Int("possible_match", counts[model.MatchPossible]),
		zap.Int("create_new", counts[model.MatchCreateNew]),
	)
	return records, nil
}
