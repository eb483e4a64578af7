// Package pipeline wires segmentation, extraction, enrichment, scoring and
// matching into document-level operations.
package pipeline

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/audience-cli/internal/enrich"
	"github.com/sells-group/audience-cli/internal/extract"
	"github.com/sells-group/audience-cli/internal/model"
	"github.com/sells-group/audience-cli/internal/scorer"
	"github.com/sells-group/audience-cli/internal/segment"
)

const defaultConcurrency = 4

// Options configures a Parser. Nil components use their package defaults.
type Options struct {
	Segmenter *segment.Segmenter
	Extractor *extract.Extractor
	Scorer    *scorer.Scorer
	// Enricher, when set, runs before scoring.
	Enricher    *enrich.Enricher
	Concurrency int
}

// Parser turns audience documents into scored profiles.
type Parser struct {
	segmenter   *segment.Segmenter
	extractor   *extract.Extractor
	scorer      *scorer.Scorer
	enricher    *enrich.Enricher
	concurrency int
}

// New creates a Parser.
func New(opts Options) *Parser {
	p := &Parser{
		segmenter:   opts.Segmenter,
		extractor:   opts.Extractor,
		scorer:      opts.Scorer,
		enricher:    opts.Enricher,
		concurrency: opts.Concurrency,
	}
	if p.segmenter == nil {
		p.segmenter = segment.New()
	}
	if p.extractor == nil {
		p.extractor = extract.New(extract.DefaultConfig())
	}
	if p.scorer == nil {
		p.scorer = scorer.New(nil)
	}
	if p.concurrency <= 0 {
		p.concurrency = defaultConcurrency
	}
	return p
}

// ParseDocument returns the profiles found in text, in document order.
// Blocks without a name are dropped. The result is never nil.
func (p *Parser) ParseDocument(text string) []model.ParsedProfile {
	text = norm.NFC.String(text)

	profiles := []model.ParsedProfile{}
	for i, block := range p.segmenter.Segment(text) {
		prof := p.extractor.Extract(block)
		if prof.Name == "" {
			zap.L().Debug("pipeline: dropping block without name", zap.Int("block", i))
			continue
		}
		p.Finish(&prof)
		profiles = append(profiles, prof)
	}
	return profiles
}

// Finish enriches (when configured) and scores a profile in place.
func (p *Parser) Finish(prof *model.ParsedProfile) {
	if p.enricher != nil {
		p.enricher.Apply(prof)
	}
	p.scorer.Apply(prof)
	prof.FillEmptyLists()
}

// ParseFile reads and parses one document.
func (p *Parser) ParseFile(path string) ([]model.ParsedProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: read document %s", path)
	}
	profiles := p.ParseDocument(string(data))
	zap.L().Info("pipeline: parsed document",
		zap.String("path", path),
		zap.Int("profiles", len(profiles)),
	)
	return profiles, nil
}

// ParseFiles parses several documents concurrently and returns their
// profiles concatenated in argument order. The first read error cancels
// the remaining work.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) ([]model.ParsedProfile, error) {
	results := make([][]model.ParsedProfile, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles, err := p.ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = profiles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: parse files")
	}

	all := []model.ParsedProfile{}
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// Rescore re-runs enrichment (when configured) and scoring over profiles
// loaded from an earlier run, in place.
func (p *Parser) Rescore(profiles []model.ParsedProfile) {
	for i := range profiles {
		p.Finish(&profiles[i])
	}
}
