package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/catalog"
	"github.com/sells-group/audience-cli/internal/enrich"
	"github.com/sells-group/audience-cli/internal/model"
	"github.com/sells-group/audience-cli/internal/pipeline"
	"github.com/sells-group/audience-cli/internal/scorer"
)

// parserOptions selects the scoring registry and enrichment for a Parser.
type parserOptions struct {
	RegistryPath string
	Enrich       bool
	Concurrency  int
}

// parserOptionsFromConfig returns parser options from the loaded config.
// A nil config yields package defaults.
func parserOptionsFromConfig() parserOptions {
	if cfg == nil {
		return parserOptions{}
	}
	return parserOptions{
		RegistryPath: cfg.Scorer.RegistryPath,
		Enrich:       cfg.Enrich.Enabled,
		Concurrency:  cfg.Batch.Concurrency,
	}
}

// newParser builds a Parser, loading a YAML field registry when one is
// configured.
func newParser(opts parserOptions) (*pipeline.Parser, error) {
	var reg scorer.Registry
	if opts.RegistryPath != "" {
		r, err := scorer.LoadRegistry(opts.RegistryPath)
		if err != nil {
			return nil, err
		}
		reg = r
	}

	var enricher *enrich.Enricher
	if opts.Enrich {
		enricher = enrich.New(enrich.DefaultRules())
	}

	return pipeline.New(pipeline.Options{
		Scorer:      scorer.New(reg),
		Enricher:    enricher,
		Concurrency: opts.Concurrency,
	}), nil
}

// catalogFlags names where the existing records come from. When neither
// flag is set the configured catalog is used.
type catalogFlags struct {
	JSONPath string
	DBPath   string
}

// loadExisting reads the existing-record snapshot.
func loadExisting(ctx context.Context, f catalogFlags) ([]model.ExistingRecord, error) {
	switch {
	case f.JSONPath != "" && f.DBPath != "":
		return nil, eris.New("catalog: use only one of --existing-json and --existing-db")
	case f.JSONPath != "":
		return catalog.LoadJSON(f.JSONPath)
	case f.DBPath != "":
		return loadSQLite(ctx, f.DBPath)
	}

	if cfg == nil {
		return nil, eris.New("catalog: --existing-json or --existing-db is required")
	}
	if err := cfg.Validate("match"); err != nil {
		return nil, err
	}
	if cfg.Catalog.Driver == "json" {
		return catalog.LoadJSON(cfg.Catalog.Path)
	}
	return loadSQLite(ctx, cfg.Catalog.Path)
}

func loadSQLite(ctx context.Context, path string) ([]model.ExistingRecord, error) {
	st, err := catalog.OpenExisting(ctx, path)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck
	return st.Records(ctx)
}

// readProfiles loads a JSON array of profiles written by an earlier run.
func readProfiles(path string) ([]model.ParsedProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read profiles %s", path)
	}
	var profiles []model.ParsedProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, eris.Wrapf(err, "decode profiles %s", path)
	}
	if profiles == nil {
		profiles = []model.ParsedProfile{}
	}
	return profiles, nil
}

// writeJSON writes v as indented JSON to path, or to out when path is empty.
func writeJSON(out io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode output")
	}
	data = append(data, '\n')

	if path == "" {
		_, err := out.Write(data)
		return eris.Wrap(err, "write output")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write output %s", path)
	}
	zap.L().Info("wrote output", zap.String("path", path))
	return nil
}
