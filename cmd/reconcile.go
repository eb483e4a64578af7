package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/catalog"
	"github.com/sells-group/audience-cli/internal/export"
	"github.com/sells-group/audience-cli/internal/model"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <input-path> [input-path...]",
	Short: "Parse documents and stage each profile against the catalog",
	Long: `Parses audience documents, matches every profile against the existing
catalog, and emits staging records marked pending_review.

Examples:
  # Stage against a JSON snapshot and print the records
  reconcile audience.md --existing-json existing.json

  # Stage against the SQLite catalog, persist for review, and export a workbook
  reconcile audience.md --existing-db audience.db --stage-db audience.db --format xlsx --output staging.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReconcile,
}

func init() {
	f := reconcileCmd.Flags()
	f.String("existing-json", "", "JSON array of existing records")
	f.String("existing-db", "", "SQLite catalog of existing records")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "json", "output format: json or xlsx")
	f.String("stage-db", "", "also save staging records to this SQLite database")
	f.Bool("enrich", false, "infer awareness, sophistication and purchase behavior before scoring")

	rootCmd.AddCommand(reconcileCmd)
}

// reconcileRequest is one reconcile invocation.
type reconcileRequest struct {
	Paths   []string
	Catalog catalogFlags
	Output  string
	Format  string
	StageDB string
	Parser  parserOptions
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := reconcileRequest{Paths: args, Parser: parserOptionsFromConfig()}
	req.Catalog.JSONPath, _ = cmd.Flags().GetString("existing-json")
	req.Catalog.DBPath, _ = cmd.Flags().GetString("existing-db")
	req.Output, _ = cmd.Flags().GetString("output")
	req.Format, _ = cmd.Flags().GetString("format")
	req.StageDB, _ = cmd.Flags().GetString("stage-db")
	if cmd.Flags().Changed("enrich") {
		req.Parser.Enrich, _ = cmd.Flags().GetBool("enrich")
	}

	return reconcileDocuments(ctx, cmd.OutOrStdout(), req)
}

func reconcileDocuments(ctx context.Context, out io.Writer, req reconcileRequest) error {
	if req.Format != "json" && req.Format != "xlsx" {
		return eris.Errorf("reconcile: --format must be json or xlsx (got %q)", req.Format)
	}
	if req.Format == "xlsx" && req.Output == "" {
		return eris.New("reconcile: --format xlsx requires --output")
	}

	existing, err := loadExisting(ctx, req.Catalog)
	if err != nil {
		return err
	}

	parser, err := newParser(req.Parser)
	if err != nil {
		return err
	}
	profiles, err := parser.ParseFiles(ctx, req.Paths)
	if err != nil {
		return err
	}

	records, err := parser.Reconcile(ctx, profiles, existing)
	if err != nil {
		return err
	}

	if req.StageDB != "" {
		if err := saveStaging(ctx, req.StageDB, records); err != nil {
			return err
		}
	}

	if req.Format == "xlsx" {
		return export.WriteStaging(req.Output, records)
	}
	return writeJSON(out, req.Output, records)
}

func saveStaging(ctx context.Context, path string, records []model.StagingRecord) error {
	st, err := catalog.NewSQLite(path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	if err := st.SaveStaging(ctx, records); err != nil {
		return err
	}
	zap.L().Info("reconcile: staged records",
		zap.String("db", path),
		zap.Int("records", len(records)),
	)
	return nil
}
