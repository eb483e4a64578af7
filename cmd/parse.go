package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/export"
	"github.com/sells-group/audience-cli/internal/model"
)

var parseCmd = &cobra.Command{
	Use:   "parse-audience-doc <input-path> [input-path...]",
	Short: "Parse audience documents into focus group profiles",
	Long: `Splits each document into focus group blocks, extracts a profile per block,
and scores its completeness. Profiles are written as a JSON array in document
order, to stdout unless --output is given.

Examples:
  # Parse one document to stdout
  parse-audience-doc audience.md

  # Parse two documents with enrichment into a workbook
  parse-audience-doc a.md b.md --enrich --format xlsx --output profiles.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	f := parseCmd.Flags()
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "json", "output format: json or xlsx")
	f.Bool("enrich", false, "infer awareness, sophistication and purchase behavior before scoring")
	f.String("registry", "", "YAML field registry for completeness scoring (overrides config)")

	rootCmd.AddCommand(parseCmd)
}

// parseRequest is one parse-audience-doc invocation.
type parseRequest struct {
	Paths  []string
	Output string
	Format string
	Parser parserOptions
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("parse"); err != nil {
		return err
	}

	req := parseRequest{Paths: args, Parser: parserOptionsFromConfig()}
	req.Output, _ = cmd.Flags().GetString("output")
	req.Format, _ = cmd.Flags().GetString("format")
	if cmd.Flags().Changed("enrich") {
		req.Parser.Enrich, _ = cmd.Flags().GetBool("enrich")
	}
	if registry, _ := cmd.Flags().GetString("registry"); registry != "" {
		req.Parser.RegistryPath = registry
	}

	return parseDocuments(ctx, cmd.OutOrStdout(), req)
}

func parseDocuments(ctx context.Context, out io.Writer, req parseRequest) error {
	if req.Format != "json" && req.Format != "xlsx" {
		return eris.Errorf("parse: --format must be json or xlsx (got %q)", req.Format)
	}
	if req.Format == "xlsx" && req.Output == "" {
		return eris.New("parse: --format xlsx requires --output")
	}

	parser, err := newParser(req.Parser)
	if err != nil {
		return err
	}

	var profiles []model.ParsedProfile
	if len(req.Paths) == 1 {
		profiles, err = parser.ParseFile(req.Paths[0])
	} else {
		profiles, err = parser.ParseFiles(ctx, req.Paths)
	}
	if err != nil {
		return err
	}

	zap.L().Debug("parse: complete",
		zap.Int("documents", len(req.Paths)),
		zap.Int("profiles", len(profiles)),
	)

	if req.Format == "xlsx" {
		return export.WriteProfiles(req.Output, profiles)
	}
	return writeJSON(out, req.Output, profiles)
}
