package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/audience-cli/internal/match"
)

var matchCmd = &cobra.Command{
	Use:   "fuzzy-match",
	Short: "Match a parsed focus group against existing records",
	Long: `Resolves a parsed name and nickname against a snapshot of existing focus
groups and prints a single match result as JSON.

The snapshot comes from --existing-json, --existing-db, or the configured
catalog when neither flag is given.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	f := matchCmd.Flags()
	f.String("parsed-name", "", "parsed focus group name (required)")
	f.String("parsed-nickname", "", "parsed focus group nickname")
	f.String("existing-json", "", "JSON array of existing records")
	f.String("existing-db", "", "SQLite catalog of existing records")
	_ = matchCmd.MarkFlagRequired("parsed-name")

	rootCmd.AddCommand(matchCmd)
}

// matchRequest is one fuzzy-match invocation.
type matchRequest struct {
	Name     string
	Nickname string
	Catalog  catalogFlags
}

func runMatch(cmd *cobra.Command, _ []string) error {
	var req matchRequest
	req.Name, _ = cmd.Flags().GetString("parsed-name")
	req.Nickname, _ = cmd.Flags().GetString("parsed-nickname")
	req.Catalog.JSONPath, _ = cmd.Flags().GetString("existing-json")
	req.Catalog.DBPath, _ = cmd.Flags().GetString("existing-db")

	return matchOne(cmd.Context(), cmd.OutOrStdout(), req)
}

func matchOne(ctx context.Context, out io.Writer, req matchRequest) error {
	existing, err := loadExisting(ctx, req.Catalog)
	if err != nil {
		return err
	}
	return writeJSON(out, "", match.Match(req.Name, req.Nickname, existing))
}
