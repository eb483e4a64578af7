package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "audience-cli",
	Short: "Audience document parser and focus group reconciler",
	Long: `audience-cli parses markdown audience research documents into focus
group profiles and reconciles them against a catalog of existing groups.

Commands:
  parse-audience-doc  split a document into groups and extract scored profiles
  enrich              add inferred buying signals to profiles read as JSON
  fuzzy-match         match one parsed name and nickname against the catalog
  reconcile           parse, match and stage every group for review
  score               recompute completeness for profiles read as JSON
  catalog             import, list and inspect the SQLite catalog
  serve               expose parse, match and score over HTTP

Settings are read from config.yaml in the working directory and may be
overridden by AUDIENCE_ environment variables (AUDIENCE_LOG_LEVEL, for
example). Results are written to stdout as JSON (parse can also write xlsx to
--output). Logs go to stderr.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
