package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the SQLite catalog of existing focus groups",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import existing records from a JSON snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		jsonPath, _ := cmd.Flags().GetString("existing-json")
		return importCatalog(cmd.Context(), catalogDBPath(cmd), jsonPath)
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the catalog as a JSON array",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listCatalog(cmd.Context(), cmd.OutOrStdout(), catalogDBPath(cmd))
	},
}

var catalogStagingCmd = &cobra.Command{
	Use:   "staging",
	Short: "Print staged reconciliation records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, _ := cmd.Flags().GetString("status")
		return listStaging(cmd.Context(), cmd.OutOrStdout(), catalogDBPath(cmd), status)
	},
}

func init() {
	catalogCmd.PersistentFlags().String("db", "", "SQLite catalog path (default from config)")
	catalogImportCmd.Flags().String("existing-json", "", "JSON array of existing records (required)")
	_ = catalogImportCmd.MarkFlagRequired("existing-json")
	catalogStagingCmd.Flags().String("status", "pending_review", "review status filter; empty lists all")

	catalogCmd.AddCommand(catalogImportCmd, catalogListCmd, catalogStagingCmd)
	rootCmd.AddCommand(catalogCmd)
}

func catalogDBPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		return path
	}
	if cfg != nil {
		return cfg.Catalog.Path
	}
	return ""
}

func importCatalog(ctx context.Context, dbPath, jsonPath string) error {
	records, err := catalog.LoadJSON(jsonPath)
	if err != nil {
		return err
	}

	st, err := catalog.NewSQLite(dbPath)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	n, err := st.Import(ctx, records)
	if err != nil {
		return err
	}

	zap.L().Info("catalog: import complete",
		zap.Int("records", n),
		zap.String("json", jsonPath),
		zap.String("db", dbPath),
	)
	return nil
}

func listCatalog(ctx context.Context, out io.Writer, dbPath string) error {
	st, err := catalog.OpenExisting(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	records, err := st.Records(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, "", records)
}

func listStaging(ctx context.Context, out io.Writer, dbPath, status string) error {
	st, err := catalog.OpenExisting(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	records, err := st.ListStaging(ctx, status)
	if err != nil {
		return err
	}
	return writeJSON(out, "", records)
}
