//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"parse-audience-doc", "fuzzy-match", "reconcile", "enrich", "score", "catalog", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "audience-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	for _, c := range rootCmd.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		assert.Contains(t, rootCmd.Long, c.Name(), "long help should describe %q", c.Name())
	}
	assert.Contains(t, rootCmd.Long, "AUDIENCE_")
}

func TestParseCommand_Flags(t *testing.T) {
	for _, name := range []string{"output", "format", "enrich", "registry"} {
		require.NotNil(t, parseCmd.Flags().Lookup(name), "parse-audience-doc should have --%s", name)
	}
	assert.Equal(t, "json", parseCmd.Flags().Lookup("format").DefValue)
}

func TestMatchCommand_RequiredFlags(t *testing.T) {
	flag := matchCmd.Flags().Lookup("parsed-name")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])

	require.NotNil(t, matchCmd.Flags().Lookup("parsed-nickname"))
	require.NotNil(t, matchCmd.Flags().Lookup("existing-json"))
	require.NotNil(t, matchCmd.Flags().Lookup("existing-db"))
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestCatalogCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range catalogCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"import", "list", "staging"}
	for _, name := range expected {
		assert.True(t, names[name], "expected catalog subcommand %q not found", name)
	}
	assert.NotNil(t, catalogCmd.PersistentFlags().Lookup("db"))
}
