package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/common"
	"github.com/joseph-ayodele/dossier-eval/internal/export"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"evaluate", "status", "reset", "clean", "info", "export", "try"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().ShorthandLookup("o"))
	assert.NotNil(t, root.PersistentFlags().ShorthandLookup("v"))
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("LEDGER_PATH", "from-env.csv")

	cfg, err := (&globalOptions{}).loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.Files.Ledger)

	cfg, err = (&globalOptions{ledger: "from-flag.csv"}).loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.csv", cfg.Files.Ledger)
}

func TestLoadConfig_InvalidIsConfigError(t *testing.T) {
	t.Setenv("LLM_URL", "not a url")

	_, err := (&globalOptions{}).loadConfig()
	require.Error(t, err)
	assert.True(t, common.HasCode(err, common.CodeConfig))
}

func TestEvaluate_MissingDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEDGER_PATH", filepath.Join(dir, "ledger.csv"))
	t.Setenv("DIAG_LOG_PATH", filepath.Join(dir, "diag.log"))

	root := newRootCommand()
	root.SetArgs([]string{"evaluate", filepath.Join(dir, "missing")})
	err := root.Execute()
	require.Error(t, err)
	assert.True(t, common.HasCode(err, common.CodeInputDir))
}

func TestEvaluate_EmptyDirectoryIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEDGER_PATH", filepath.Join(dir, "ledger.csv"))
	t.Setenv("DIAG_LOG_PATH", filepath.Join(dir, "diag.log"))

	root := newRootCommand()
	root.SetArgs([]string{"evaluate", dir})
	require.NoError(t, root.Execute())

	_, err := os.Stat(filepath.Join(dir, "ledger.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "diag.log")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))

	removed, err := removeFiles(present, filepath.Join(dir, constants.LegacyCheckpointFile))
	require.NoError(t, err)
	assert.Equal(t, []string{present}, removed)
	assert.NoFileExists(t, present)
}

func TestDefaultExportPath(t *testing.T) {
	assert.Equal(t, "out/ledger.xlsx", defaultExportPath("out/ledger.csv", export.FormatXLSX))
	assert.Equal(t, "out/ledger.db", defaultExportPath("out/ledger.csv", export.FormatSQLite))
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short.pdf", shorten("short.pdf", 40))
	assert.Equal(t, "abcdefg...", shorten("abcdefghijklmnop", 10))
}
