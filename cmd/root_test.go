package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray config.yaml
// is picked up, and restores cfg afterwards.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	oldCfg := cfg
	t.Cleanup(func() {
		_ = os.Chdir(orig)
		cfg = oldCfg
	})
	return dir
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"report", "score", "industries", "profile", "narrative", "serve", "mcp"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "grc", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
	}{
		{"report", map[string]string{"profile": "", "format": "markdown", "output": "", "no-ai": "false"}},
		{"score", map[string]string{"profile": "", "format": "table", "output": ""}},
		{"serve", map[string]string{"port": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.name})
			require.NoError(t, err)
			for flag, def := range tt.flags {
				f := cmd.Flags().Lookup(flag)
				require.NotNil(t, f, "%s should have --%s", tt.name, flag)
				assert.Equal(t, def, f.DefValue, "--%s default", flag)
			}
		})
	}
}

func TestProfileAndNarrativeSubcommands(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"profile", "template"})
	require.NoError(t, err)
	assert.Equal(t, "template", cmd.Name())
	assert.Equal(t, "yaml", cmd.Flags().Lookup("format").DefValue)

	cmd, _, err = rootCmd.Find([]string{"profile", "validate"})
	require.NoError(t, err)
	assert.Equal(t, "validate", cmd.Name())

	cmd, _, err = rootCmd.Find([]string{"narrative", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", cmd.Name())
}

func TestRootCmd_PersistentPreRunE_WithConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	content := `
log:
  level: warn
  format: console
narrative:
  provider: ollama
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg = nil
	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	require.NotNil(t, cfg)
	assert.Equal(t, "ollama", cfg.Narrative.Provider)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestRootCmd_PersistentPreRunE_NoConfigFile(t *testing.T) {
	chdirTemp(t)

	cfg = nil
	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	require.NotNil(t, cfg)
	assert.Equal(t, "anthropic", cfg.Narrative.Provider)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestRootCmd_PersistentPreRunE_BadLogLevel(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: loud\n"), 0o644))

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init logger")
}
