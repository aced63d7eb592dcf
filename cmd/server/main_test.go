package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/config"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "growthpro-server"}
	cmd.Flags().String("port", "", "")
	cmd.Flags().StringP("loglevel", "l", "", "")
	cmd.Flags().String("catalog", "", "")
	return cmd
}

func TestBindFlagsOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	v, err := config.New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Parse([]string{"--port", "7070", "-l", "debug"}))
	require.NoError(t, bindFlags(v, cmd))

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestBindFlagsUnsetKeepsEnvAndDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HEADLINE_CATALOG", "")

	v, err := config.New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Parse(nil))
	require.NoError(t, bindFlags(v, cmd))

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.HeadlineCatalog)
}
