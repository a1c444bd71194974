package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltrucks/traveltrucks/internal/config"
)

func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("TRAVELTRUCKS_DOTENV_PATH", filepath.Join(dir, "missing.env"))
	t.Setenv("TRAVELTRUCKS_CONFIG_PATH", "")

	configPath, debugFlag, quietFlag = "", false, false
	t.Cleanup(func() { configPath, debugFlag, quietFlag = "", false, false })
	return dir
}

func TestSetupLoadsConfigFile(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = 6\nfavorites_backend = \"toml\"\n"), 0o644))

	configPath = path
	require.NoError(t, Setup())

	assert.Equal(t, 6, config.GetInt("page_size", 0))
	assert.Equal(t, "toml", config.Get("favorites_backend", ""))
}

func TestSetupFlagsOverrideConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("TRAVELTRUCKS_DEBUG", "false")

	debugFlag = true
	quietFlag = true
	require.NoError(t, Setup())

	assert.True(t, config.GetBool("debug", false))
	assert.True(t, config.GetBool("quiet", false))
}

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "traveltrucks", RootCmd.Name())
	assert.NotEmpty(t, RootCmd.Version)
	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("quiet"))
}
