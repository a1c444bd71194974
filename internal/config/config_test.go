package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupConfigTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("TRAVELTRUCKS_DOTENV_PATH", filepath.Join(tmp, "missing.env"))
	reset()
	return tmp
}

func TestLoadAndGet(t *testing.T) {
	setupConfigTest(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "sqlite", Get("favorites_backend", ""))
	require.Equal(t, 4, GetInt("page_size", 0))
	require.False(t, GetBool("logging_enabled", true))
}

func TestDefaultDirsFollowXDG(t *testing.T) {
	tmp := setupConfigTest(t)
	Load()

	require.Equal(t, filepath.Join(tmp, "config", "traveltrucks"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(tmp, "state", "traveltrucks"), Get("state_dir", ""))
}

func TestSampleConfigCreated(t *testing.T) {
	tmp := setupConfigTest(t)
	Load()

	data, err := os.ReadFile(filepath.Join(tmp, "config", "traveltrucks", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "# traveltrucks configuration")
	require.Contains(t, string(data), "favorites_backend")
}

func TestConfigLoadingPrecedence(t *testing.T) {
	tmp := setupConfigTest(t)

	configFile := filepath.Join(tmp, "custom.toml")
	content := `
favorites_backend = "toml"
page_size = 8
api_max_retries = 1
logging_enabled = true
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv("TRAVELTRUCKS_CONFIG_PATH", configFile)
	t.Setenv("TRAVELTRUCKS_PAGE_SIZE", "12")

	Load()

	require.Equal(t, "12", Get("page_size", ""), "environment should override config file")
	require.Equal(t, "toml", Get("favorites_backend", ""))
	require.Equal(t, 1, GetInt("api_max_retries", 3))
	require.True(t, GetBool("logging_enabled", false))
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	tmp := setupConfigTest(t)

	dotenv := filepath.Join(tmp, ".env")
	content := "TRAVELTRUCKS_FAVORITES_BACKEND=memory\nTRAVELTRUCKS_PAGE_SIZE=6\nOTHER_KEY=ignored\n"
	require.NoError(t, os.WriteFile(dotenv, []byte(content), 0644))
	t.Setenv("TRAVELTRUCKS_DOTENV_PATH", dotenv)
	t.Setenv("TRAVELTRUCKS_PAGE_SIZE", "2")

	Load()

	require.Equal(t, "memory", Get("favorites_backend", ""))
	require.Equal(t, 2, GetInt("page_size", 0))
	require.Equal(t, "unset", Get("other_key", "unset"))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigTest(t)
	t.Setenv("TRAVELTRUCKS_FAVORITES_BACKEND", "redis")
	t.Setenv("TRAVELTRUCKS_PAGE_SIZE", "-3")
	t.Setenv("TRAVELTRUCKS_API_BASE_URL", "not a url")
	t.Setenv("TRAVELTRUCKS_DEBUG", "maybe")

	Load()

	require.Equal(t, "sqlite", Get("favorites_backend", ""))
	require.Equal(t, "4", Get("page_size", ""))
	require.Equal(t, "", Get("api_base_url", "x"))
	require.Equal(t, "false", Get("debug", ""))
}

func TestURLValidatorTrimsTrailingSlash(t *testing.T) {
	setupConfigTest(t)
	t.Setenv("TRAVELTRUCKS_API_BASE_URL", "https://api.example.com/v1/")

	Load()

	require.Equal(t, "https://api.example.com/v1", Get("api_base_url", ""))
}

func TestEnumValidatorNormalizesCase(t *testing.T) {
	v := EnumValidator("sqlite", "toml")
	got, err := v("favorites_backend", "SQLite", "memory")
	require.NoError(t, err)
	require.Equal(t, "sqlite", got)
}

func TestSetOverridesValue(t *testing.T) {
	setupConfigTest(t)
	Load()

	Set("favorites_backend", "memory")
	require.Equal(t, "memory", Get("favorites_backend", ""))
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	require.Panics(t, func() {
		RegisterValidator("page_size", PositiveIntValidator())
	})
}

func TestInvalidValuesFallBackToDefaultsExtended(t *testing.T) {
	setupConfigTest(t)
	t.Setenv("TRAVELTRUCKS_PAGE_SIZE", "zero")
	t.Setenv("TRAVELTRUCKS_API_MAX_RETRIES", "-1")
	t.Setenv("TRAVELTRUCKS_FAVORITES_BACKEND", "redis")
	t.Setenv("TRAVELTRUCKS_DEBUG", "maybe")
	t.Setenv("TRAVELTRUCKS_API_BASE_URL", "ftp://example.com")

	Load()

	require.Equal(t, "4", Get("page_size", ""))
	require.Equal(t, "3", Get("api_max_retries", ""))
	require.Equal(t, "sqlite", Get("favorites_backend", ""))
	require.Equal(t, "false", Get("debug", ""))
	require.Equal(t, "", Get("api_base_url", "x"))
}

func TestValidators(t *testing.T) {
	got, err := MinIntValidator(0)("api_max_retries", " 0 ", "3")
	require.NoError(t, err)
	require.Equal(t, "0", got)

	_, err = PositiveIntValidator()("page_size", "0", "4")
	require.Error(t, err)

	got, err = BoolValidator()("debug", "On", "false")
	require.NoError(t, err)
	require.Equal(t, "true", got)

	got, err = BoolValidator()("debug", "", "false")
	require.NoError(t, err)
	require.Equal(t, "false", got)

	_, err = URLValidator()("api_base_url", "not a url", "")
	require.ErrorIs(t, err, errNotHTTPURL)
}
