package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		App: AppConfig{
			Environment: "development",
			DataPath:    t.TempDir(),
		},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{
			Name:         "Inkwell Server",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			CORSOrigins:  []string{"*"},
		},
		Auth: AuthConfig{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 720 * time.Hour,
		},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BadEnvironment(t *testing.T) {
	cfg := validConfig(t)
	cfg.App.Environment = "testing"
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig(t)
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig(t)
	cfg.App.DataPath = ""
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	// Relative paths become absolute.
	expanded, err := expandPath("some/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(expanded))

	// Empty path falls back to the default.
	expanded, err = expandPath("", "/srv/inkwell")
	require.NoError(t, err)
	assert.Equal(t, "/srv/inkwell", expanded)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t,
		[]string{"https://app.example.com", "http://localhost:3000"},
		splitOrigins("https://app.example.com, http://localhost:3000"),
	)
	assert.Equal(t, []string{"*"}, splitOrigins(" , "))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nINKWELL_TEST_KEY=hello\nINKWELL_TEST_QUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", getConfigValue("", "INKWELL_TEST_KEY", ""))
	assert.Equal(t, "world", getConfigValue("", "INKWELL_TEST_QUOTED", ""))
}
