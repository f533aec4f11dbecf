package config

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"GITHUB_WORKSPACE",
	"GITHUB_EVENT_PATH",
	"GITHUB_TOKEN",
	"GITHUB_REPOSITORY",
	"GITHUB_RUN_ID",
	"GITHUB_API_URL",
	"DEVOPS_AGENT_LOG_LEVEL",
}

// isolateConfigEnv saves and unsets all config env vars so tests don't
// inherit values from the host environment (e.g. when run inside Actions).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("GITHUB_TOKEN", "ghs_test123")
	t.Setenv("GITHUB_REPOSITORY", "owner/repo")
	t.Setenv("GITHUB_RUN_ID", "987654321")
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)
	t.Setenv("GITHUB_WORKSPACE", "/home/runner/work/repo")
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3")
	t.Setenv("DEVOPS_AGENT_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/home/runner/work/repo", cfg.Workspace)
	assert.Equal(t, "/tmp/event.json", cfg.EventPath)
	assert.Equal(t, "ghs_test123", cfg.Token)
	assert.Equal(t, "owner/repo", cfg.RepoFullName)
	assert.Equal(t, int64(987654321), cfg.RunID)
	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.APIURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.Workspace)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"GITHUB_EVENT_PATH", "GITHUB_TOKEN", "GITHUB_REPOSITORY", "GITHUB_RUN_ID"} {
		t.Run(key, func(t *testing.T) {
			isolateConfigEnv(t)
			setRequiredEnv(t)
			t.Setenv(key, "")

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingEnv))
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_InvalidRepository(t *testing.T) {
	for _, value := range []string{"no-slash", "/repo", "owner/"} {
		t.Run(value, func(t *testing.T) {
			isolateConfigEnv(t)
			setRequiredEnv(t)
			t.Setenv("GITHUB_REPOSITORY", value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "GITHUB_REPOSITORY")
		})
	}
}

func TestLoad_InvalidRunID(t *testing.T) {
	for _, value := range []string{"abc", "0", "-5"} {
		t.Run(value, func(t *testing.T) {
			isolateConfigEnv(t)
			setRequiredEnv(t)
			t.Setenv("GITHUB_RUN_ID", value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "GITHUB_RUN_ID")
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)
	t.Setenv("DEVOPS_AGENT_LOG_LEVEL", "chatty")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEVOPS_AGENT_LOG_LEVEL")
}
