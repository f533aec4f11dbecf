// Package config loads the agent's process configuration from environment
// variables and its per-repository policy from .devops-agent.yml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrMissingEnv is returned when a required environment variable is unset or empty.
var ErrMissingEnv = errors.New("missing required environment variable")

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com/"

// Config holds the process configuration loaded from the GitHub Actions
// runner environment. It is passed explicitly into the orchestrator so the
// core never reads process globals.
type Config struct {
	Workspace    string
	EventPath    string
	Token        string
	RepoFullName string
	RunID        int64
	APIURL       string
	LogLevel     slog.Level
}

// Load reads configuration from environment variables and returns a validated Config.
// Required: GITHUB_EVENT_PATH, GITHUB_TOKEN, GITHUB_REPOSITORY (owner/name), GITHUB_RUN_ID.
// Optional variables with defaults: GITHUB_WORKSPACE (current directory),
// GITHUB_API_URL (https://api.github.com/), DEVOPS_AGENT_LOG_LEVEL (info).
func Load() (*Config, error) {
	workspace := os.Getenv("GITHUB_WORKSPACE")
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		workspace = wd
	}

	eventPath, err := required("GITHUB_EVENT_PATH")
	if err != nil {
		return nil, err
	}

	token, err := required("GITHUB_TOKEN")
	if err != nil {
		return nil, err
	}

	repoFullName, err := required("GITHUB_REPOSITORY")
	if err != nil {
		return nil, err
	}
	if owner, name, ok := strings.Cut(repoFullName, "/"); !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY has invalid value %q: expected owner/repo", repoFullName)
	}

	rawRunID, err := required("GITHUB_RUN_ID")
	if err != nil {
		return nil, err
	}
	runID, err := strconv.ParseInt(rawRunID, 10, 64)
	if err != nil || runID <= 0 {
		return nil, fmt.Errorf("GITHUB_RUN_ID has invalid value %q: expected a positive integer", rawRunID)
	}

	apiURL := DefaultAPIURL
	if v, ok := os.LookupEnv("GITHUB_API_URL"); ok && v != "" {
		apiURL = v
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("DEVOPS_AGENT_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("DEVOPS_AGENT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		Workspace:    workspace,
		EventPath:    eventPath,
		Token:        token,
		RepoFullName: repoFullName,
		RunID:        runID,
		APIURL:       apiURL,
		LogLevel:     logLevel,
	}, nil
}

func required(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return v, nil
}
