package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// envMap returns a getenv func backed by a fixed map
func envMap(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(envMap(nil))

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.GitHubPAT)
	assert.False(t, cfg.IsCI)
	assert.False(t, cfg.Debug)
	require.NoError(t, cfg.Validate(zaptest.NewLogger(t)))
}

func TestLoad_FromEnvironment(t *testing.T) {
	tests := []struct {
		name   string
		vars   map[string]string
		wantCI bool
	}{
		{
			name:   "local run",
			vars:   map[string]string{"BASE_URL": "http://localhost:8080", "GH_PAT": "token"},
			wantCI: false,
		},
		{
			name:   "CI flag",
			vars:   map[string]string{"BASE_URL": "http://localhost:8080", "CI": "true"},
			wantCI: true,
		},
		{
			name:   "GitHub Actions flag",
			vars:   map[string]string{"BASE_URL": "http://localhost:8080", "GITHUB_ACTIONS": "true"},
			wantCI: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load(envMap(tt.vars))
			assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
			assert.Equal(t, tt.vars["GH_PAT"], cfg.GitHubPAT)
			assert.Equal(t, tt.wantCI, cfg.IsCI)
		})
	}
}

func TestValidate_EmptyBaseURLIsFatal(t *testing.T) {
	cfg := Load(envMap(nil))
	cfg.BaseURL = ""

	err := cfg.Validate(zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBaseURL))
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"www.saucedemo.com", "ftp://example.com", "http://"} {
		t.Run(raw, func(t *testing.T) {
			cfg := Load(envMap(map[string]string{"BASE_URL": raw}))
			err := cfg.Validate(zaptest.NewLogger(t))
			assert.ErrorIs(t, err, ErrInvalidBaseURL)
		})
	}
}

func TestValidate_TokenWarnings(t *testing.T) {
	tests := []struct {
		name         string
		vars         map[string]string
		wantWarnings int
		wantSnippet  string
	}{
		{
			name:         "missing token in CI",
			vars:         map[string]string{"CI": "1"},
			wantWarnings: 2,
			wantSnippet:  "in CI environment",
		},
		{
			name:         "missing token locally",
			vars:         map[string]string{},
			wantWarnings: 1,
			wantSnippet:  "for local development",
		},
		{
			name:         "token configured",
			vars:         map[string]string{"GH_PAT": "ghp_example"},
			wantWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			cfg := Load(envMap(tt.vars))

			require.NoError(t, cfg.Validate(zap.New(core)))

			assert.Equal(t, tt.wantWarnings, logs.Len())
			if tt.wantSnippet != "" {
				assert.Equal(t, 1, logs.FilterMessageSnippet(tt.wantSnippet).Len())
			}
		})
	}
}

func TestValidate_DebugDumpMasksToken(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := Load(envMap(map[string]string{"DEBUG_CONFIG": "1", "GH_PAT": "ghp_secret"}))

	require.NoError(t, cfg.Validate(zap.New(core)))

	dumps := logs.FilterMessage("Configuration Debug").All()
	require.Len(t, dumps, 1)
	fields := dumps[0].ContextMap()
	assert.Equal(t, DefaultBaseURL, fields["BASE_URL"])
	assert.Equal(t, "configured", fields["GH_PAT"])
	assert.Equal(t, "not set", fields["CI"])
}

func TestLoadDotEnv_EnvironmentTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "SWAGLABS_TEST_FROM_FILE=file-value\nSWAGLABS_TEST_PRECEDENCE=file-value\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SWAGLABS_TEST_PRECEDENCE", "env-value")
	t.Cleanup(func() { os.Unsetenv("SWAGLABS_TEST_FROM_FILE") })

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "file-value", os.Getenv("SWAGLABS_TEST_FROM_FILE"))
	assert.Equal(t, "env-value", os.Getenv("SWAGLABS_TEST_PRECEDENCE"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
