package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBrowserConfig(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    BrowserConfig
		wantErr bool
	}{
		{
			name: "defaults",
			vars: map[string]string{},
			want: BrowserConfig{
				Browser:       BrowserChromium,
				Headless:      true,
				Timeout:       30 * time.Second,
				ScreenshotDir: "test-results/screenshots",
			},
		},
		{
			name: "headed firefox with slow motion",
			vars: map[string]string{"BROWSER": "firefox", "HEADLESS": "false", "SLOW_MO": "250", "E2E_TIMEOUT": "10s"},
			want: BrowserConfig{
				Browser:       BrowserFirefox,
				Headless:      false,
				SlowMo:        250 * time.Millisecond,
				Timeout:       10 * time.Second,
				ScreenshotDir: "test-results/screenshots",
			},
		},
		{
			name:    "unknown browser",
			vars:    map[string]string{"BROWSER": "netscape"},
			wantErr: true,
		},
		{
			name:    "bad slow motion",
			vars:    map[string]string{"SLOW_MO": "fast"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			vars:    map[string]string{"E2E_TIMEOUT": "-5s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadBrowserConfig(envMap(tt.vars))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	assert.Equal(t, "8080", LoadServerConfig(envMap(nil)).Port)

	cfg := LoadServerConfig(envMap(map[string]string{"PORT": "9090"}))
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:9090", cfg.BaseURL())
}
