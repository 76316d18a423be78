package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPostgresConfig(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr error
		errText string
	}{
		{name: "no host", vars: map[string]string{"POSTGRES_USER": "u"}, wantErr: ErrPostgresNotConfigured},
		{name: "no user", vars: map[string]string{"POSTGRES_HOSTNAME": "db", "POSTGRES_DB": "results"}, errText: "POSTGRES_USER is required"},
		{name: "no database", vars: map[string]string{"POSTGRES_HOSTNAME": "db", "POSTGRES_USER": "u"}, errText: "POSTGRES_DB is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadPostgresConfig(envMap(tt.vars))
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.EqualError(t, err, tt.errText)
			}
		})
	}
}

func TestPostgresConfig_ConnectionString(t *testing.T) {
	cfg, err := LoadPostgresConfig(envMap(map[string]string{
		"POSTGRES_HOSTNAME": "db",
		"POSTGRES_USER":     "runner",
		"POSTGRES_PASSWORD": "pw",
		"POSTGRES_DB":       "results",
	}))
	require.NoError(t, err)

	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, "host=db user=runner password=pw dbname=results sslmode=disable", cfg.ConnectionString())

	cfg.SearchPath = "results_abc"
	assert.Equal(t, "host=db user=runner password=pw dbname=results sslmode=disable search_path=results_abc", cfg.ConnectionString())
}
