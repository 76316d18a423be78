// Package testutil gives repository integration tests a throwaway schema in
// the Postgres named by the POSTGRES_* variables.
package testutil

import (
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap/zaptest"

	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/database"
)

// TestDatabase is a migrated schema dropped when the test ends
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
}

// defaults match the postgres image used in local development
var defaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

func getenv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaults[key]
}

// SetupTestDatabase creates a uniquely named schema, connects with its
// search_path and runs the migrations in it
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	t.Cleanup(func() { admin.Close() })

	schema := "results_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec("CREATE SCHEMA " + pq.QuoteIdentifier(schema)); err != nil {
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec("DROP SCHEMA IF EXISTS " + pq.QuoteIdentifier(schema) + " CASCADE"); err != nil {
			t.Logf("Warning: failed to drop schema %s: %v", schema, err)
		}
	})

	scoped := *cfg
	scoped.SearchPath = schema
	db, err := database.Connect(&scoped)
	if err != nil {
		t.Fatalf("Failed to connect to schema %s: %v", schema, err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &TestDatabase{DB: db, SchemaName: schema}
}
