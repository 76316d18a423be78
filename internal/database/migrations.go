package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Schema creates the result store tables. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS test_results (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	full_name VARCHAR(512) NOT NULL,
	status VARCHAR(20) NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_test_results_status ON test_results(status);
CREATE INDEX IF NOT EXISTS idx_test_results_full_name ON test_results(full_name);

CREATE TABLE IF NOT EXISTS test_annotations (
	result_id UUID NOT NULL REFERENCES test_results(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	type VARCHAR(20) NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY (result_id, position)
);

CREATE TABLE IF NOT EXISTS test_links (
	result_id UUID NOT NULL REFERENCES test_results(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name VARCHAR(255) NOT NULL,
	url TEXT NOT NULL,
	PRIMARY KEY (result_id, position)
);

CREATE TABLE IF NOT EXISTS test_steps (
	result_id UUID NOT NULL REFERENCES test_results(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name VARCHAR(255) NOT NULL,
	status VARCHAR(20) NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	PRIMARY KEY (result_id, position)
);
`

// RunMigrations creates the result store tables on db
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create result tables: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
