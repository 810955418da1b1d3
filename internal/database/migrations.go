package database

import (
	"context"
	"database/sql"
)

// "order" is reserved in SQL, so the order columns are named position
var schema = []string{
	`CREATE TABLE IF NOT EXISTS columns (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_columns_owner
		ON columns(owner_id, position)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		column_id TEXT NOT NULL,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		due_time TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'Medium'
			CHECK (priority IN ('High', 'Medium', 'Low', 'Completed')),
		is_completed INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL,
		subtasks TEXT NOT NULL DEFAULT '[]',
		tags TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (column_id) REFERENCES columns(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner_column
		ON tasks(owner_id, column_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner_date_priority
		ON tasks(owner_id, date, priority)`,
}

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

// Migrate applies the schema to an already opened database.
func Migrate(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db)
}
