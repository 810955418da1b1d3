package cli

import (
	"database/sql"
	"testing"

	"github.com/4wadia/focusflow/internal/app"
	"github.com/4wadia/focusflow/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, app.New(db)
}

// CreateTestColumn creates a column for TestOwner and returns its ID
func CreateTestColumn(t *testing.T, db *sql.DB, title string) string {
	t.Helper()
	return testutil.CreateTestColumn(t, db, TestOwner, title)
}

// CreateTestTask creates a task for TestOwner and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, columnID string, seed testutil.TaskSeed) string {
	t.Helper()
	return testutil.CreateTestTask(t, db, TestOwner, columnID, seed)
}
