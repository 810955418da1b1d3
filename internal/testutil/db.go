package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/4wadia/focusflow/internal/database"
	"github.com/4wadia/focusflow/internal/models"
	"github.com/google/uuid"
)

// TestDate is the calendar day seeded tasks land on unless told otherwise
const TestDate = "2024-03-15"

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	return <-outC
}

// SetupTestDB creates an in-memory database with the real schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestColumn appends a column to the owner's board and returns its ID
func CreateTestColumn(t *testing.T, db *sql.DB, ownerID, title string) string {
	t.Helper()
	ctx := context.Background()
	q := database.New(db)

	n, err := q.CountColumns(ctx, ownerID)
	if err != nil {
		t.Fatalf("Failed to count columns: %v", err)
	}

	now := time.Now().UTC()
	column := &models.Column{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Order:     n,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.InsertColumn(ctx, column); err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	return column.ID
}

// TaskSeed describes a task inserted directly, bypassing admission
type TaskSeed struct {
	Title    string
	Date     string
	DueTime  string
	Duration string
	Priority models.Priority
}

// CreateTestTask appends a task to the end of a column and returns its ID.
// Empty seed fields fall back to TestDate and the default priority.
func CreateTestTask(t *testing.T, db *sql.DB, ownerID, columnID string, seed TaskSeed) string {
	t.Helper()
	ctx := context.Background()
	q := database.New(db)

	n, err := q.CountTasks(ctx, ownerID, columnID)
	if err != nil {
		t.Fatalf("Failed to count tasks: %v", err)
	}

	if seed.Title == "" {
		seed.Title = fmt.Sprintf("Task %d", n+1)
	}
	if seed.Date == "" {
		seed.Date = TestDate
	}
	if seed.Priority == "" {
		seed.Priority = models.DefaultPriority
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ColumnID:  columnID,
		Title:     seed.Title,
		Date:      seed.Date,
		DueTime:   seed.DueTime,
		Duration:  seed.Duration,
		Order:     n,
		CreatedAt: now,
		UpdatedAt: now,
	}
	task.SetPriority(seed.Priority)

	if err := q.InsertTask(ctx, task); err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.ID
}

// TaskOrder returns the position of a task, failing the test if it is missing
func TaskOrder(t *testing.T, db *sql.DB, ownerID, taskID string) int {
	t.Helper()
	task, err := database.New(db).GetTask(context.Background(), ownerID, taskID)
	if err != nil {
		t.Fatalf("Failed to load task %s: %v", taskID, err)
	}
	return task.Order
}
