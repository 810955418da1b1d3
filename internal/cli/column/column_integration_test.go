package column

import (
	"context"
	"strings"
	"testing"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/4wadia/focusflow/internal/testutil"
	testutilcli "github.com/4wadia/focusflow/internal/testutil/cli"
)

func TestCreateColumnCommand(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)

	tests := []struct {
		name      string
		args      []string
		shouldErr bool
		checkFunc func(t *testing.T, output string)
	}{
		{
			name: "quiet returns the ID",
			args: []string{"--title", "Work", "--quiet"},
			checkFunc: func(t *testing.T, output string) {
				id := strings.TrimSpace(output)
				col, err := app.ColumnService.GetColumn(context.Background(), testutilcli.TestOwner, id)
				if err != nil {
					t.Fatalf("Expected column %q to exist: %v", id, err)
				}
				if col.Order != 0 {
					t.Errorf("Expected first column at 0, got %d", col.Order)
				}
			},
		},
		{
			name: "second column is appended",
			args: []string{"--title", "Home", "--json"},
			checkFunc: func(t *testing.T, output string) {
				column := testutilcli.ParseJSON(t, output)["column"].(map[string]any)
				if column["order"] != float64(1) {
					t.Errorf("Expected order 1, got %v", column["order"])
				}
			},
		},
		{
			name:      "blank title",
			args:      []string{"--title", "  ", "--json"},
			shouldErr: true,
		},
		{
			name:      "missing title",
			args:      []string{},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testutilcli.ExecuteCLICommand(t, app, CreateCmd(), tt.args)

			if tt.shouldErr && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Unexpected error: %v, output: %s", err, output)
			}

			if !tt.shouldErr && tt.checkFunc != nil {
				tt.checkFunc(t, output)
			}
		})
	}
}

func TestListColumnsCommand(t *testing.T) {
	db, app := testutilcli.SetupCLITest(t)

	output, err := testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "No columns found") {
		t.Errorf("Expected empty message, got: %s", output)
	}

	workID := testutilcli.CreateTestColumn(t, db, "Work")
	testutilcli.CreateTestColumn(t, db, "Home")
	testutilcli.CreateTestTask(t, db, workID, testutil.TaskSeed{Title: "Today"})
	testutilcli.CreateTestTask(t, db, workID, testutil.TaskSeed{Title: "Tomorrow", Date: "2024-03-16"})

	output, err = testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "1. Work") || !strings.Contains(output, "2. Home") {
		t.Errorf("Expected ordered columns, got: %s", output)
	}

	output, err = testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--tasks", "--date", testutil.TestDate, "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	columns := testutilcli.ParseJSON(t, output)["columns"].([]any)
	if len(columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(columns))
	}
	work := columns[0].(map[string]any)
	if tasks := work["tasks"].([]any); len(tasks) != 1 {
		t.Errorf("Expected 1 task on %s, got %d", testutil.TestDate, len(tasks))
	}
	home := columns[1].(map[string]any)
	if tasks := home["tasks"].([]any); len(tasks) != 0 {
		t.Errorf("Expected an empty task list, got %v", tasks)
	}

	_, err = testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--tasks", "--date", "March 15", "--json"})
	if cli.ExitCode(err) != cli.ExitValidation {
		t.Errorf("Expected validation exit code for a bad date, got %d", cli.ExitCode(err))
	}
}

func TestUpdateColumnCommand(t *testing.T) {
	db, app := testutilcli.SetupCLITest(t)
	a := testutilcli.CreateTestColumn(t, db, "A")
	b := testutilcli.CreateTestColumn(t, db, "B")
	c := testutilcli.CreateTestColumn(t, db, "C")

	output, err := testutilcli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", "c", "--order", "0", "--title", "First"})
	if err != nil {
		t.Fatalf("Unexpected error: %v, output: %s", err, output)
	}
	if !strings.Contains(output, "Column 'First' updated (position 0)") {
		t.Errorf("Unexpected output: %s", output)
	}

	columns, err := app.ColumnService.ListColumns(context.Background(), testutilcli.TestOwner)
	if err != nil {
		t.Fatalf("Failed to list columns: %v", err)
	}
	want := []string{c, a, b}
	for i, col := range columns {
		if col.ID != want[i] || col.Order != i {
			t.Errorf("Position %d: expected %s, got %s (order %d)", i, want[i], col.ID, col.Order)
		}
	}

	_, err = testutilcli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", a})
	if cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("Expected usage exit code without changes, got %d", cli.ExitCode(err))
	}

	_, err = testutilcli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", "Nope", "--title", "x", "--json"})
	if cli.ExitCode(err) != cli.ExitNotFound {
		t.Errorf("Expected not found exit code, got %d", cli.ExitCode(err))
	}
}

func TestDeleteColumnCommand(t *testing.T) {
	db, app := testutilcli.SetupCLITest(t)
	workID := testutilcli.CreateTestColumn(t, db, "Work")
	homeID := testutilcli.CreateTestColumn(t, db, "Home")
	taskID := testutilcli.CreateTestTask(t, db, workID, testutil.TaskSeed{Title: "Report"})

	cmd := DeleteCmd()
	cmd.SetIn(strings.NewReader("no\n"))
	output, err := testutilcli.ExecuteCLICommand(t, app, cmd, []string{"--id", "Work"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "Delete column 'Work' and its 1 tasks?") || !strings.Contains(output, "Cancelled") {
		t.Errorf("Expected declined confirmation, got: %s", output)
	}

	output, err = testutilcli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", workID, "--json"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if testutilcli.ParseJSON(t, output)["column_id"] != workID {
		t.Errorf("Expected deleted column ID, got: %s", output)
	}

	if _, err := app.TaskService.GetTask(context.Background(), testutilcli.TestOwner, taskID); err == nil {
		t.Error("Expected the column's tasks to be deleted")
	}
	home, err := app.ColumnService.GetColumn(context.Background(), testutilcli.TestOwner, homeID)
	if err != nil {
		t.Fatalf("Failed to load remaining column: %v", err)
	}
	if home.Order != 0 {
		t.Errorf("Expected remaining column at 0, got %d", home.Order)
	}
}
