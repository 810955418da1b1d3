package task

import (
	"strings"
	"testing"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/4wadia/focusflow/internal/testutil"
	testutilcli "github.com/4wadia/focusflow/internal/testutil/cli"
)

func TestMoveTaskCommand(t *testing.T) {
	db, app := testutilcli.SetupCLITest(t)
	todoID := testutilcli.CreateTestColumn(t, db, "Todo")
	doneID := testutilcli.CreateTestColumn(t, db, "Done")
	a := testutilcli.CreateTestTask(t, db, todoID, testutil.TaskSeed{Title: "A"})
	b := testutilcli.CreateTestTask(t, db, todoID, testutil.TaskSeed{Title: "B"})
	c := testutilcli.CreateTestTask(t, db, todoID, testutil.TaskSeed{Title: "C"})
	d := testutilcli.CreateTestTask(t, db, doneID, testutil.TaskSeed{Title: "D"})

	order := func(id string) int {
		return testutil.TaskOrder(t, db, testutilcli.TestOwner, id)
	}

	t.Run("within column", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", c, "--order", "0"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.Contains(output, "moved to 'Todo' at position 0") {
			t.Errorf("Unexpected output: %s", output)
		}
		if order(c) != 0 || order(a) != 1 || order(b) != 2 {
			t.Errorf("Expected C,A,B; got C=%d A=%d B=%d", order(c), order(a), order(b))
		}
	})

	t.Run("across columns defaults to the end", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", c, "--column", "done", "--json"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		result := testutilcli.ParseJSON(t, output)
		if result["from_column"] != "Todo" || result["to_column"] != "Done" {
			t.Errorf("Unexpected columns in %v", result)
		}
		if order(d) != 0 || order(c) != 1 {
			t.Errorf("Expected D,C in Done; got D=%d C=%d", order(d), order(c))
		}
		if order(a) != 0 || order(b) != 1 {
			t.Errorf("Expected Todo to close the gap; got A=%d B=%d", order(a), order(b))
		}
	})

	t.Run("negative order", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", a, "--order", "-1", "--json"})
		if cli.ExitCode(err) != cli.ExitValidation {
			t.Errorf("Expected validation exit code, got %d (%v)", cli.ExitCode(err), err)
		}
		if !strings.Contains(output, `"success":false`) {
			t.Errorf("Expected failure payload, got: %s", output)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", a, "--column", "Nope", "--json"})
		if cli.ExitCode(err) != cli.ExitNotFound {
			t.Errorf("Expected not found exit code, got %d", cli.ExitCode(err))
		}
	})
}

func TestDeleteTaskCommand(t *testing.T) {
	db, app := testutilcli.SetupCLITest(t)
	columnID := testutilcli.CreateTestColumn(t, db, "Todo")
	a := testutilcli.CreateTestTask(t, db, columnID, testutil.TaskSeed{Title: "A"})
	b := testutilcli.CreateTestTask(t, db, columnID, testutil.TaskSeed{Title: "B"})

	t.Run("declined confirmation keeps the task", func(t *testing.T) {
		cmd := DeleteCmd()
		cmd.SetIn(strings.NewReader("n\n"))
		output, err := testutilcli.ExecuteCLICommand(t, app, cmd, []string{"--id", a})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.Contains(output, "Cancelled") {
			t.Errorf("Expected cancellation, got: %s", output)
		}
		if testutil.TaskOrder(t, db, testutilcli.TestOwner, a) != 0 {
			t.Error("Expected task to remain")
		}
	})

	t.Run("force deletes and closes the gap", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", a, "--force"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.Contains(output, "Task 'A' deleted successfully") {
			t.Errorf("Unexpected output: %s", output)
		}
		if got := testutil.TaskOrder(t, db, testutilcli.TestOwner, b); got != 0 {
			t.Errorf("Expected B at 0, got %d", got)
		}
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := testutilcli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", a, "--force", "--json"})
		if cli.ExitCode(err) != cli.ExitNotFound {
			t.Errorf("Expected not found exit code, got %d", cli.ExitCode(err))
		}
	})
}
