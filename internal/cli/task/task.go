package task

import (
	"fmt"
	"strings"

	"github.com/4wadia/focusflow/internal/models"
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ToggleCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// addOutputFlags adds the agent-friendly flags every task command carries
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// schedule renders "2:00 PM for 30m", or "" when the task has no due time
func schedule(t *models.Task) string {
	var parts []string
	if t.DueTime != "" {
		parts = append(parts, t.DueTime)
	}
	if t.Duration != "" {
		parts = append(parts, "for "+t.Duration)
	}
	return strings.Join(parts, " ")
}

// printTask prints the human-readable summary of a task
func printTask(t *models.Task, columnTitle string) {
	fmt.Printf("  Column: %s (position %d)\n", columnTitle, t.Order)
	fmt.Printf("  Date: %s\n", t.Date)
	fmt.Printf("  Priority: %s\n", t.Priority)
	if s := schedule(t); s != "" {
		fmt.Printf("  Scheduled: %s\n", s)
	}
	if len(t.Tags) > 0 {
		fmt.Printf("  Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	for _, st := range t.Subtasks {
		mark := " "
		if st.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %s\n", mark, st.Text)
	}
}
