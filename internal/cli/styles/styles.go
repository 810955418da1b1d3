package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/4wadia/focusflow/internal/config/colors"
	"github.com/4wadia/focusflow/internal/models"
)

var (
	// Column styles
	ColumnStyle lipgloss.Style
	ColumnWidth = 32

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	ValueStyle    lipgloss.Style

	// Status styles
	CompletedStyle lipgloss.Style
	ErrorStyle     lipgloss.Style

	priorityColors map[models.Priority]string
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(scheme colors.ColorScheme) {
	scheme.ApplyDefaults()

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Subtle))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Normal))

	CompletedStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(lipgloss.Color(scheme.Completed))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.ErrorFg))

	priorityColors = map[models.Priority]string{
		models.PriorityHigh:      scheme.High,
		models.PriorityMedium:    scheme.Medium,
		models.PriorityLow:       scheme.Low,
		models.PriorityCompleted: scheme.Completed,
	}
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderPriority renders a priority badge such as "[High]"
func RenderPriority(p models.Priority) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(priorityColors[p])).
		Render("[" + string(p) + "]")
}

// RenderTask renders a task as a title line followed by its schedule and tags
// Format: "● Title" / "  2:00 PM · 1h 30m  #tag"
func RenderTask(t *models.Task) string {
	bullet := ColoredText("●", priorityColors[t.Priority])
	title := ValueStyle.Render(t.Title)
	if t.IsCompleted {
		title = CompletedStyle.Render(t.Title)
	}

	var meta []string
	if t.DueTime != "" {
		meta = append(meta, t.DueTime)
	}
	if t.Duration != "" {
		meta = append(meta, t.Duration)
	}
	details := strings.Join(meta, " · ")
	for _, tag := range t.Tags {
		details += " #" + tag
	}

	line := bullet + " " + title
	if details = strings.TrimSpace(details); details != "" {
		line += "\n  " + SubtitleStyle.Render(details)
	}
	return line
}

// RenderColumn renders a bordered column with its tasks in order
func RenderColumn(c *models.ColumnWithTasks) string {
	lines := []string{
		TitleStyle.Render(c.Title) + " " + SubtitleStyle.Render(fmt.Sprintf("(%d)", len(c.Tasks))),
	}
	if len(c.Tasks) == 0 {
		lines = append(lines, SubtitleStyle.Render("no tasks"))
	}
	for _, t := range c.Tasks {
		lines = append(lines, RenderTask(t))
	}
	return ColumnStyle.Render(strings.Join(lines, "\n"))
}

// RenderBoard lays the columns out side by side
func RenderBoard(board []*models.ColumnWithTasks) string {
	if len(board) == 0 {
		return SubtitleStyle.Render("No columns yet. Create one with 'focusflow column create'.")
	}
	rendered := make([]string, len(board))
	for i, c := range board {
		rendered[i] = RenderColumn(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
