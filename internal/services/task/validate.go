package task

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/4wadia/focusflow/internal/models"
	"github.com/google/uuid"
)

const (
	maxTitleLength   = 200
	maxTagLength     = 30
	maxSubtaskLength = 200
)

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func validateDate(date string) error {
	if !models.ValidDate(date) {
		return ErrInvalidDate
	}
	return nil
}

func validatePriority(p models.Priority) error {
	if !p.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// normalizeTags trims every tag, drops blanks and suppresses duplicates
// while keeping first-seen order
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > maxTagLength {
			return nil, ErrTagTooLong
		}
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out, nil
}

// normalizeSubtasks trims subtask text and assigns IDs to new entries
func normalizeSubtasks(subtasks []models.Subtask) ([]models.Subtask, error) {
	out := make([]models.Subtask, 0, len(subtasks))
	for _, st := range subtasks {
		st.Text = strings.TrimSpace(st.Text)
		if st.Text == "" || utf8.RuneCountInString(st.Text) > maxSubtaskLength {
			return nil, ErrSubtaskTextInvalid
		}
		if st.ID == "" {
			st.ID = uuid.NewString()
		}
		out = append(out, st)
	}
	return out, nil
}

// normalize validates and canonicalises the set fields of c in place
func (c *TaskChanges) normalize() error {
	if c.Title != nil {
		title, err := normalizeTitle(*c.Title)
		if err != nil {
			return err
		}
		c.Title = &title
	}
	if c.Date != nil {
		if err := validateDate(*c.Date); err != nil {
			return err
		}
	}
	if c.DueTime != nil {
		dueTime := strings.TrimSpace(*c.DueTime)
		c.DueTime = &dueTime
	}
	if c.Duration != nil {
		duration := strings.TrimSpace(*c.Duration)
		c.Duration = &duration
	}
	if c.Priority != nil {
		if err := validatePriority(*c.Priority); err != nil {
			return err
		}
	}
	if c.Tags != nil {
		tags, err := normalizeTags(*c.Tags)
		if err != nil {
			return err
		}
		c.Tags = &tags
	}
	if c.Subtasks != nil {
		subtasks, err := normalizeSubtasks(*c.Subtasks)
		if err != nil {
			return err
		}
		c.Subtasks = &subtasks
	}
	return nil
}

// apply copies every set field onto t
func (c *TaskChanges) apply(t *models.Task) {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Date != nil {
		t.Date = *c.Date
	}
	if c.DueTime != nil {
		t.DueTime = *c.DueTime
	}
	if c.Duration != nil {
		t.Duration = *c.Duration
	}
	switch {
	case c.Priority != nil:
		t.SetPriority(*c.Priority)
	case c.Completed != nil && *c.Completed:
		t.SetPriority(models.PriorityCompleted)
	case c.Completed != nil && t.IsCompleted:
		t.SetPriority(models.PriorityMedium)
	}
	if c.Tags != nil {
		t.Tags = slices.Clone(*c.Tags)
	}
	if c.Subtasks != nil {
		t.Subtasks = slices.Clone(*c.Subtasks)
	}
}
