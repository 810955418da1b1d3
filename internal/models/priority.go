package models

import "strings"

// Priority is the urgency level of a task. Completed is a display state that
// every finished task is forced into rather than a real urgency level.
type Priority string

const (
	PriorityHigh      Priority = "High"
	PriorityMedium    Priority = "Medium"
	PriorityLow       Priority = "Low"
	PriorityCompleted Priority = "Completed"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = PriorityMedium

// Priorities lists every valid priority, most urgent first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityCompleted}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityCompleted:
		return true
	}
	return false
}

// ParsePriority maps a case-insensitive name to its Priority.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", ErrUnknownPriority
}
