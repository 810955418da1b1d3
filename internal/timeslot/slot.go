package timeslot

import "fmt"

// Slot is a half-open [Start, Start+Duration) interval in minutes since midnight.
type Slot struct {
	Start    int
	Duration int
}

// SlotOf builds a Slot from a task's dueTime and duration strings.
func SlotOf(dueTime, duration string) Slot {
	return Slot{
		Start:    ParseClockTime(dueTime),
		Duration: ParseDuration(duration),
	}
}

// End returns the exclusive end of the slot.
func (s Slot) End() int {
	return s.Start + s.Duration
}

// Overlaps reports whether two slots overlap.
func (s Slot) Overlaps(other Slot) bool {
	return IntervalsOverlap(s.Start, s.Duration, other.Start, other.Duration)
}

func (s Slot) String() string {
	return fmt.Sprintf("%s-%s", FormatClockTime(s.Start), FormatClockTime(s.End()))
}
