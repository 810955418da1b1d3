// Package timeslot converts the human-facing clock-time and duration strings
// stored on tasks into minute offsets that can be compared and overlapped.
package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// MaxTokenMinutes bounds a single duration token. Larger tokens are
// malformed and contribute 0.
const MaxTokenMinutes = 7 * MinutesPerDay

var (
	hoursToken   = regexp.MustCompile(`(\d+)h`)
	minutesToken = regexp.MustCompile(`(\d+)m`)
)

// ParseClockTime converts a 12-hour clock string such as "2:30 PM" into
// minutes since midnight. Missing or malformed input yields 0 (midnight):
// the due time is optional and an unparseable value is treated as unset.
func ParseClockTime(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	clock, period, ok := strings.Cut(s, " ")
	if !ok || (period != "AM" && period != "PM") {
		return 0
	}

	hourStr, minuteStr, ok := strings.Cut(clock, ":")
	if !ok || len(minuteStr) != 2 {
		return 0
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return 0
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0
	}

	// 12 AM is midnight, 12 PM is noon
	if hour == 12 {
		hour = 0
	}
	if period == "PM" {
		hour += 12
	}

	return hour*60 + minute
}

// FormatClockTime renders minutes since midnight as a 12-hour clock string.
// Values outside a single day wrap around.
func FormatClockTime(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}

	hour, minute := minutes/60, minutes%60
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, period)
}

// ParseDuration converts strings like "1h 30m", "45m" or "2h" into minutes.
// Each token is optional and may appear in either order; absent input is 0.
func ParseDuration(s string) int {
	if s == "" {
		return 0
	}

	total := 0
	if m := hoursToken.FindStringSubmatch(s); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil && h <= MaxTokenMinutes/60 {
			total += h * 60
		}
	}
	if m := minutesToken.FindStringSubmatch(s); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil && mins <= MaxTokenMinutes {
			total += mins
		}
	}

	return total
}

// FormatDuration renders minutes in the canonical "<H>h <M>m" form, omitting
// zero parts. It never returns an empty string: zero renders as "0m".
func FormatDuration(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	hours, minutes := totalMinutes/60, totalMinutes%60
	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return "0m"
	}

	return strings.Join(parts, " ")
}

// IntervalsOverlap reports whether [startA, startA+durA) and
// [startB, startB+durB) overlap. The comparison is strict, so intervals that
// merely touch do not overlap, and neither do two zero-length intervals at
// the same instant.
func IntervalsOverlap(startA, durA, startB, durB int) bool {
	return startA < startB+durB && startB < startA+durA
}
