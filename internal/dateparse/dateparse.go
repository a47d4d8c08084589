// Package dateparse turns relative and absolute due-date input into the
// ISO 8601 (YYYY-MM-DD) form the server expects.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDue parses a due-date string using the current time as reference.
//
// Supported forms:
//   - Exact dates: "2026-09-15"
//   - Keywords: "today", "tomorrow", "next-week"
//   - Day names: "friday", "fri" (next occurrence)
//   - Relative offsets: "+3d", "+2w"
func ParseDue(input string) (string, error) {
	return ParseDueFrom(input, time.Now())
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseDueFrom parses a due-date string relative to the given reference
// time. The variant exists for deterministic tests.
func ParseDueFrom(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return "", fmt.Errorf("empty date input")
	}

	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t.Format("2006-01-02"), nil
	}

	switch input {
	case "today":
		return iso(now), nil
	case "tomorrow", "tom":
		return iso(now.AddDate(0, 0, 1)), nil
	case "next-week":
		return iso(now.AddDate(0, 0, 7)), nil
	}

	if target, ok := weekdays[input]; ok {
		ahead := (int(target) - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7 // always the next occurrence, not today
		}
		return iso(now.AddDate(0, 0, ahead)), nil
	}

	if strings.HasPrefix(input, "+") && len(input) >= 3 {
		unit := input[len(input)-1]
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err == nil && n >= 0 {
			switch unit {
			case 'd':
				return iso(now.AddDate(0, 0, n)), nil
			case 'w':
				return iso(now.AddDate(0, 0, n*7)), nil
			default:
				return "", fmt.Errorf("unknown offset unit %q in %q (use d or w)", string(unit), input)
			}
		}
	}

	return "", fmt.Errorf("unrecognized date: %q", input)
}

func iso(t time.Time) string {
	return t.Format("2006-01-02")
}
