// internal/recommend/filter.go
// Candidate normalization: stale, disliked and malformed records are
// dropped before anything gets scored. Missing data is exclusion, not
// an error.

package recommend

import (
	"strings"
	"time"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

type TimeWindow int

const (
	WindowNone TimeWindow = iota
	WindowToday
	WindowTomorrow
	WindowWeekend
	WindowThisWeek
)

// ParseTimeWindow maps the user-facing time tags (Turkish and English)
// to a window. Unknown tags mean no windowing.
func ParseTimeWindow(s string) TimeWindow {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bugün", "bugun", "today":
		return WindowToday
	case "yarın", "yarin", "tomorrow":
		return WindowTomorrow
	case "haftasonu", "weekend":
		return WindowWeekend
	case "bu hafta", "this week":
		return WindowThisWeek
	default:
		return WindowNone
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// filterCandidates removes candidates whose start date is unparsable
// or strictly before today, and candidates the user has disliked.
// Duplicate identifiers keep their first occurrence.
func filterCandidates(events []catalog.Event, disliked map[string]bool, today time.Time) []catalog.Event {
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	seen := make(map[string]bool, len(events))
	out := make([]catalog.Event, 0, len(events))
	for _, e := range events {
		if e.ID == "" || seen[e.ID] || disliked[e.ID] {
			continue
		}
		start, err := e.StartTime()
		if err != nil {
			continue
		}
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(todayDay) {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

// applyWindow keeps candidates inside the requested temporal window.
// The filter itself is strict; whether an empty result is acceptable
// is the caller's policy.
func applyWindow(events []catalog.Event, window TimeWindow, today time.Time) []catalog.Event {
	if window == WindowNone {
		return events
	}

	out := make([]catalog.Event, 0, len(events))
	for _, e := range events {
		start, err := e.StartTime()
		if err != nil {
			continue
		}
		if inWindow(start, window, today) {
			out = append(out, e)
		}
	}
	return out
}

func inWindow(start time.Time, window TimeWindow, today time.Time) bool {
	switch window {
	case WindowToday:
		return sameDay(start, today)
	case WindowTomorrow:
		return sameDay(start, today.AddDate(0, 0, 1))
	case WindowWeekend:
		return start.Weekday() == time.Saturday || start.Weekday() == time.Sunday
	case WindowThisWeek:
		limit := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7)
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		return !day.After(limit)
	default:
		return true
	}
}
