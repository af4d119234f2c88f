package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ciprianm/pontaj/internal/clock"
)

// ParseReportDate resolves a user-supplied date argument to a calendar-day
// key relative to now.
// Supported formats:
// - "" or "today"
// - "yesterday"
// - "X days ago" (e.g., "3 days ago")
// - YYYY-MM-DD (e.g., "2024-03-01")
func ParseReportDate(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "", "today":
		return clock.DateString(now), nil
	case "yesterday":
		return clock.DateString(now.AddDate(0, 0, -1)), nil
	}

	if d, err := parseDaysAgo(input, now); err == nil {
		return d, nil
	}

	if t, err := time.Parse(clock.DateLayout, input); err == nil {
		return clock.DateString(t), nil
	}

	return "", fmt.Errorf("invalid date %q. Use: YYYY-MM-DD, today, yesterday, or X days ago", input)
}

var daysAgoRegex = regexp.MustCompile(`^(\d+)\s+days?\s+ago$`)

func parseDaysAgo(input string, now time.Time) (string, error) {
	matches := daysAgoRegex.FindStringSubmatch(input)
	if len(matches) != 2 {
		return "", fmt.Errorf("invalid relative date")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return "", fmt.Errorf("invalid number")
	}
	if amount < 1 || amount > 365 {
		return "", fmt.Errorf("days must be between 1 and 365")
	}
	return clock.DateString(now.AddDate(0, 0, -amount)), nil
}

// ParseTimeOfDay validates an HH:MM:SS argument, allowing HH:MM shorthand.
func ParseTimeOfDay(input string) (string, error) {
	input = strings.TrimSpace(input)
	if t, err := time.Parse(clock.TimeLayout, input); err == nil {
		return t.Format(clock.TimeLayout), nil
	}
	if t, err := time.Parse("15:04", input); err == nil {
		return t.Format(clock.TimeLayout), nil
	}
	return "", fmt.Errorf("invalid time %q. Use: HH:MM:SS or HH:MM", input)
}
