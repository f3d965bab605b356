package fetcher

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSpan converts a human-readable span like "1 month", "2 weeks" or
// "30 min" into a duration. Months count as 30 days and years as 365.
func ParseSpan(span string) (time.Duration, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(span)))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid time span %q, expected e.g. \"1 month\"", span)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid time span count %q", fields[0])
	}
	unit := fields[1]
	switch {
	case strings.HasPrefix(unit, "year"):
		return time.Duration(n) * 365 * 24 * time.Hour, nil
	case strings.HasPrefix(unit, "month"):
		return time.Duration(n) * 30 * 24 * time.Hour, nil
	case strings.HasPrefix(unit, "week"):
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case strings.HasPrefix(unit, "day"):
		return time.Duration(n) * 24 * time.Hour, nil
	case strings.HasPrefix(unit, "hour"):
		return time.Duration(n) * time.Hour, nil
	case strings.HasPrefix(unit, "min"):
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("unknown time unit %q", unit)
	}
}
