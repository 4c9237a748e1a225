package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

const minutesPerDay = 24 * 60

// ParseTimeOfDay accepts HH:MM or HH:MM:SS and returns minutes since
// midnight. Seconds are accepted on input but always re-emitted as zero.
func ParseTimeOfDay(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidTimeOfDay
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidTimeOfDay
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	if len(parts) == 3 {
		second, err := strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return 0, ErrInvalidTimeOfDay
		}
	}

	return hour*60 + minute, nil
}

// FormatTimeOfDay renders minutes since midnight as HH:MM:SS, the canonical
// form persisted on schedule entries.
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// GenerateSpecificTimes normalizes a user-chosen list of clock times:
// duplicates collapse to one entry and the result is sorted ascending.
func GenerateSpecificTimes(times []string) ([]string, error) {
	seen := make(map[int]struct{}, len(times))
	minutes := make([]int, 0, len(times))
	for _, raw := range times {
		parsed, err := ParseTimeOfDay(raw)
		if err != nil {
			return nil, err
		}
		if _, duplicate := seen[parsed]; duplicate {
			continue
		}
		seen[parsed] = struct{}{}
		minutes = append(minutes, parsed)
	}

	sort.Ints(minutes)
	result := make([]string, 0, len(minutes))
	for _, value := range minutes {
		result = append(result, FormatTimeOfDay(value))
	}
	return result, nil
}

// GenerateIntervalTimes expands "every N hours starting at start" into the
// times that fall within the same calendar day. A non-positive interval
// degrades to a single entry at the start time; that floor is intentional,
// not an error.
func GenerateIntervalTimes(start string, intervalHours int) ([]string, error) {
	startMinutes, err := ParseTimeOfDay(start)
	if err != nil {
		return nil, err
	}

	if intervalHours <= 0 {
		return []string{FormatTimeOfDay(startMinutes)}, nil
	}

	times := make([]string, 0, minutesPerDay/(intervalHours*60)+1)
	for current := startMinutes; current < minutesPerDay; current += intervalHours * 60 {
		times = append(times, FormatTimeOfDay(current))
	}
	return times, nil
}
