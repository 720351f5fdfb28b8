package utils

import (
	"fmt"
	"time"
)

var ManilaTZ = time.FixedZone("UTC+8", 8*60*60)

// DayRolloverHour is the local hour at which a new DTR day begins. Clock
// events before 06:00 belong to the previous day's record so overnight
// extended overtime stays on the shift that started it.
const DayRolloverHour = 6

func ManilaNow() time.Time {
	return time.Now().In(ManilaTZ)
}

// DTRDate returns the DTR day (YYYY-MM-DD) a clock event belongs to.
func DTRDate(t time.Time) string {
	local := t.In(ManilaTZ)
	if local.Hour() < DayRolloverHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format("2006-01-02")
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	return t
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, time.UTC); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
