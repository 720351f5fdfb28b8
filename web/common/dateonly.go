package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateOnly round-trips a yyyy-MM-dd JSON string, the format DTR day
// parameters use everywhere.
type DateOnly struct {
	time.Time
}

const dateLayout = "2006-01-02" // yyyy-MM-dd

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	// b is a quoted string like `"2025-10-29"`
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		// handle empty date gracefully
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format: %v", err)
	}

	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateLayout))
}

// DateString returns the yyyy-MM-dd form, or "" for a zero value.
func (d DateOnly) DateString() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
