package common

import (
	"encoding/json"
	"time"
)

// LocalDateTime round-trips an offset-less timestamp string. Edit-request
// forms submit clock times in the intern's local zone without an offset.
type LocalDateTime struct {
	time.Time
}

const dateTimeLayout = "2006-01-02T15:04:05"

func (l *LocalDateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		l.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return err
	}
	l.Time = t
	return nil
}

func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	if l.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(l.Format(dateTimeLayout))
}

// TimePtr returns the wrapped time, or nil for a zero value.
func (l LocalDateTime) TimePtr() *time.Time {
	if l.Time.IsZero() {
		return nil
	}
	t := l.Time
	return &t
}
