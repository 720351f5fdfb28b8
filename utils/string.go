package utils

import "time"

// FormatTime renders a time pointer with the given layout, "" for nil.
func FormatTime(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
