package dtr

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ComputeHours returns the elapsed hours between timeIn and timeOut minus
// breakMinutes, clamped to zero and truncated to 2 decimals. A nil or
// inverted pair yields 0 rather than an error; callers treat missing
// timestamps as zero-duration work.
func ComputeHours(timeIn, timeOut *time.Time, breakMinutes int) float64 {
	if timeIn == nil || timeOut == nil {
		return 0
	}
	if timeIn.IsZero() || timeOut.IsZero() {
		return 0
	}
	worked := timeOut.Sub(*timeIn) - time.Duration(breakMinutes)*time.Minute
	if worked <= 0 {
		return 0
	}
	return TruncateHours(worked.Hours())
}

// TruncateHours cuts h to 2 decimal places without rounding: 1.999 becomes
// 1.99, never 2.00. Timesheets have always been cut this way, so the
// truncation slices the decimal string instead of doing float math.
func TruncateHours(h float64) float64 {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s) > dot+3 {
		s = s[:dot+3]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
