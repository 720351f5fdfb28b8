package dtr

import "math"

// Allocation splits a session's worked hours into pay buckets.
type Allocation struct {
	RegularHours          float64 `json:"regularHours"`
	OvertimeHours         float64 `json:"overtimeHours"`
	ExtendedOvertimeHours float64 `json:"extendedOvertimeHours"`
}

func (a Allocation) Total() float64 {
	return fromCenti(toCenti(a.RegularHours) + toCenti(a.OvertimeHours) + toCenti(a.ExtendedOvertimeHours))
}

// Allocate splits the session's duration against the day's remaining
// regular budget. cumulativeRegular is the regular time already counted
// from earlier sessions the same day; the caller threads it forward between
// calls, the allocator itself is stateless. Time beyond the daily budget is
// overtime up to maxStandardOT, and anything past that cap is extended
// overtime. An active session with no resolvable end allocates nothing.
func Allocate(session *Session, cumulativeRegular, dailyRequired, maxStandardOT float64) Allocation {
	return AllocateHours(session.Duration(nil), cumulativeRegular, dailyRequired, maxStandardOT)
}

// AllocateHours is the arithmetic behind Allocate, exposed for callers that
// value an active session against the current time first.
func AllocateHours(sessionHours, cumulativeRegular, dailyRequired, maxStandardOT float64) Allocation {
	total := toCenti(TruncateHours(sessionHours))
	if total <= 0 {
		return Allocation{}
	}

	budget := toCenti(dailyRequired) - toCenti(cumulativeRegular)
	if budget < 0 {
		budget = 0
	}

	regular := total
	if regular > budget {
		regular = budget
	}
	rest := total - regular

	overtime := rest
	if cap := toCenti(maxStandardOT); overtime > cap {
		overtime = cap
	}
	extended := rest - overtime

	return Allocation{
		RegularHours:          fromCenti(regular),
		OvertimeHours:         fromCenti(overtime),
		ExtendedOvertimeHours: fromCenti(extended),
	}
}

// Bucket sums run on hundredths of an hour so the three buckets always
// reconstruct the truncated total exactly.
func toCenti(h float64) int64 {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return int64(math.Round(h * 100))
}

func fromCenti(c int64) float64 {
	return float64(c) / 100
}
