package dtr

import "github.com/jayelcee/internhq/model"

// Policy carries the per-day thresholds the allocator runs against.
type Policy struct {
	DailyRequiredHours       float64
	MaxStandardOvertimeHours float64
}

// DaySummary is one DTR day assembled for display: sessions in order with
// their allocations and pending edits overlaid, plus running totals from
// the persisted times.
type DaySummary struct {
	Date     string
	Sessions []DisplaySession

	RegularHours          float64
	OvertimeHours         float64
	ExtendedOvertimeHours float64
}

// SessionAllocations runs the allocator across a day's sessions in order,
// threading the cumulative regular hours between calls.
func SessionAllocations(sessions []Session, policy Policy) []Allocation {
	allocs := make([]Allocation, len(sessions))
	cumulative := 0.0
	for i := range sessions {
		allocs[i] = Allocate(&sessions[i], cumulative, policy.DailyRequiredHours, policy.MaxStandardOvertimeHours)
		cumulative += allocs[i].RegularHours
	}
	return allocs
}

// BuildDay reconstructs one DTR day from raw logs: sessions, allocations
// with cumulative threading, then the pending-edit overlay. Allocations
// always come from the persisted times; the overlay only moves what the
// reader sees.
func BuildDay(date string, logs []model.TimeLog, pending []model.EditRequest, policy Policy) DaySummary {
	day := DaySummary{Date: date}

	sessions := BuildSessions(logs)
	allocs := SessionAllocations(sessions, policy)

	var regular, overtime, extended int64
	for i, session := range sessions {
		ds := Overlay(session, pending)
		ds.Allocation = allocs[i]
		day.Sessions = append(day.Sessions, ds)

		regular += toCenti(allocs[i].RegularHours)
		overtime += toCenti(allocs[i].OvertimeHours)
		extended += toCenti(allocs[i].ExtendedOvertimeHours)
	}

	day.RegularHours = fromCenti(regular)
	day.OvertimeHours = fromCenti(overtime)
	day.ExtendedOvertimeHours = fromCenti(extended)

	return day
}
