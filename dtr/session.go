package dtr

import (
	"sort"
	"time"

	"github.com/jayelcee/internhq/model"
)

// ContinuityTolerance is the largest gap between one log's time-out and the
// next log's time-in that still counts as continuous work. Badge readers and
// the web clock differ by a few seconds around a type transition.
const ContinuityTolerance = time.Minute

// Session is a derived grouping of one user's time logs for one DTR day
// that represent a single stretch of work. It is never persisted.
type Session struct {
	Logs        []model.TimeLog
	SessionType model.LogType
	TimeIn      *time.Time
	TimeOut     *time.Time

	// IsContinuous is true when every consecutive pair of constituent
	// logs chains end-to-end within ContinuityTolerance. A single-log
	// session is never continuous.
	IsContinuous bool

	// IsActive is true when the last constituent log has no time-out.
	IsActive bool
}

// BuildSessions groups a day's raw logs into ordered sessions. Input order
// does not matter; logs are sorted by time-in first. Consecutive logs join
// the same session when they share a log type, or when the types differ but
// the gap between them is within ContinuityTolerance (a regular shift
// rolling straight into overtime). An open log ends its session and nothing
// chains after it.
func BuildSessions(logs []model.TimeLog) []Session {
	usable := make([]model.TimeLog, 0, len(logs))
	for _, l := range logs {
		if l.TimeIn == nil {
			continue
		}
		usable = append(usable, l)
	}
	if len(usable) == 0 {
		return []Session{}
	}

	sort.Slice(usable, func(i, j int) bool {
		if usable[i].TimeIn.Equal(*usable[j].TimeIn) {
			return usable[i].ID < usable[j].ID
		}
		return usable[i].TimeIn.Before(*usable[j].TimeIn)
	})

	var sessions []Session
	current := []model.TimeLog{usable[0]}

	for _, next := range usable[1:] {
		prev := current[len(current)-1]
		if prev.TimeOut == nil || !chains(prev, next) {
			sessions = append(sessions, newSession(current))
			current = []model.TimeLog{next}
			continue
		}
		current = append(current, next)
	}
	sessions = append(sessions, newSession(current))

	return sessions
}

func chains(prev, next model.TimeLog) bool {
	if next.LogType == prev.LogType {
		return true
	}
	return adjacent(prev, next)
}

func adjacent(prev, next model.TimeLog) bool {
	if prev.TimeOut == nil || next.TimeIn == nil {
		return false
	}
	gap := next.TimeIn.Sub(*prev.TimeOut)
	if gap < 0 {
		gap = -gap
	}
	return gap <= ContinuityTolerance
}

func newSession(logs []model.TimeLog) Session {
	s := Session{
		Logs:   logs,
		TimeIn: logs[0].TimeIn,
	}

	last := logs[len(logs)-1]
	if last.TimeOut == nil {
		s.IsActive = true
	} else {
		// Logs are ordered and non-overlapping, so the last out is the
		// latest out.
		s.TimeOut = last.TimeOut
	}

	s.IsContinuous = len(logs) > 1
	for i := 1; i < len(logs); i++ {
		if !adjacent(logs[i-1], logs[i]) {
			s.IsContinuous = false
			break
		}
	}

	s.SessionType = dominantType(logs)
	return s
}

// dominantType picks the constituent log type covering the most worked
// time. Ties go to the earliest log's type.
func dominantType(logs []model.TimeLog) model.LogType {
	totals := make(map[model.LogType]float64)
	order := make([]model.LogType, 0, 3)
	for _, l := range logs {
		if _, seen := totals[l.LogType]; !seen {
			order = append(order, l.LogType)
		}
		totals[l.LogType] += ComputeHours(l.TimeIn, l.TimeOut, l.BreakMinutes)
	}

	best := order[0]
	for _, t := range order[1:] {
		if totals[t] > totals[best] {
			best = t
		}
	}
	return best
}

// Duration returns the session's worked hours: the span from the earliest
// time-in to the latest time-out minus all constituent breaks. An active
// session is valued up to now when now is non-nil, otherwise it has no
// resolvable duration and contributes 0.
func (s *Session) Duration(now *time.Time) float64 {
	end := s.TimeOut
	if end == nil {
		end = now
	}
	breaks := 0
	for _, l := range s.Logs {
		breaks += l.BreakMinutes
	}
	return ComputeHours(s.TimeIn, end, breaks)
}
