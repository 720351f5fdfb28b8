package dtr

import (
	"sort"
	"time"

	"github.com/jayelcee/internhq/model"
)

// DisplayLog is one constituent log with any pending edit overlaid. The
// persisted record is never touched; only the display times move.
type DisplayLog struct {
	Log     model.TimeLog
	TimeIn  *time.Time
	TimeOut *time.Time
	Pending *model.EditRequest
}

// DisplaySession is a session prepared for rendering: allocation from the
// persisted times, display times from any pending edit requests.
type DisplaySession struct {
	Session    Session
	Allocation Allocation

	Logs           []DisplayLog
	TimeIn         *time.Time
	TimeOut        *time.Time
	HasPendingEdit bool
}

// Overlay substitutes pending requested times onto the session for display.
// Only requests with status pending apply; approved and rejected requests
// show the persisted record. When more than one pending request targets the
// same log the newest wins.
func Overlay(session Session, pending []model.EditRequest) DisplaySession {
	byLog := make(map[string]*model.EditRequest)
	for i := range pending {
		req := &pending[i]
		if req.Status != model.RequestPending {
			continue
		}
		if cur, ok := byLog[req.LogID]; ok && cur.CreatedAt.After(req.CreatedAt) {
			continue
		}
		byLog[req.LogID] = req
	}

	ds := DisplaySession{Session: session}
	for _, l := range session.Logs {
		dl := DisplayLog{Log: l, TimeIn: l.TimeIn, TimeOut: l.TimeOut}
		if req, ok := byLog[l.ID]; ok {
			if req.RequestedTimeIn != nil {
				dl.TimeIn = req.RequestedTimeIn
			}
			if req.RequestedTimeOut != nil {
				dl.TimeOut = req.RequestedTimeOut
			}
			dl.Pending = req
			ds.HasPendingEdit = true
		}
		ds.Logs = append(ds.Logs, dl)
	}

	for _, dl := range ds.Logs {
		if dl.TimeIn != nil && (ds.TimeIn == nil || dl.TimeIn.Before(*ds.TimeIn)) {
			ds.TimeIn = dl.TimeIn
		}
		if dl.TimeOut != nil && (ds.TimeOut == nil || dl.TimeOut.After(*ds.TimeOut)) {
			ds.TimeOut = dl.TimeOut
		}
	}
	if session.IsActive {
		ds.TimeOut = nil
	}

	return ds
}

// RequestGroup bundles the edit requests that target one continuous
// session, so an admin decision applies to the whole stretch of work at
// once.
type RequestGroup struct {
	Requests   []model.EditRequest
	RequestIDs []string
	Session    *Session

	// Orphaned is true when the underlying log no longer resolves; the
	// request still surfaces as its own group instead of disappearing.
	Orphaned bool
}

// GroupContinuousSessions groups requests whose underlying logs form one
// continuous session. Sessions never cross a user or a DTR day, so the
// resolved logs are partitioned by both before any chaining; within one
// user's day, requests fold together only when their logs actually chain
// end-to-end within ContinuityTolerance. Two disjoint stretches of work
// carry separate decisions even when both are plain regular logs. Requests
// whose log cannot be resolved degrade to orphan single-request groups;
// they are never dropped and never abort the grouping.
func GroupContinuousSessions(requests []model.EditRequest, logs []model.TimeLog) []RequestGroup {
	if len(requests) == 0 {
		return []RequestGroup{}
	}

	logByID := make(map[string]model.TimeLog, len(logs))
	for _, l := range logs {
		logByID[l.ID] = l
	}

	type bucketKey struct {
		userID uint
		date   string
	}

	buckets := make(map[bucketKey][]model.TimeLog)
	var bucketOrder []bucketKey
	reqsByLog := make(map[string][]model.EditRequest)
	var orphans []model.EditRequest

	for _, req := range requests {
		log, ok := logByID[req.LogID]
		if !ok {
			orphans = append(orphans, req)
			continue
		}
		if _, seen := reqsByLog[req.LogID]; !seen {
			key := bucketKey{userID: log.UserID, date: log.Date}
			if _, exists := buckets[key]; !exists {
				bucketOrder = append(bucketOrder, key)
			}
			buckets[key] = append(buckets[key], log)
		}
		reqsByLog[req.LogID] = append(reqsByLog[req.LogID], req)
	}

	var groups []RequestGroup
	for _, key := range bucketOrder {
		for _, run := range continuousRuns(buckets[key]) {
			g := RequestGroup{}
			if sessions := BuildSessions(run); len(sessions) > 0 {
				g.Session = &sessions[0]
			}
			for _, l := range run {
				for _, req := range reqsByLog[l.ID] {
					g.Requests = append(g.Requests, req)
					g.RequestIDs = append(g.RequestIDs, req.ID)
				}
			}
			groups = append(groups, g)
		}
	}

	for _, req := range orphans {
		groups = append(groups, RequestGroup{
			Requests:   []model.EditRequest{req},
			RequestIDs: []string{req.ID},
			Orphaned:   true,
		})
	}

	return groups
}

// continuousRuns splits one user's day of logs into stretches whose
// consecutive logs chain end-to-end. A run breaks at an open log and at any
// gap wider than ContinuityTolerance.
func continuousRuns(logs []model.TimeLog) [][]model.TimeLog {
	sorted := make([]model.TimeLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].TimeIn, sorted[j].TimeIn
		if a == nil || b == nil {
			return a != nil
		}
		if a.Equal(*b) {
			return sorted[i].ID < sorted[j].ID
		}
		return a.Before(*b)
	})

	var runs [][]model.TimeLog
	current := []model.TimeLog{sorted[0]}
	for _, next := range sorted[1:] {
		prev := current[len(current)-1]
		if !adjacent(prev, next) {
			runs = append(runs, current)
			current = []model.TimeLog{next}
			continue
		}
		current = append(current, next)
	}
	return append(runs, current)
}
