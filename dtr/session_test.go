package dtr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayelcee/internhq/model"
)

func makeLog(id string, typ model.LogType, in, out *time.Time) model.TimeLog {
	return model.TimeLog{
		ID:      id,
		UserID:  1,
		Date:    "2026-03-02",
		TimeIn:  in,
		TimeOut: out,
		LogType: typ,
	}
}

func sessionIDs(s Session) []string {
	ids := make([]string, len(s.Logs))
	for i, l := range s.Logs {
		ids[i] = l.ID
	}
	return ids
}

func TestBuildSessionsEmpty(t *testing.T) {
	sessions := BuildSessions(nil)
	assert.Empty(t, sessions)

	sessions = BuildSessions([]model.TimeLog{})
	assert.Empty(t, sessions)
}

func TestBuildSessionsSingleLog(t *testing.T) {
	logs := []model.TimeLog{
		makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(18, 0, 0, 0)),
	}

	sessions := BuildSessions(logs)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].IsContinuous)
	assert.False(t, sessions[0].IsActive)
	assert.Equal(t, model.LogTypeRegular, sessions[0].SessionType)
	assert.Equal(t, at(9, 0, 0, 0), sessions[0].TimeIn)
	assert.Equal(t, at(18, 0, 0, 0), sessions[0].TimeOut)
}

func TestBuildSessionsContinuousShift(t *testing.T) {
	// Regular 09-18, overtime 18-20, extended 20-21, all gapless: one
	// continuous session spanning the whole shift.
	logs := []model.TimeLog{
		makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(18, 0, 0, 0)),
		makeLog("b", model.LogTypeOvertime, at(18, 0, 0, 0), at(20, 0, 0, 0)),
		makeLog("c", model.LogTypeExtendedOvertime, at(20, 0, 0, 0), at(21, 0, 0, 0)),
	}

	sessions := BuildSessions(logs)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].IsContinuous)
	assert.False(t, sessions[0].IsActive)
	assert.Equal(t, []string{"a", "b", "c"}, sessionIDs(sessions[0]))
	assert.Equal(t, at(9, 0, 0, 0), sessions[0].TimeIn)
	assert.Equal(t, at(21, 0, 0, 0), sessions[0].TimeOut)
	// Regular covers 9h of the 12h span, so it dominates.
	assert.Equal(t, model.LogTypeRegular, sessions[0].SessionType)
}

func TestBuildSessionsOrderIndependent(t *testing.T) {
	a := makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(12, 0, 0, 0))
	b := makeLog("b", model.LogTypeRegular, at(13, 0, 0, 0), at(18, 0, 0, 0))
	c := makeLog("c", model.LogTypeOvertime, at(18, 0, 30, 0), at(20, 0, 0, 0))

	want := BuildSessions([]model.TimeLog{a, b, c})

	permutations := [][]model.TimeLog{
		{a, c, b},
		{b, a, c},
		{b, c, a},
		{c, a, b},
		{c, b, a},
	}
	for _, p := range permutations {
		got := BuildSessions(p)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, sessionIDs(want[i]), sessionIDs(got[i]))
			assert.Equal(t, want[i].IsContinuous, got[i].IsContinuous)
		}
	}
}

func TestBuildSessionsTolerance(t *testing.T) {
	tests := []struct {
		name         string
		logs         []model.TimeLog
		wantSessions int
		continuous   []bool
	}{
		{
			name: "Different type within tolerance chains",
			logs: []model.TimeLog{
				makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(18, 0, 0, 0)),
				makeLog("b", model.LogTypeOvertime, at(18, 0, 59, 0), at(20, 0, 0, 0)),
			},
			wantSessions: 1,
			continuous:   []bool{true},
		},
		{
			name: "Different type beyond tolerance splits",
			logs: []model.TimeLog{
				makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(18, 0, 0, 0)),
				makeLog("b", model.LogTypeOvertime, at(18, 5, 0, 0), at(20, 0, 0, 0)),
			},
			wantSessions: 2,
			continuous:   []bool{false, false},
		},
		{
			name: "Same type chains across a lunch gap but is not continuous",
			logs: []model.TimeLog{
				makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(12, 0, 0, 0)),
				makeLog("b", model.LogTypeRegular, at(13, 0, 0, 0), at(18, 0, 0, 0)),
			},
			wantSessions: 1,
			continuous:   []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := BuildSessions(tt.logs)
			require.Len(t, sessions, tt.wantSessions)
			for i, want := range tt.continuous {
				assert.Equal(t, want, sessions[i].IsContinuous)
			}
		})
	}
}

func TestBuildSessionsOpenLogTerminates(t *testing.T) {
	logs := []model.TimeLog{
		makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), nil),
		makeLog("b", model.LogTypeRegular, at(10, 0, 0, 0), at(12, 0, 0, 0)),
	}

	sessions := BuildSessions(logs)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsActive)
	assert.Nil(t, sessions[0].TimeOut)
	assert.Equal(t, []string{"a"}, sessionIDs(sessions[0]))
	assert.False(t, sessions[1].IsActive)
	assert.Equal(t, []string{"b"}, sessionIDs(sessions[1]))
}

func TestBuildSessionsSkipsLogsWithoutTimeIn(t *testing.T) {
	logs := []model.TimeLog{
		makeLog("a", model.LogTypeRegular, nil, at(18, 0, 0, 0)),
	}
	assert.Empty(t, BuildSessions(logs))
}

func TestSessionDuration(t *testing.T) {
	t.Run("Closed session spans in to out", func(t *testing.T) {
		s := BuildSessions([]model.TimeLog{
			makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(18, 0, 0, 0)),
			makeLog("b", model.LogTypeOvertime, at(18, 0, 0, 0), at(21, 0, 0, 0)),
		})[0]
		assert.Equal(t, 12.0, s.Duration(nil))
	})

	t.Run("Active session without now has no duration", func(t *testing.T) {
		s := BuildSessions([]model.TimeLog{
			makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), nil),
		})[0]
		assert.Equal(t, 0.0, s.Duration(nil))
	})

	t.Run("Active session valued against now", func(t *testing.T) {
		s := BuildSessions([]model.TimeLog{
			makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), nil),
		})[0]
		assert.Equal(t, 3.5, s.Duration(at(12, 30, 0, 0)))
	})

	t.Run("Breaks subtracted from span", func(t *testing.T) {
		l := makeLog("a", model.LogTypeRegular, at(9, 0, 0, 0), at(18, 0, 0, 0))
		l.BreakMinutes = 60
		s := BuildSessions([]model.TimeLog{l})[0]
		assert.Equal(t, 8.0, s.Duration(nil))
	})
}

func TestDominantTypeTieGoesToEarliest(t *testing.T) {
	logs := []model.TimeLog{
		makeLog("a", model.LogTypeOvertime, at(18, 0, 0, 0), at(20, 0, 0, 0)),
		makeLog("b", model.LogTypeExtendedOvertime, at(20, 0, 0, 0), at(22, 0, 0, 0)),
	}

	sessions := BuildSessions(logs)
	require.Len(t, sessions, 1)
	assert.Equal(t, model.LogTypeOvertime, sessions[0].SessionType)
}
