package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/dtr"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/reports"
	"github.com/jayelcee/internhq/store"
	"github.com/jayelcee/internhq/utils"
	"github.com/jayelcee/internhq/web/common"
	"github.com/jayelcee/internhq/web/middlewares"
)

type DTREndpoint struct {
	Handler
}

func RegisterDTR(r *gin.RouterGroup, base Handler) {
	endpoint := &DTREndpoint{Handler: base}
	r.GET("/interns/:id/dtr", endpoint.Range)
	r.GET("/interns/:id/dtr/export", endpoint.Export)
	r.GET("/dtr/today", endpoint.Today)
}

type DayDTO struct {
	Date     string       `json:"date"`
	Sessions []SessionDTO `json:"sessions"`
	Holiday  *string      `json:"holiday,omitempty"`

	RegularHours          float64 `json:"regularHours"`
	OvertimeHours         float64 `json:"overtimeHours"`
	ExtendedOvertimeHours float64 `json:"extendedOvertimeHours"`
}

type SessionDTO struct {
	Type           model.LogType  `json:"type"`
	TimeIn         *time.Time     `json:"timeIn"`
	TimeOut        *time.Time     `json:"timeOut"`
	IsContinuous   bool           `json:"isContinuous"`
	IsActive       bool           `json:"isActive"`
	HasPendingEdit bool           `json:"hasPendingEdit"`
	Allocation     dtr.Allocation `json:"allocation"`
	Logs           []LogDTO       `json:"logs"`
}

type LogDTO struct {
	ID             string               `json:"id"`
	TimeIn         *time.Time           `json:"timeIn"`
	TimeOut        *time.Time           `json:"timeOut"`
	LogType        model.LogType        `json:"logType"`
	OvertimeStatus model.OvertimeStatus `json:"overtimeStatus"`
	PendingEditID  *string              `json:"pendingEditId,omitempty"`
}

type DTRRangeDTO struct {
	Days []DayDTO `json:"days"`

	TotalRegularHours          float64 `json:"totalRegularHours"`
	TotalOvertimeHours         float64 `json:"totalOvertimeHours"`
	TotalExtendedOvertimeHours float64 `json:"totalExtendedOvertimeHours"`
}

// Range renders the DTR view between from and to inclusive: each day's
// sessions with allocations and the pending-edit overlay, plus running
// totals. Interns may only read their own record.
func (ep *DTREndpoint) Range(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	claims := middlewares.CurrentIdentity(c)
	if claims.Role != model.RoleAdmin && claims.UserID != id {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("not your record"))
		return
	}

	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("from and to are required"))
		return
	}

	st := ep.GetStore(c)
	days, holidays, err := buildDays(st, id, from, to)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	result := DTRRangeDTO{Days: []DayDTO{}}
	for _, day := range days {
		dto := dayDTO(day)
		if h, found := holidays[day.Date]; found {
			name := h.Name
			dto.Holiday = &name
		}
		result.Days = append(result.Days, dto)

		result.TotalRegularHours += day.RegularHours
		result.TotalOvertimeHours += day.OvertimeHours
		result.TotalExtendedOvertimeHours += day.ExtendedOvertimeHours
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

// buildDays fetches one user's raw material and reconstructs each DTR day
// in the range that has logs.
func buildDays(st *store.Store, userID uint, from, to string) ([]dtr.DaySummary, map[string]model.Holiday, error) {
	user, err := st.FindUserByID(userID)
	if err != nil {
		return nil, nil, err
	}
	dailyRequired, maxStandardOT := user.DailyPolicy()
	policy := dtr.Policy{DailyRequiredHours: dailyRequired, MaxStandardOvertimeHours: maxStandardOT}

	logs, err := st.TimeLogsForRange(userID, from, to)
	if err != nil {
		return nil, nil, err
	}
	pending, err := st.PendingEditRequestsForUser(userID, "")
	if err != nil {
		return nil, nil, err
	}
	holidays, err := st.HolidaySet(from, to)
	if err != nil {
		return nil, nil, err
	}

	byDate := utils.GroupBy(logs, func(l model.TimeLog) string { return l.Date })

	var dates []string
	for _, l := range logs {
		if len(dates) == 0 || dates[len(dates)-1] != l.Date {
			dates = append(dates, l.Date)
		}
	}

	days := make([]dtr.DaySummary, 0, len(dates))
	for _, date := range dates {
		days = append(days, dtr.BuildDay(date, byDate[date], pending, policy))
	}
	return days, holidays, nil
}

func dayDTO(day dtr.DaySummary) DayDTO {
	dto := DayDTO{
		Date:                  day.Date,
		Sessions:              []SessionDTO{},
		RegularHours:          day.RegularHours,
		OvertimeHours:         day.OvertimeHours,
		ExtendedOvertimeHours: day.ExtendedOvertimeHours,
	}

	for _, session := range day.Sessions {
		sdto := SessionDTO{
			Type:           session.Session.SessionType,
			TimeIn:         session.TimeIn,
			TimeOut:        session.TimeOut,
			IsContinuous:   session.Session.IsContinuous,
			IsActive:       session.Session.IsActive,
			HasPendingEdit: session.HasPendingEdit,
			Allocation:     session.Allocation,
		}
		for _, dl := range session.Logs {
			ldto := LogDTO{
				ID:             dl.Log.ID,
				TimeIn:         dl.TimeIn,
				TimeOut:        dl.TimeOut,
				LogType:        dl.Log.LogType,
				OvertimeStatus: dl.Log.OvertimeStatus,
			}
			if dl.Pending != nil {
				ldto.PendingEditID = &dl.Pending.ID
			}
			sdto.Logs = append(sdto.Logs, ldto)
		}
		dto.Sessions = append(dto.Sessions, sdto)
	}

	return dto
}

// Export streams the range as an xlsx workbook, one sheet per month.
func (ep *DTREndpoint) Export(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	claims := middlewares.CurrentIdentity(c)
	if claims.Role != model.RoleAdmin && claims.UserID != id {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("not your record"))
		return
	}

	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("from and to are required"))
		return
	}

	st := ep.GetStore(c)
	user, err := st.FindUserByID(id)
	if err != nil {
		RespondStoreError(c, err)
		return
	}
	days, holidays, err := buildDays(st, id, from, to)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	f, err := reports.BuildDTRWorkbook(user, days, holidays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("dtr-%d-%s-%s.xlsx", id, from, to)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

type TodayDTO struct {
	Date          string     `json:"date"`
	ClockedIn     bool       `json:"clockedIn"`
	ActiveSince   *time.Time `json:"activeSince,omitempty"`
	ActiveLogType model.LogType `json:"activeLogType,omitempty"`

	RegularHours          float64 `json:"regularHours"`
	OvertimeHours         float64 `json:"overtimeHours"`
	ExtendedOvertimeHours float64 `json:"extendedOvertimeHours"`
	WorkedSoFar           float64 `json:"workedSoFar"`

	HasTimedOutToday bool `json:"hasTimedOutToday"`
}

// Today reports the caller's current DTR day, recomputed from storage on
// every call. Clients treat any cached clock state as a hint and reconcile
// against this.
func (ep *DTREndpoint) Today(c *gin.Context) {
	claims := middlewares.CurrentIdentity(c)

	st := ep.GetStore(c)
	user, err := st.FindUserByID(claims.UserID)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	now := utils.ManilaNow()
	date := utils.DTRDate(now)
	logs, err := st.TimeLogsForDay(user.ID, date)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	dailyRequired, maxStandardOT := user.DailyPolicy()
	sessions := dtr.BuildSessions(logs)

	dto := TodayDTO{Date: date}
	cumulative := 0.0
	var regular, overtime, extended float64
	for i := range sessions {
		session := &sessions[i]
		hours := session.Duration(nil)
		if session.IsActive {
			// Value the running session up to now for the live totals.
			hours = session.Duration(&now)
			dto.ClockedIn = true
			dto.ActiveSince = session.TimeIn
			dto.ActiveLogType = session.SessionType
		}
		a := dtr.AllocateHours(hours, cumulative, dailyRequired, maxStandardOT)
		cumulative += a.RegularHours
		regular += a.RegularHours
		overtime += a.OvertimeHours
		extended += a.ExtendedOvertimeHours
	}

	dto.RegularHours = regular
	dto.OvertimeHours = overtime
	dto.ExtendedOvertimeHours = extended
	dto.WorkedSoFar = dtr.Allocation{
		RegularHours:          regular,
		OvertimeHours:         overtime,
		ExtendedOvertimeHours: extended,
	}.Total()
	dto.HasTimedOutToday = !dto.ClockedIn && len(logs) > 0

	c.JSON(http.StatusOK, common.NewSuccessResponse(dto))
}
