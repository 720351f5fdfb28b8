package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/dtr"
	"github.com/jayelcee/internhq/infrastructure/communication"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/store"
	"github.com/jayelcee/internhq/utils"
	"github.com/jayelcee/internhq/web/common"
	"github.com/jayelcee/internhq/web/middlewares"
)

type TimeLogEndpoint struct {
	Handler
}

func RegisterTimeLogs(r *gin.RouterGroup, admin *gin.RouterGroup, base Handler) {
	endpoint := &TimeLogEndpoint{Handler: base}
	r.POST("/timelogs/clock-in", endpoint.ClockIn)
	r.POST("/timelogs/clock-out", endpoint.ClockOut)
	r.GET("/interns/:id/timelogs", endpoint.List)

	admin.PUT("/timelogs/:id", endpoint.Update)
	admin.DELETE("/timelogs/:id", endpoint.Delete)
}

type ClockInDTO struct {
	DeviceID string `json:"deviceId"`
}

// ClockIn opens a log for the caller. The log type follows from what the
// day's record already holds: once the daily requirement is met new work
// is overtime, and past the standard cap it is extended overtime.
func (ep *TimeLogEndpoint) ClockIn(c *gin.Context) {
	claims := middlewares.CurrentIdentity(c)

	var dto ClockInDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}
	}

	st := ep.GetStore(c)
	user, err := st.FindUserByID(claims.UserID)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	now := utils.ManilaNow()
	logType, err := nextLogType(st, user, now)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	log, err := st.ClockIn(user.ID, logType, now, dto.DeviceID)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	if logType != model.LogTypeRegular {
		ep.Notify(func(s *communication.Slack) error {
			return s.OvertimeRequested(user.FullName(), log.Date, 0)
		})
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(log))
}

// nextLogType values the day's work so far against the user's policy and
// picks the bucket a fresh clock-in lands in.
func nextLogType(st *store.Store, user *model.User, now time.Time) (model.LogType, error) {
	date := utils.DTRDate(now)
	logs, err := st.TimeLogsForDay(user.ID, date)
	if err != nil {
		return "", err
	}

	dailyRequired, maxStandardOT := user.DailyPolicy()
	sessions := dtr.BuildSessions(logs)
	allocs := dtr.SessionAllocations(sessions, dtr.Policy{
		DailyRequiredHours:       dailyRequired,
		MaxStandardOvertimeHours: maxStandardOT,
	})

	var regular, overtime float64
	for _, a := range allocs {
		regular += a.RegularHours
		overtime += a.OvertimeHours
	}

	switch {
	case regular < dailyRequired:
		return model.LogTypeRegular, nil
	case overtime < maxStandardOT:
		return model.LogTypeOvertime, nil
	default:
		return model.LogTypeExtendedOvertime, nil
	}
}

func (ep *TimeLogEndpoint) ClockOut(c *gin.Context) {
	claims := middlewares.CurrentIdentity(c)

	log, err := ep.GetStore(c).ClockOut(claims.UserID, utils.ManilaNow())
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(log))
}

// List returns an intern's raw logs, optionally narrowed to a date range.
// Interns may only read their own record.
func (ep *TimeLogEndpoint) List(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	claims := middlewares.CurrentIdentity(c)
	if claims.Role != model.RoleAdmin && claims.UserID != id {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("not your record"))
		return
	}

	st := ep.GetStore(c)
	from, to := c.Query("from"), c.Query("to")

	var logs []model.TimeLog
	var err error
	if from != "" && to != "" {
		logs, err = st.TimeLogsForRange(id, from, to)
	} else {
		logs, err = st.AllTimeLogs(id)
	}
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(logs, int64(len(logs))))
}

type TimeLogUpdateDTO struct {
	TimeIn       *common.LocalDateTime `json:"timeIn,omitempty"`
	TimeOut      *common.LocalDateTime `json:"timeOut,omitempty"`
	BreakMinutes *int                  `json:"breakMinutes,omitempty"`
}

// Update rewrites a log directly, bypassing the edit-request workflow.
// Admin only.
func (ep *TimeLogEndpoint) Update(c *gin.Context) {
	id := c.Param("id")

	var dto TimeLogUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	var timeIn, timeOut *time.Time
	if dto.TimeIn != nil {
		timeIn = dto.TimeIn.TimePtr()
	}
	if dto.TimeOut != nil {
		timeOut = dto.TimeOut.TimePtr()
	}

	if err := ep.GetStore(c).UpdateTimeLog(id, timeIn, timeOut, dto.BreakMinutes); err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *TimeLogEndpoint) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := ep.GetStore(c).DeleteTimeLog(id); err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
