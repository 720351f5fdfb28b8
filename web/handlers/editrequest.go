package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/dtr"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/web/common"
	"github.com/jayelcee/internhq/web/middlewares"
)

type EditRequestEndpoint struct {
	Handler
}

func RegisterEditRequests(r *gin.RouterGroup, admin *gin.RouterGroup, base Handler) {
	endpoint := &EditRequestEndpoint{Handler: base}
	r.POST("/edit-requests", endpoint.Create)

	admin.GET("/edit-requests", endpoint.List)
	admin.POST("/edit-requests/:id/decision", endpoint.Decide)
	admin.POST("/edit-requests/decisions", endpoint.DecideBatch)
}

type EditRequestItemDTO struct {
	LogID            string                `json:"logId" binding:"required"`
	RequestedTimeIn  *common.LocalDateTime `json:"requestedTimeIn,omitempty"`
	RequestedTimeOut *common.LocalDateTime `json:"requestedTimeOut,omitempty"`
}

type EditRequestCreateDTO struct {
	Changes []EditRequestItemDTO `json:"changes" binding:"required,min=1,dive"`
	Reason  string               `json:"reason" binding:"required,max=500"`
}

// Create files one request per targeted log. A continuous session edited
// across its logs becomes several requests that the admin queue groups
// back together.
func (ep *EditRequestEndpoint) Create(c *gin.Context) {
	claims := middlewares.CurrentIdentity(c)

	var dto EditRequestCreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	reqs := make([]model.EditRequest, 0, len(dto.Changes))
	for _, change := range dto.Changes {
		var in, out *time.Time
		if change.RequestedTimeIn != nil {
			in = change.RequestedTimeIn.TimePtr()
		}
		if change.RequestedTimeOut != nil {
			out = change.RequestedTimeOut.TimePtr()
		}
		if in == nil && out == nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("a change needs a requested time"))
			return
		}
		reqs = append(reqs, model.EditRequest{
			LogID:            change.LogID,
			UserID:           claims.UserID,
			RequestedTimeIn:  in,
			RequestedTimeOut: out,
			Reason:           dto.Reason,
		})
	}

	created, err := ep.GetStore(c).CreateEditRequests(reqs)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(created))
}

type RequestGroupDTO struct {
	RequestIDs []string            `json:"requestIds"`
	Requests   []model.EditRequest `json:"requests"`
	Orphaned   bool                `json:"orphaned"`

	SessionTimeIn  *time.Time `json:"sessionTimeIn,omitempty"`
	SessionTimeOut *time.Time `json:"sessionTimeOut,omitempty"`
	IsContinuous   bool       `json:"isContinuous"`
}

// List returns the admin queue with requests that target one continuous
// session folded into a single group, so a decision lands on the whole
// stretch of work.
func (ep *EditRequestEndpoint) List(c *gin.Context) {
	status := model.RequestStatus(c.DefaultQuery("status", string(model.RequestPending)))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid status"))
		return
	}

	st := ep.GetStore(c)
	requests, err := st.EditRequestsByStatus(status)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	logIDs := make([]string, 0, len(requests))
	for _, req := range requests {
		logIDs = append(logIDs, req.LogID)
	}
	logs, err := st.TimeLogsByIDs(logIDs)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	groups := []RequestGroupDTO{}
	for _, g := range dtr.GroupContinuousSessions(requests, logs) {
		dto := RequestGroupDTO{
			RequestIDs: g.RequestIDs,
			Requests:   g.Requests,
			Orphaned:   g.Orphaned,
		}
		if g.Session != nil {
			dto.SessionTimeIn = g.Session.TimeIn
			dto.SessionTimeOut = g.Session.TimeOut
			dto.IsContinuous = g.Session.IsContinuous
		}
		groups = append(groups, dto)
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(groups, int64(len(groups))))
}

func (ep *EditRequestEndpoint) Decide(c *gin.Context) {
	id := c.Param("id")
	claims := middlewares.CurrentIdentity(c)

	var dto DecisionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := ep.GetStore(c).DecideEditRequest(id, dto.Action, claims.UserID); err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

// DecideBatch applies one action to a whole request group (or any id list)
// sequentially, reporting per-item outcomes.
func (ep *EditRequestEndpoint) DecideBatch(c *gin.Context) {
	claims := middlewares.CurrentIdentity(c)

	var dto BatchDecisionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result := ep.GetStore(c).DecideEditRequestBatch(dto.IDs, dto.Action, claims.UserID)

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, common.NewSuccessResponse(result))
}
