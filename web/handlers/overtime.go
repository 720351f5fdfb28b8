package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/web/common"
)

type OvertimeEndpoint struct {
	Handler
}

func RegisterOvertime(admin *gin.RouterGroup, base Handler) {
	endpoint := &OvertimeEndpoint{Handler: base}
	admin.GET("/overtime", endpoint.List)
	admin.POST("/overtime/:logId/decision", endpoint.Decide)
	admin.POST("/overtime/decisions", endpoint.DecideBatch)
}

// List returns the admin review queue, defaulting to pending.
func (ep *OvertimeEndpoint) List(c *gin.Context) {
	status := model.OvertimeStatus(c.DefaultQuery("status", string(model.StatusPending)))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid status"))
		return
	}

	logs, err := ep.GetStore(c).OvertimeLogsByStatus(status)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(logs, int64(len(logs))))
}

type DecisionDTO struct {
	Action string `json:"action" binding:"required,oneof=approve reject revert"`
}

func (ep *OvertimeEndpoint) Decide(c *gin.Context) {
	logID := c.Param("logId")

	var dto DecisionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := ep.GetStore(c).DecideOvertime(logID, dto.Action); err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

type BatchDecisionDTO struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Action string   `json:"action" binding:"required,oneof=approve reject revert"`
}

// DecideBatch applies one action across many logs sequentially. Items that
// fail are reported back; items already applied stay applied.
func (ep *OvertimeEndpoint) DecideBatch(c *gin.Context) {
	var dto BatchDecisionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result := ep.GetStore(c).DecideOvertimeBatch(dto.IDs, dto.Action)

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, common.NewSuccessResponse(result))
}
