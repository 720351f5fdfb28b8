package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/core"
	"github.com/jayelcee/internhq/infrastructure/communication"
	"github.com/jayelcee/internhq/infrastructure/devops"
	"github.com/jayelcee/internhq/store"
	"github.com/jayelcee/internhq/web/common"
)

// Handler is embedded by every endpoint: the shared pool, loaded config,
// and the optional Slack notifier.
type Handler struct {
	Dm    *core.DatabaseManager
	Cfg   *devops.Config
	Slack *communication.Slack
}

// GetStore returns a request-scoped store.
func (h *Handler) GetStore(c *gin.Context) *store.Store {
	return store.New(h.Dm.GetDB(c.Request.Context()))
}

// Notify posts to Slack when a notifier is wired; silent otherwise.
func (h *Handler) Notify(fn func(s *communication.Slack) error) {
	if h.Slack == nil {
		return
	}
	if err := fn(h.Slack); err != nil {
		// Notification failures never fail the request.
		_ = err
	}
}

// RespondStoreError maps store sentinels onto HTTP statuses.
func RespondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
	case errors.Is(err, store.ErrOpenLogExists),
		errors.Is(err, store.ErrNoOpenLog),
		errors.Is(err, store.ErrPendingEditExists),
		errors.Is(err, store.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
	case errors.Is(err, store.ErrNotOvertime),
		errors.Is(err, store.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
	}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return uint(v), true
}
