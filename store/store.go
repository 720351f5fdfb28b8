package store

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors the handler layer maps to HTTP statuses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrOpenLogExists     = errors.New("an open time log already exists")
	ErrNoOpenLog         = errors.New("no open time log to close")
	ErrPendingEditExists = errors.New("a pending edit request already exists for this log")
	ErrNotOvertime       = errors.New("log is not overtime-tagged")
	ErrAlreadyDecided    = errors.New("request already decided")
	ErrInvalidAction     = errors.New("invalid decision action")
)

// Decision actions shared by the overtime and edit-request workflows.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionRevert  = "revert"
)

// BatchResult reports a sequential batch decision: per-item isolation, no
// rollback of items already applied.
type BatchResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// Store wraps a context-scoped gorm handle. Create one per request via
// New(dm.GetDB(ctx)).
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
