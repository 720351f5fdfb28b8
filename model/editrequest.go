package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// EditRequest records an intern's proposed correction to a time log. The
// log itself is only rewritten when the request is approved; pending
// requests are overlaid onto DTR views for display.
type EditRequest struct {
	ID     string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	LogID  string `gorm:"column:log_id;type:varchar(36);not null;index" json:"logId"`
	UserID uint   `gorm:"column:user_id;not null;index" json:"userId"`

	RequestedTimeIn  *time.Time `gorm:"column:requested_time_in" json:"requestedTimeIn"`
	RequestedTimeOut *time.Time `gorm:"column:requested_time_out" json:"requestedTimeOut"`
	OriginalTimeIn   *time.Time `gorm:"column:original_time_in" json:"originalTimeIn"`
	OriginalTimeOut  *time.Time `gorm:"column:original_time_out" json:"originalTimeOut"`
	Reason           string     `gorm:"column:reason;type:varchar(500)" json:"reason"`

	Status    RequestStatus `gorm:"column:status;type:varchar(10);not null;default:pending" json:"status"`
	DecidedBy *uint         `gorm:"column:decided_by" json:"decidedBy"`
	DecidedAt *time.Time    `gorm:"column:decided_at" json:"decidedAt"`

	Log  TimeLog `gorm:"foreignKey:LogID;references:ID" json:"-"`
	User User    `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (EditRequest) TableName() string {
	return "edit_requests"
}

func (er *EditRequest) BeforeCreate(tx *gorm.DB) error {
	if er.ID == "" {
		er.ID = uuid.NewString()
	}
	return nil
}
