package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogType string

const (
	LogTypeRegular          LogType = "regular"
	LogTypeOvertime         LogType = "overtime"
	LogTypeExtendedOvertime LogType = "extended_overtime"
)

func (t LogType) Valid() bool {
	switch t {
	case LogTypeRegular, LogTypeOvertime, LogTypeExtendedOvertime:
		return true
	}
	return false
}

// OvertimeStatus is a closed set. Regular logs always carry StatusNone;
// overtime and extended logs are created StatusPending and move to
// approved or rejected by an admin decision.
type OvertimeStatus string

const (
	StatusNone     OvertimeStatus = "none"
	StatusPending  OvertimeStatus = "pending"
	StatusApproved OvertimeStatus = "approved"
	StatusRejected OvertimeStatus = "rejected"
)

func (s OvertimeStatus) Valid() bool {
	switch s {
	case StatusNone, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

const (
	SourceWeb    = "web"
	SourceImport = "import"
)

type TimeLog struct {
	ID             string         `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	UserID         uint           `gorm:"column:user_id;not null;index:idx_user_date" json:"userId"`
	Date           string         `gorm:"column:date;type:varchar(10);not null;index:idx_user_date" json:"date"`
	TimeIn         *time.Time     `gorm:"column:time_in" json:"timeIn"`
	TimeOut        *time.Time     `gorm:"column:time_out" json:"timeOut"`
	LogType        LogType        `gorm:"column:log_type;type:varchar(20);not null;default:regular" json:"logType"`
	OvertimeStatus OvertimeStatus `gorm:"column:overtime_status;type:varchar(10);not null;default:none" json:"overtimeStatus"`
	BreakMinutes   int            `gorm:"column:break_minutes;not null;default:0" json:"breakMinutes"`
	Source         string         `gorm:"column:source;type:varchar(10);not null;default:web" json:"source"`
	DeviceID       string         `gorm:"column:device_id;type:varchar(50)" json:"deviceId"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

func (tl *TimeLog) BeforeCreate(tx *gorm.DB) error {
	if tl.ID == "" {
		tl.ID = uuid.NewString()
	}
	return nil
}

// Open reports whether the log is still running.
func (tl *TimeLog) Open() bool {
	return tl.TimeIn != nil && tl.TimeOut == nil
}
