package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID       string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	UserID   uint   `gorm:"column:user_id;not null;index" json:"userId"`
	SerialNo string `gorm:"column:serial_no;type:varchar(50);not null;uniqueIndex" json:"serialNo"`

	RegularHours  float64 `gorm:"column:regular_hours;type:decimal(10,2);not null" json:"regularHours"`
	OvertimeHours float64 `gorm:"column:overtime_hours;type:decimal(10,2);not null" json:"overtimeHours"`
	TotalHours    float64 `gorm:"column:total_hours;type:decimal(10,2);not null" json:"totalHours"`

	IssuedBy  uint      `gorm:"column:issued_by;not null" json:"issuedBy"`
	IssuedAt  time.Time `gorm:"column:issued_at;not null" json:"issuedAt"`
	ObjectKey *string   `gorm:"column:object_key;type:varchar(255)" json:"objectKey"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (cert *Certificate) BeforeCreate(tx *gorm.DB) error {
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	return nil
}
