package model

import "time"

const (
	HolidayRegular = "regular"
	HolidaySpecial = "special"
)

type Holiday struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Date   string `gorm:"column:date;type:varchar(10);not null;uniqueIndex" json:"date"`
	Name   string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Kind   string `gorm:"column:kind;type:varchar(10);not null;default:regular" json:"kind"`
	Source string `gorm:"column:source;type:varchar(10);not null;default:MASTER" json:"source"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Holiday) TableName() string {
	return "holidays"
}
