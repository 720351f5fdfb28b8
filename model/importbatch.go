package model

import "time"

// ImportBatch records one punch-file ingestion from the badge readers.
type ImportBatch struct {
	ID        uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ObjectKey string `gorm:"column:object_key;type:varchar(255);not null" json:"objectKey"`
	Rows      int    `gorm:"column:rows;not null" json:"rows"`
	Created   int    `gorm:"column:created;not null" json:"created"`
	Skipped   int    `gorm:"column:skipped;not null" json:"skipped"`
	Errored   int    `gorm:"column:errored;not null" json:"errored"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ImportBatch) TableName() string {
	return "import_batches"
}
