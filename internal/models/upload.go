package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RowStatus string

const (
	RowStatusValid   RowStatus = "valid"
	RowStatusWarning RowStatus = "warning"
	RowStatusError   RowStatus = "error"
)

type UploadBatch struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Filename     string
	TotalRows    int
	ValidRows    int
	WarningRows  int
	ErrorRows    int
	Status       string // processing | reviewed | submitted | failed
	StartedAt    time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
}

type UploadRow struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UploadBatchID uuid.UUID `gorm:"index"`
	RowNum        int
	Category      string
	ProductName   string
	Quantity      float64
	Unit          string
	DeliveryDate  string // raw cell text, validated against YYYY-MM-DD
	Description   string
	Status        RowStatus `gorm:"index"`
	ErrorMessages datatypes.JSON
	CreatedAt     time.Time
}
