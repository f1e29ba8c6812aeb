package models

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID `gorm:"index"`
	Action      string // approved | rejected
	PerformedBy string
	Reason      string
	CreatedAt   time.Time
}
