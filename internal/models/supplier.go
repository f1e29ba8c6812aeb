package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"index"`
	Rating       float64   // 0-5
	Location     string
	LeadTimeText string
	Reliability  float64 // 0-100
	QualityScore float64 // 0-100, maintained by purchasing staff
	HistoryScore float64 // 0-100, rolling delivery performance
	CreatedAt    time.Time
}
