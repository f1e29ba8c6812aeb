package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusSelected QuoteStatus = "selected"
	QuoteStatusRejected QuoteStatus = "rejected"
)

type Quote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID `gorm:"index"`

	// Supplier snapshot, copied from the supplier record at quote time so the
	// comparison stays stable even if the supplier profile changes later.
	SupplierID       uuid.UUID `gorm:"index"`
	SupplierName     string
	SupplierRating   float64 // 0-5
	SupplierLocation string
	LeadTimeText     string // free text, e.g. "2-3 gün"
	DeliveryDays     int    // first integer token of LeadTimeText
	Reliability      float64
	QualityScore     float64
	HistoryScore     float64

	Product        string
	Quantity       float64
	Unit           string
	UnitPrice      float64
	TotalPrice     float64 `gorm:"index"`
	DeliveryDate   time.Time
	Warranty       string
	Specifications string
	Notes          string
	Savings        float64

	Score        int         `gorm:"index"`
	ScoreDetails datatypes.JSON
	Status       QuoteStatus `gorm:"index"`
	CreatedAt    time.Time
}
