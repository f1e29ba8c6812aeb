package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusDraft           RequestStatus = "draft"
	RequestStatusPendingQuotes   RequestStatus = "pending_quotes"
	RequestStatusQuoted          RequestStatus = "quoted"
	RequestStatusPendingApproval RequestStatus = "pending_approval"
	RequestStatusApproved        RequestStatus = "approved"
	RequestStatusRejected        RequestStatus = "rejected"
	RequestStatusOrdered         RequestStatus = "ordered"
)

type PurchaseRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category    string    `gorm:"index"`
	Product     string
	Quantity    float64
	Unit        string
	NeededBy    time.Time
	Priority    string // low | normal | high | urgent
	Description string
	Requester   string
	Project     string
	Status      RequestStatus `gorm:"index"`
	// Set when the request was created from a bulk upload row.
	UploadBatchID *uuid.UUID `gorm:"index"`
	CreatedAt     time.Time
}
