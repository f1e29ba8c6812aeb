package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusDelayed   OrderStatus = "delayed"
)

type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID    uuid.UUID `gorm:"index"`
	QuoteID      uuid.UUID `gorm:"index"`
	SupplierName string
	Product      string
	TotalPrice   float64
	Status       OrderStatus `gorm:"index"`
	Progress     int         // 0-100
	ETA          time.Time
	DeliveredAt  *time.Time
	CreatedAt    time.Time
}
