package repository

import (
	"procurement-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) DB() *gorm.DB {
	return r.db
}

func (r *RequestRepository) GetByID(id uuid.UUID) (*models.PurchaseRequest, error) {
	var req models.PurchaseRequest
	if err := r.db.First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns requests, optionally narrowed by status, newest first.
func (r *RequestRepository) List(status string) ([]models.PurchaseRequest, error) {
	var reqs []models.PurchaseRequest
	query := r.db.Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&reqs).Error
	return reqs, err
}

// CountByStatus groups requests by status for the reports screen.
func (r *RequestRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.PurchaseRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
