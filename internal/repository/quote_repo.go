package repository

import (
	"procurement-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) DB() *gorm.DB {
	return r.db
}

// FindByRequest returns the full quote batch for one purchase request in
// insertion order. Ranking depends on this ordering for tie-breaks.
func (r *QuoteRepository) FindByRequest(requestID uuid.UUID) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.Where("request_id = ?", requestID).Order("created_at ASC, id ASC").Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepository) GetByID(id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.First(&quote, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}
