package repository

import (
	"procurement-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) DB() *gorm.DB {
	return r.db
}

func (r *UploadRepository) GetBatch(id uuid.UUID) (*models.UploadBatch, error) {
	var batch models.UploadBatch
	if err := r.db.First(&batch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// FindRows returns a batch's rows in sheet order, optionally filtered by
// validation status.
func (r *UploadRepository) FindRows(batchID uuid.UUID, status string) ([]models.UploadRow, error) {
	var rows []models.UploadRow
	query := r.db.Where("upload_batch_id = ?", batchID).Order("row_num ASC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&rows).Error
	return rows, err
}
