package repository

import (
	"procurement-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) DB() *gorm.DB {
	return r.db
}

func (r *SupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *SupplierRepository) GetByID(id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) List() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}
