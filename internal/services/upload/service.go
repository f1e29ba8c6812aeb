package upload

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"procurement-dashboard-backend/internal/models"
	"procurement-dashboard-backend/internal/repository"
	"procurement-dashboard-backend/internal/services/validation"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrUnsupportedFile  = errors.New("unsupported file type, expected .xlsx, .xls or .csv")
	ErrNothingToSubmit  = errors.New("batch has no valid rows")
	ErrAlreadySubmitted = errors.New("batch already submitted")
)

type Service struct {
	uploadRepo *repository.UploadRepository
	db         *gorm.DB
}

func NewService(uploadRepo *repository.UploadRepository) *Service {
	return &Service{
		uploadRepo: uploadRepo,
		db:         uploadRepo.DB(),
	}
}

func (s *Service) CreateBatch(filename string) (*models.UploadBatch, error) {
	batch := &models.UploadBatch{
		ID:        uuid.New(),
		Filename:  filename,
		Status:    "processing",
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

// ProcessFile parses the uploaded spreadsheet, validates every row and stores
// the classified rows. Expected columns: category, product name, quantity,
// unit, delivery date (YYYY-MM-DD), description. The first row is treated as
// a header.
func (s *Service) ProcessFile(batchID uuid.UUID, filename string, reader io.Reader) error {
	var records [][]string
	var err error

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"),
		strings.HasSuffix(strings.ToLower(filename), ".xls"):
		records, err = readExcel(reader)
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		records, err = readCSV(reader)
	default:
		err = ErrUnsupportedFile
	}
	if err != nil {
		s.db.Model(&models.UploadBatch{}).Where("id = ?", batchID).Update("status", "failed")
		return err
	}

	now := time.Now()
	summary := validation.Summary{}
	rowNum := 0

	for i, record := range records {
		// Skip header and completely blank rows.
		if i == 0 || strings.Join(record, "") == "" {
			continue
		}
		rowNum++

		row := rowFromRecord(batchID, rowNum, record)
		status, messages := validation.ValidateRow(row, now)
		row.Status = status
		if messages == nil {
			messages = []string{}
		}
		messagesJSON, _ := json.Marshal(messages)
		row.ErrorMessages = messagesJSON

		if err := s.db.Create(&row).Error; err != nil {
			log.Printf("failed to store row %d: %v", rowNum, err)
			continue
		}

		summary.Total++
		switch status {
		case models.RowStatusValid:
			summary.Valid++
		case models.RowStatusWarning:
			summary.Warning++
		case models.RowStatusError:
			summary.Error++
		}

		if summary.Total%100 == 0 {
			s.db.Model(&models.UploadBatch{}).Where("id = ?", batchID).
				Update("total_rows", summary.Total)
		}
	}

	completedAt := time.Now()
	return s.db.Model(&models.UploadBatch{}).Where("id = ?", batchID).
		Updates(map[string]interface{}{
			"total_rows":   summary.Total,
			"valid_rows":   summary.Valid,
			"warning_rows": summary.Warning,
			"error_rows":   summary.Error,
			"status":       "reviewed",
			"completed_at": &completedAt,
		}).Error
}

func rowFromRecord(batchID uuid.UUID, rowNum int, record []string) models.UploadRow {
	get := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	// A non-numeric quantity cell stays zero and fails the quantity rule.
	quantity, _ := strconv.ParseFloat(strings.ReplaceAll(get(2), ",", "."), 64)

	return models.UploadRow{
		ID:            uuid.New(),
		UploadBatchID: batchID,
		RowNum:        rowNum,
		Category:      get(0),
		ProductName:   get(1),
		Quantity:      quantity,
		Unit:          get(3),
		DeliveryDate:  get(4),
		Description:   get(5),
		CreatedAt:     time.Now(),
	}
}

func readExcel(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(reader io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

func (s *Service) GetBatch(batchID uuid.UUID) (*models.UploadBatch, error) {
	return s.uploadRepo.GetBatch(batchID)
}

func (s *Service) Rows(batchID uuid.UUID, status string) ([]models.UploadRow, error) {
	return s.uploadRepo.FindRows(batchID, status)
}

func (s *Service) Summarize(batchID uuid.UUID) (validation.Summary, error) {
	rows, err := s.uploadRepo.FindRows(batchID, "")
	if err != nil {
		return validation.Summary{}, err
	}
	return validation.Summarize(rows), nil
}

// Submit turns the batch into purchase requests. Error rows are left behind;
// warning rows go through; the whole submit is refused unless at least one
// row is fully valid.
func (s *Service) Submit(batchID uuid.UUID) (int, error) {
	batch, err := s.uploadRepo.GetBatch(batchID)
	if err != nil {
		return 0, err
	}
	if batch.Status == "submitted" {
		return 0, ErrAlreadySubmitted
	}

	rows, err := s.uploadRepo.FindRows(batchID, "")
	if err != nil {
		return 0, err
	}
	if !validation.IsSubmittable(rows) {
		return 0, ErrNothingToSubmit
	}

	created := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if row.Status == models.RowStatusError {
				continue
			}
			neededBy, _ := time.Parse("2006-01-02", row.DeliveryDate)
			req := &models.PurchaseRequest{
				ID:            uuid.New(),
				Category:      row.Category,
				Product:       row.ProductName,
				Quantity:      row.Quantity,
				Unit:          row.Unit,
				NeededBy:      neededBy,
				Priority:      "normal",
				Description:   row.Description,
				Status:        models.RequestStatusPendingQuotes,
				UploadBatchID: &batch.ID,
				CreatedAt:     time.Now(),
			}
			if err := tx.Create(req).Error; err != nil {
				return err
			}
			created++
		}
		return tx.Model(batch).Update("status", "submitted").Error
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
