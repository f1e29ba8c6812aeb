package validation

import (
	"strings"
	"time"

	"procurement-dashboard-backend/internal/models"
)

// Messages appended per violated rule. Rule order is fixed so the message
// list is reproducible for identical input.
const (
	MsgCategoryMissing    = "category missing"
	MsgQuantityInvalid    = "quantity invalid"
	MsgProductNameMissing = "product name missing"
	MsgDeliveryDatePast   = "delivery date in the past"
)

const dateLayout = "2006-01-02"

// ValidateRow classifies one uploaded row against the fixed rule set. All
// violated rules are recorded, not just the first. A past delivery date only
// downgrades the row to warning; the hard failures are missing category,
// non-positive quantity and missing product name. Validation never fails:
// every row comes back with a status and a (possibly empty) message list.
func ValidateRow(row models.UploadRow, now time.Time) (models.RowStatus, []string) {
	var messages []string
	hasError := false
	hasWarning := false

	if strings.TrimSpace(row.Category) == "" {
		messages = append(messages, MsgCategoryMissing)
		hasError = true
	}
	if row.Quantity <= 0 {
		messages = append(messages, MsgQuantityInvalid)
		hasError = true
	}
	if strings.TrimSpace(row.ProductName) == "" {
		messages = append(messages, MsgProductNameMissing)
		hasError = true
	}
	if d, err := time.Parse(dateLayout, strings.TrimSpace(row.DeliveryDate)); err == nil {
		// The parsed date is a UTC midnight, so "today" must be built in UTC
		// from now's calendar components. Comparing against midnight in the
		// server's own zone would shift the boundary for any zone west of UTC.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(today) {
			messages = append(messages, MsgDeliveryDatePast)
			hasWarning = true
		}
	}

	switch {
	case hasError:
		return models.RowStatusError, messages
	case hasWarning:
		return models.RowStatusWarning, messages
	default:
		return models.RowStatusValid, messages
	}
}

type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

// Summarize counts rows by status. The three buckets always sum to Total.
func Summarize(rows []models.UploadRow) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case models.RowStatusValid:
			s.Valid++
		case models.RowStatusWarning:
			s.Warning++
		case models.RowStatusError:
			s.Error++
		}
	}
	return s
}

// IsSubmittable reports whether the batch can be turned into purchase
// requests: at least one row must be fully valid. Warning rows ride along
// with a submit but cannot carry it on their own, and error rows are always
// left behind.
func IsSubmittable(rows []models.UploadRow) bool {
	for _, r := range rows {
		if r.Status == models.RowStatusValid {
			return true
		}
	}
	return false
}
