package handler

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"procurement-dashboard-backend/internal/services/upload"
	"procurement-dashboard-backend/internal/services/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	service *upload.Service
}

func NewUploadHandler(s *upload.Service) *UploadHandler {
	return &UploadHandler{service: s}
}

// Upload accepts an Excel or CSV file of requested materials, creates a
// batch, and validates the rows in the background.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") && !strings.HasSuffix(name, ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected .xlsx, .xls or .csv"})
		return
	}

	// Buffer the whole file; the multipart reader is gone once this handler
	// returns and processing happens on a background goroutine.
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}

	batch, err := h.service.CreateBatch(header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go func() {
		if err := h.service.ProcessFile(batch.ID, header.Filename, bytes.NewReader(data)); err != nil {
			log.Printf("upload batch %s failed: %v", batch.ID, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"batch_id": batch.ID.String(),
		"status":   "processing",
	})
}

func (h *UploadHandler) GetBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	batch, err := h.service.GetBatch(batchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch_id": batch.ID,
		"filename": batch.Filename,
		"status":   batch.Status,
		"summary": validation.Summary{
			Total:   batch.TotalRows,
			Valid:   batch.ValidRows,
			Warning: batch.WarningRows,
			Error:   batch.ErrorRows,
		},
	})
}

func (h *UploadHandler) ListRows(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	rows, err := h.service.Rows(batchID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	summary, err := h.service.Summarize(batchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   rows,
		"summary": summary,
	})
}

// Submit creates purchase requests from the batch's usable rows. Refused
// when the batch has no valid row at all.
func (h *UploadHandler) Submit(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	created, err := h.service.Submit(batchID)
	switch {
	case errors.Is(err, upload.ErrNothingToSubmit):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case errors.Is(err, upload.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "requests created",
		"requests_created": created,
	})
}
