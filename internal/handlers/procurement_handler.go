package handler

import (
	"errors"
	"net/http"
	"time"

	"procurement-dashboard-backend/internal/models"
	"procurement-dashboard-backend/internal/services/procurement"
	"procurement-dashboard-backend/internal/services/ranking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcurementHandler struct {
	service *procurement.Service
}

func NewProcurementHandler(s *procurement.Service) *ProcurementHandler {
	return &ProcurementHandler{service: s}
}

func (h *ProcurementHandler) CreateRequest(c *gin.Context) {
	var payload struct {
		Category    string  `json:"category"`
		Product     string  `json:"product"`
		Quantity    float64 `json:"quantity"`
		Unit        string  `json:"unit"`
		NeededBy    string  `json:"needed_by"` // "2006-01-02"
		Priority    string  `json:"priority"`
		Description string  `json:"description"`
		Requester   string  `json:"requester"`
		Project     string  `json:"project"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.Category == "" || payload.Product == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category and product are required"})
		return
	}
	if payload.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	neededBy, err := time.Parse("2006-01-02", payload.NeededBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid needed_by date, expected yyyy-mm-dd"})
		return
	}

	priority := payload.Priority
	if priority == "" {
		priority = "normal"
	}

	req := &models.PurchaseRequest{
		Category:    payload.Category,
		Product:     payload.Product,
		Quantity:    payload.Quantity,
		Unit:        payload.Unit,
		NeededBy:    neededBy,
		Priority:    priority,
		Description: payload.Description,
		Requester:   payload.Requester,
		Project:     payload.Project,
	}
	if err := h.service.CreateRequest(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "request created", "request": req})
}

func (h *ProcurementHandler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": requests})
}

func (h *ProcurementHandler) GetRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}
	req, err := h.service.GetRequest(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

func (h *ProcurementHandler) AddQuote(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var payload struct {
		SupplierID       string  `json:"supplier_id"`
		SupplierName     string  `json:"supplier_name"`
		SupplierRating   float64 `json:"supplier_rating"`
		SupplierLocation string  `json:"supplier_location"`
		LeadTime         string  `json:"lead_time"`
		Reliability      float64 `json:"reliability"`
		QualityScore     float64 `json:"quality_score"`
		HistoryScore     float64 `json:"history_score"`
		Product          string  `json:"product"`
		Quantity         float64 `json:"quantity"`
		Unit             string  `json:"unit"`
		UnitPrice        float64 `json:"unit_price"`
		TotalPrice       float64 `json:"total_price"`
		DeliveryDate     string  `json:"delivery_date"` // "2006-01-02"
		Warranty         string  `json:"warranty"`
		Specifications   string  `json:"specifications"`
		Notes            string  `json:"notes"`
		Savings          float64 `json:"savings"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.SupplierID == "" && payload.SupplierName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplier_id or supplier_name is required"})
		return
	}
	if payload.UnitPrice <= 0 || payload.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "positive quantity and unit price are required"})
		return
	}

	var supplierID uuid.UUID
	if payload.SupplierID != "" {
		supplierID, err = uuid.Parse(payload.SupplierID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
			return
		}
	}

	deliveryDate, err := time.Parse("2006-01-02", payload.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery_date, expected yyyy-mm-dd"})
		return
	}

	quote, err := h.service.AddQuote(requestID, procurement.QuoteInput{
		SupplierID:       supplierID,
		SupplierName:     payload.SupplierName,
		SupplierRating:   payload.SupplierRating,
		SupplierLocation: payload.SupplierLocation,
		LeadTimeText:     payload.LeadTime,
		Reliability:      payload.Reliability,
		QualityScore:     payload.QualityScore,
		HistoryScore:     payload.HistoryScore,
		Product:          payload.Product,
		Quantity:         payload.Quantity,
		Unit:             payload.Unit,
		UnitPrice:        payload.UnitPrice,
		TotalPrice:       payload.TotalPrice,
		DeliveryDate:     deliveryDate,
		Warranty:         payload.Warranty,
		Specifications:   payload.Specifications,
		Notes:            payload.Notes,
		Savings:          payload.Savings,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request or supplier not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "quote added", "quote": quote})
}

func (h *ProcurementHandler) CreateSupplier(c *gin.Context) {
	var payload struct {
		Name         string  `json:"name"`
		Rating       float64 `json:"rating"`
		Location     string  `json:"location"`
		LeadTime     string  `json:"lead_time"`
		Reliability  float64 `json:"reliability"`
		QualityScore float64 `json:"quality_score"`
		HistoryScore float64 `json:"history_score"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if payload.Rating < 0 || payload.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
		return
	}

	supplier := &models.Supplier{
		Name:         payload.Name,
		Rating:       payload.Rating,
		Location:     payload.Location,
		LeadTimeText: payload.LeadTime,
		Reliability:  payload.Reliability,
		QualityScore: payload.QualityScore,
		HistoryScore: payload.HistoryScore,
	}
	if err := h.service.CreateSupplier(supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "supplier created", "supplier": supplier})
}

func (h *ProcurementHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.service.ListSuppliers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": suppliers})
}

func (h *ProcurementHandler) CompareQuotes(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	quotes, best, stats, err := h.service.CompareQuotes(
		requestID, c.Query("filter"), c.Query("sort"), c.Query("search"))
	if errors.Is(err, ranking.ErrInvalidFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       quotes,
		"recommended": best,
		"stats":       stats,
	})
}

func (h *ProcurementHandler) SelectQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote ID"})
		return
	}

	quote, err := h.service.SelectQuote(quoteID)
	if errors.Is(err, ranking.ErrQuoteNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quote selected", "quote": quote})
}

func (h *ProcurementHandler) ApproveRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var payload struct {
		Actor  string `json:"actor"`
		Reason string `json:"reason"`
	}
	_ = c.BindJSON(&payload)

	order, err := h.service.ApproveRequest(requestID, payload.Actor, payload.Reason)
	switch {
	case errors.Is(err, procurement.ErrRequestNotOpen),
		errors.Is(err, procurement.ErrNoSelectedQuote):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request approved", "order": order})
}

func (h *ProcurementHandler) RejectRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var payload struct {
		Actor  string `json:"actor"`
		Reason string `json:"reason"`
	}
	_ = c.BindJSON(&payload)

	req, err := h.service.RejectRequest(requestID, payload.Actor, payload.Reason)
	if errors.Is(err, procurement.ErrRequestNotOpen) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request rejected", "request": req})
}

func (h *ProcurementHandler) ApprovalHistory(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}
	logs, err := h.service.ApprovalHistory(requestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}

func (h *ProcurementHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": orders})
}

func (h *ProcurementHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	status := models.OrderStatus(payload.Status)
	switch status {
	case models.OrderStatusPreparing, models.OrderStatusInTransit,
		models.OrderStatusDelivered, models.OrderStatusDelayed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
		return
	}

	order, err := h.service.UpdateOrderStatus(orderID, status)
	if errors.Is(err, procurement.ErrAlreadyDelivered) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order updated", "order": order})
}

func (h *ProcurementHandler) ReportSummary(c *gin.Context) {
	summary, err := h.service.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
