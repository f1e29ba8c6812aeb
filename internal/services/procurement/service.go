package procurement

import (
	"encoding/json"
	"errors"
	"time"

	"procurement-dashboard-backend/internal/models"
	"procurement-dashboard-backend/internal/repository"
	"procurement-dashboard-backend/internal/services/ranking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoSelectedQuote  = errors.New("request has no selected quote")
	ErrRequestNotOpen   = errors.New("request is not awaiting approval")
	ErrAlreadyDelivered = errors.New("order already delivered")
)

type Service struct {
	requestRepo  *repository.RequestRepository
	quoteRepo    *repository.QuoteRepository
	supplierRepo *repository.SupplierRepository
	db           *gorm.DB
}

func NewService(
	requestRepo *repository.RequestRepository,
	quoteRepo *repository.QuoteRepository,
	supplierRepo *repository.SupplierRepository,
) *Service {
	return &Service{
		requestRepo:  requestRepo,
		quoteRepo:    quoteRepo,
		supplierRepo: supplierRepo,
		db:           requestRepo.DB(),
	}
}

func (s *Service) CreateSupplier(supplier *models.Supplier) error {
	supplier.ID = uuid.New()
	supplier.CreatedAt = time.Now()
	return s.supplierRepo.Create(supplier)
}

func (s *Service) ListSuppliers() ([]models.Supplier, error) {
	return s.supplierRepo.List()
}

func (s *Service) CreateRequest(req *models.PurchaseRequest) error {
	req.ID = uuid.New()
	if req.Status == "" {
		req.Status = models.RequestStatusPendingQuotes
	}
	req.CreatedAt = time.Now()
	return s.db.Create(req).Error
}

func (s *Service) GetRequest(id uuid.UUID) (*models.PurchaseRequest, error) {
	return s.requestRepo.GetByID(id)
}

func (s *Service) ListRequests(status string) ([]models.PurchaseRequest, error) {
	return s.requestRepo.List(status)
}

// QuoteInput is a supplier's offer as received from the collection side.
// TotalPrice may be omitted, in which case it is computed from quantity and
// unit price. A supplied total wins over the product: supplier totals can
// legitimately include batch discounts.
type QuoteInput struct {
	SupplierID       uuid.UUID
	SupplierName     string
	SupplierRating   float64
	SupplierLocation string
	LeadTimeText     string
	Reliability      float64
	QualityScore     float64
	HistoryScore     float64
	Product          string
	Quantity         float64
	Unit             string
	UnitPrice        float64
	TotalPrice       float64
	DeliveryDate     time.Time
	Warranty         string
	Specifications   string
	Notes            string
	Savings          float64
}

// AddQuote attaches a new quote to a request and rescores the whole batch:
// price and delivery sub-scores are relative to the competition, so every
// sibling's score can shift when a quote arrives.
func (s *Service) AddQuote(requestID uuid.UUID, in QuoteInput) (*models.Quote, error) {
	req, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	if in.SupplierID != uuid.Nil {
		supplier, err := s.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		in = snapshotSupplier(in, *supplier)
	}

	total := in.TotalPrice
	if total == 0 {
		total = in.Quantity * in.UnitPrice
	}

	quote := &models.Quote{
		ID:               uuid.New(),
		RequestID:        req.ID,
		SupplierID:       in.SupplierID,
		SupplierName:     in.SupplierName,
		SupplierRating:   in.SupplierRating,
		SupplierLocation: in.SupplierLocation,
		LeadTimeText:     in.LeadTimeText,
		DeliveryDays:     ranking.ParseLeadTimeDays(in.LeadTimeText),
		Reliability:      in.Reliability,
		QualityScore:     in.QualityScore,
		HistoryScore:     in.HistoryScore,
		Product:          in.Product,
		Quantity:         in.Quantity,
		Unit:             in.Unit,
		UnitPrice:        in.UnitPrice,
		TotalPrice:       total,
		DeliveryDate:     in.DeliveryDate,
		Warranty:         in.Warranty,
		Specifications:   in.Specifications,
		Notes:            in.Notes,
		Savings:          in.Savings,
		Status:           models.QuoteStatusPending,
		CreatedAt:        time.Now(),
	}
	if err := s.db.Create(quote).Error; err != nil {
		return nil, err
	}

	if err := s.rescoreBatch(req.ID); err != nil {
		return nil, err
	}
	if req.Status == models.RequestStatusPendingQuotes {
		s.db.Model(req).Update("status", models.RequestStatusQuoted)
	}

	return s.quoteRepo.GetByID(quote.ID)
}

// snapshotSupplier fills the quote input's supplier fields from the supplier
// record. Values already present on the input win: a supplier can quote a
// request-specific lead time or be rated differently for this tender, and the
// snapshot must preserve that.
func snapshotSupplier(in QuoteInput, supplier models.Supplier) QuoteInput {
	if in.SupplierName == "" {
		in.SupplierName = supplier.Name
	}
	if in.SupplierRating == 0 {
		in.SupplierRating = supplier.Rating
	}
	if in.SupplierLocation == "" {
		in.SupplierLocation = supplier.Location
	}
	if in.LeadTimeText == "" {
		in.LeadTimeText = supplier.LeadTimeText
	}
	if in.Reliability == 0 {
		in.Reliability = supplier.Reliability
	}
	if in.QualityScore == 0 {
		in.QualityScore = supplier.QualityScore
	}
	if in.HistoryScore == 0 {
		in.HistoryScore = supplier.HistoryScore
	}
	return in
}

// rescoreBatch recomputes composite scores for every quote of a request and
// persists them along with the per-factor breakdown.
func (s *Service) rescoreBatch(requestID uuid.UUID) error {
	quotes, err := s.quoteRepo.FindByRequest(requestID)
	if err != nil {
		return err
	}
	breakdowns := ranking.ScoreQuotes(quotes)

	for i := range quotes {
		detailsJSON, _ := json.Marshal(breakdowns[i])
		err := s.db.Model(&models.Quote{}).
			Where("id = ?", quotes[i].ID).
			Updates(map[string]interface{}{
				"score":         quotes[i].Score,
				"score_details": detailsJSON,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

type BatchStats struct {
	Total            int     `json:"total"`
	BestScore        int     `json:"best_score"`
	PotentialSavings float64 `json:"potential_savings"`
	CheapestTotal    float64 `json:"cheapest_total"`
}

// CompareQuotes returns the ranked view of a request's quote batch: the
// quotes after filter/search/sort, the recommended best quote, and summary
// stats. An unknown filter name surfaces ranking.ErrInvalidFilter.
func (s *Service) CompareQuotes(requestID uuid.UUID, filter, sortKey, search string) ([]models.Quote, *models.Quote, BatchStats, error) {
	quotes, err := s.quoteRepo.FindByRequest(requestID)
	if err != nil {
		return nil, nil, BatchStats{}, err
	}

	stats := BatchStats{Total: len(quotes)}
	var best *models.Quote
	if b, err := ranking.SelectBest(quotes); err == nil {
		best = &b
		stats.BestScore = b.Score
		stats.PotentialSavings = b.Savings
	}
	for _, q := range quotes {
		if stats.CheapestTotal == 0 || q.TotalPrice < stats.CheapestTotal {
			stats.CheapestTotal = q.TotalPrice
		}
	}

	filtered, err := ranking.Filter(quotes, filter)
	if err != nil {
		return nil, nil, BatchStats{}, err
	}
	filtered = ranking.Search(filtered, search)
	filtered = ranking.Sort(filtered, sortKey)

	return filtered, best, stats, nil
}

// SelectQuote applies the mutual-exclusion selection: the chosen quote wins,
// every competitor is rejected, and the request moves on to approval. All
// status writes happen in one transaction so the batch can never be observed
// with two winners.
func (s *Service) SelectQuote(quoteID uuid.UUID) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.FindByRequest(quote.RequestID)
	if err != nil {
		return nil, err
	}

	updated, err := ranking.SelectQuote(quotes, quoteID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, q := range updated {
			if err := tx.Model(&models.Quote{}).Where("id = ?", q.ID).Update("status", q.Status).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.PurchaseRequest{}).
			Where("id = ?", quote.RequestID).
			Update("status", models.RequestStatusPendingApproval).Error
	})
	if err != nil {
		return nil, err
	}

	return s.quoteRepo.GetByID(quoteID)
}

// ApproveRequest confirms the selected quote, logs the decision and opens an
// order with the winning supplier.
func (s *Service) ApproveRequest(requestID uuid.UUID, actor, reason string) (*models.Order, error) {
	req, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestStatusPendingApproval {
		return nil, ErrRequestNotOpen
	}

	quotes, err := s.quoteRepo.FindByRequest(requestID)
	if err != nil {
		return nil, err
	}
	var selected *models.Quote
	for i := range quotes {
		if quotes[i].Status == models.QuoteStatusSelected {
			selected = &quotes[i]
			break
		}
	}
	if selected == nil {
		return nil, ErrNoSelectedQuote
	}

	order := &models.Order{
		ID:           uuid.New(),
		RequestID:    req.ID,
		QuoteID:      selected.ID,
		SupplierName: selected.SupplierName,
		Product:      selected.Product,
		TotalPrice:   selected.TotalPrice,
		Status:       models.OrderStatusPreparing,
		Progress:     10,
		ETA:          selected.DeliveryDate,
		CreatedAt:    time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Update("status", models.RequestStatusOrdered).Error; err != nil {
			return err
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&models.ApprovalLog{
			ID:          uuid.New(),
			RequestID:   req.ID,
			Action:      "approved",
			PerformedBy: actor,
			Reason:      reason,
			CreatedAt:   time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) RejectRequest(requestID uuid.UUID, actor, reason string) (*models.PurchaseRequest, error) {
	req, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestStatusPendingApproval {
		return nil, ErrRequestNotOpen
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Update("status", models.RequestStatusRejected).Error; err != nil {
			return err
		}
		return tx.Create(&models.ApprovalLog{
			ID:          uuid.New(),
			RequestID:   req.ID,
			Action:      "rejected",
			PerformedBy: actor,
			Reason:      reason,
			CreatedAt:   time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.requestRepo.GetByID(requestID)
}

func (s *Service) ApprovalHistory(requestID uuid.UUID) ([]models.ApprovalLog, error) {
	var logs []models.ApprovalLog
	err := s.db.Where("request_id = ?", requestID).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (s *Service) ListOrders(status string) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&orders).Error
	return orders, err
}

// orderProgress maps an order status to the progress shown on the tracking
// screen. Delayed orders keep whatever progress they had.
var orderProgress = map[models.OrderStatus]int{
	models.OrderStatusPreparing: 20,
	models.OrderStatusInTransit: 65,
	models.OrderStatusDelivered: 100,
}

func (s *Service) UpdateOrderStatus(orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, ErrAlreadyDelivered
	}

	updates := map[string]interface{}{"status": status}
	if p, ok := orderProgress[status]; ok {
		updates["progress"] = p
	}
	if status == models.OrderStatusDelivered {
		now := time.Now()
		updates["delivered_at"] = &now
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

type ReportSummary struct {
	RequestsByStatus map[string]int64 `json:"requests_by_status"`
	OrdersByStatus   map[string]int64 `json:"orders_by_status"`
	TotalOrderValue  float64          `json:"total_order_value"`
	DeliveredValue   float64          `json:"delivered_value"`
}

// Summary aggregates the dashboard numbers with group-by scans.
func (s *Service) Summary() (ReportSummary, error) {
	summary := ReportSummary{OrdersByStatus: make(map[string]int64)}

	requests, err := s.requestRepo.CountByStatus()
	if err != nil {
		return summary, err
	}
	summary.RequestsByStatus = requests

	type row struct {
		Status string
		Count  int64
		Sum    float64
	}
	var rows []row
	err = s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total_price),0) as sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return summary, err
	}
	for _, r := range rows {
		summary.OrdersByStatus[r.Status] = r.Count
		summary.TotalOrderValue += r.Sum
		if r.Status == string(models.OrderStatusDelivered) {
			summary.DeliveredValue += r.Sum
		}
	}
	return summary, nil
}
