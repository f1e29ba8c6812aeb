package ranking

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"procurement-dashboard-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidFilter = errors.New("unknown filter name")
	ErrEmptyBatch    = errors.New("quote batch is empty")
	ErrQuoteNotFound = errors.New("quote not found in batch")
)

// Score weights, mirroring the factors shown to purchasing staff:
// price competitiveness 30%, supplier reliability 25%, delivery speed 20%,
// product quality 15%, historical performance 10%.
const (
	weightPrice       = 0.30
	weightReliability = 0.25
	weightDelivery    = 0.20
	weightQuality     = 0.15
	weightHistory     = 0.10
)

type Breakdown struct {
	PriceScore       float64 `json:"price_score"`
	ReliabilityScore float64 `json:"reliability_score"`
	DeliveryScore    float64 `json:"delivery_score"`
	QualityScore     float64 `json:"quality_score"`
	HistoryScore     float64 `json:"history_score"`
	FinalScore       int     `json:"final_score"`
}

// ScoreQuotes computes the composite score for every quote in the batch,
// writes it to quote.Score, and returns per-quote breakdowns in the same
// order. Price and delivery sub-scores are relative to the batch, so a quote
// only has a meaningful score in the context of its competitors.
func ScoreQuotes(quotes []models.Quote) []Breakdown {
	if len(quotes) == 0 {
		return nil
	}

	// 1. Batch reference points: cheapest total and fastest lead time.
	cheapest := 0.0
	fastest := 0
	for _, q := range quotes {
		if q.TotalPrice > 0 && (cheapest == 0 || q.TotalPrice < cheapest) {
			cheapest = q.TotalPrice
		}
		if q.DeliveryDays > 0 && (fastest == 0 || q.DeliveryDays < fastest) {
			fastest = q.DeliveryDays
		}
	}

	breakdowns := make([]Breakdown, len(quotes))

	for i := range quotes {
		q := &quotes[i]

		// 2. Price: cheapest quote gets 100, others fall off proportionally.
		priceScore := 0.0
		if q.TotalPrice > 0 && cheapest > 0 {
			priceScore = 100 * cheapest / q.TotalPrice
		}

		// 3. Delivery: fastest lead time gets 100.
		deliveryScore := 0.0
		if q.DeliveryDays > 0 && fastest > 0 {
			deliveryScore = 100 * float64(fastest) / float64(q.DeliveryDays)
		}

		// 4. Weighted sum over clamped sub-scores.
		b := Breakdown{
			PriceScore:       clamp(priceScore),
			ReliabilityScore: clamp(q.Reliability),
			DeliveryScore:    clamp(deliveryScore),
			QualityScore:     clamp(q.QualityScore),
			HistoryScore:     clamp(q.HistoryScore),
		}
		final := weightPrice*b.PriceScore +
			weightReliability*b.ReliabilityScore +
			weightDelivery*b.DeliveryScore +
			weightQuality*b.QualityScore +
			weightHistory*b.HistoryScore
		b.FinalScore = int(math.Round(final))

		q.Score = b.FinalScore
		breakdowns[i] = b
	}

	return breakdowns
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ParseLeadTimeDays extracts the lead time in days from a free-text field
// such as "2-3 gün". The first integer token wins; 0 means unparseable.
func ParseLeadTimeDays(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}

// Filter returns the quotes matching the named predicate. The names are the
// filter options exposed in the comparison view.
func Filter(quotes []models.Quote, name string) ([]models.Quote, error) {
	keep := func(q models.Quote) bool { return true }

	switch name {
	case "", "all":
	case "highScore":
		keep = func(q models.Quote) bool { return q.Score >= 80 }
	case "fastDelivery":
		keep = func(q models.Quote) bool { return q.DeliveryDays > 0 && q.DeliveryDays <= 3 }
	case "hasSavings":
		keep = func(q models.Quote) bool { return q.Savings > 0 }
	default:
		return nil, ErrInvalidFilter
	}

	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// Search narrows quotes to those whose supplier or product contains the term,
// case-insensitively. An empty term keeps everything.
func Search(quotes []models.Quote, term string) []models.Quote {
	if term == "" {
		return quotes
	}
	term = strings.ToLower(term)
	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if strings.Contains(strings.ToLower(q.SupplierName), term) ||
			strings.Contains(strings.ToLower(q.Product), term) {
			out = append(out, q)
		}
	}
	return out
}

// Sort orders a copy of the batch by the given key: price (ascending total),
// score (descending), rating (descending supplier rating), delivery
// (ascending delivery date). An unknown key leaves the original order, same
// as the comparison view's default.
func Sort(quotes []models.Quote, key string) []models.Quote {
	out := make([]models.Quote, len(quotes))
	copy(out, quotes)

	switch key {
	case "price":
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPrice < out[j].TotalPrice })
	case "score":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	case "rating":
		sort.SliceStable(out, func(i, j int) bool { return out[i].SupplierRating > out[j].SupplierRating })
	case "delivery":
		sort.SliceStable(out, func(i, j int) bool { return out[i].DeliveryDate.Before(out[j].DeliveryDate) })
	}
	return out
}

// SelectBest returns the recommended quote: highest score, ties broken by
// lower total price, then by insertion order.
func SelectBest(quotes []models.Quote) (models.Quote, error) {
	if len(quotes) == 0 {
		return models.Quote{}, ErrEmptyBatch
	}
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.Score > best.Score || (q.Score == best.Score && q.TotalPrice < best.TotalPrice) {
			best = q
		}
	}
	return best, nil
}

// SelectQuote marks the target quote selected and every competitor rejected,
// regardless of prior state. Re-running with the same id yields the same
// batch, so a double-click on the select button is harmless. The input slice
// is left untouched; the updated batch is returned.
func SelectQuote(quotes []models.Quote, id uuid.UUID) ([]models.Quote, error) {
	found := false
	for _, q := range quotes {
		if q.ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrQuoteNotFound
	}

	out := make([]models.Quote, len(quotes))
	copy(out, quotes)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = models.QuoteStatusSelected
		} else {
			out[i].Status = models.QuoteStatusRejected
		}
	}
	return out, nil
}
