package ranking

import (
	"errors"
	"testing"
	"time"

	"procurement-dashboard-backend/internal/models"

	"github.com/google/uuid"
)

func testQuote(totalPrice, reliability float64, days int) models.Quote {
	return models.Quote{
		ID:           uuid.New(),
		TotalPrice:   totalPrice,
		Reliability:  reliability,
		DeliveryDays: days,
		Status:       models.QuoteStatusPending,
	}
}

func TestScoreQuotes(t *testing.T) {
	quotes := []models.Quote{
		testQuote(92500, 95, 3),
		testQuote(96000, 88, 4),
		testQuote(105000, 82, 5),
	}

	breakdowns := ScoreQuotes(quotes)
	if len(breakdowns) != 3 {
		t.Fatalf("expected 3 breakdowns, got %d", len(breakdowns))
	}

	// Cheapest and fastest quote must top both relative sub-scores.
	if breakdowns[0].PriceScore != 100 {
		t.Errorf("cheapest quote price score = %v, want 100", breakdowns[0].PriceScore)
	}
	if breakdowns[0].DeliveryScore != 100 {
		t.Errorf("fastest quote delivery score = %v, want 100", breakdowns[0].DeliveryScore)
	}

	// The first quote wins on every factor, so it must rank highest.
	if quotes[0].Score <= quotes[1].Score || quotes[1].Score <= quotes[2].Score {
		t.Errorf("scores not strictly ordered: %d, %d, %d",
			quotes[0].Score, quotes[1].Score, quotes[2].Score)
	}

	// Deterministic: same input, same output.
	again := []models.Quote{
		testQuote(92500, 95, 3),
		testQuote(96000, 88, 4),
		testQuote(105000, 82, 5),
	}
	ScoreQuotes(again)
	for i := range quotes {
		if quotes[i].Score != again[i].Score {
			t.Errorf("score not deterministic at %d: %d vs %d", i, quotes[i].Score, again[i].Score)
		}
	}
}

func TestScoreQuotesMonotonicInPrice(t *testing.T) {
	quotes := []models.Quote{
		testQuote(1000, 50, 3),
		testQuote(2000, 50, 3),
		testQuote(3000, 50, 3),
	}
	breakdowns := ScoreQuotes(quotes)
	for i := 1; i < len(breakdowns); i++ {
		if breakdowns[i].PriceScore > breakdowns[i-1].PriceScore {
			t.Errorf("price score increased with price: %v after %v",
				breakdowns[i].PriceScore, breakdowns[i-1].PriceScore)
		}
	}
}

func TestScoreQuotesEmptyBatch(t *testing.T) {
	if got := ScoreQuotes(nil); got != nil {
		t.Errorf("ScoreQuotes(nil) = %v, want nil", got)
	}
}

func TestScoreRange(t *testing.T) {
	quotes := []models.Quote{
		{TotalPrice: 100, Reliability: 150, DeliveryDays: 1, QualityScore: 100, HistoryScore: 100},
		{TotalPrice: 99999, Reliability: -5, DeliveryDays: 90},
	}
	ScoreQuotes(quotes)
	for i, q := range quotes {
		if q.Score < 0 || q.Score > 100 {
			t.Errorf("quote %d score %d outside [0,100]", i, q.Score)
		}
	}
}

func TestParseLeadTimeDays(t *testing.T) {
	tests := []struct {
		in     string
		expect int
	}{
		{"2-3 gün", 2},
		{"5 gün", 5},
		{"aynı gün", 0},
		{"", 0},
		{"10-12 gün", 10},
		{"yaklaşık 7 gün", 7},
	}

	for _, tt := range tests {
		if got := ParseLeadTimeDays(tt.in); got != tt.expect {
			t.Errorf("ParseLeadTimeDays(%q) = %d, want %d", tt.in, got, tt.expect)
		}
	}
}

func TestFilter(t *testing.T) {
	quotes := []models.Quote{
		{Score: 92, DeliveryDays: 2, Savings: 7500},
		{Score: 78, DeliveryDays: 4},
		{Score: 85, DeliveryDays: 5},
	}

	tests := []struct {
		name   string
		filter string
		expect int
	}{
		{"all keeps everything", "all", 3},
		{"empty name keeps everything", "", 3},
		{"high score", "highScore", 2},
		{"fast delivery", "fastDelivery", 1},
		{"has savings", "hasSavings", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(quotes, tt.filter)
			if err != nil {
				t.Fatalf("Filter(%q) returned error: %v", tt.filter, err)
			}
			if len(got) != tt.expect {
				t.Errorf("Filter(%q) kept %d quotes, want %d", tt.filter, len(got), tt.expect)
			}
		})
	}
}

func TestFilterUnknownName(t *testing.T) {
	_, err := Filter([]models.Quote{{}}, "cheapestOnly")
	if !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	quotes := []models.Quote{
		{SupplierName: "Akçansa Çimento", Product: "Portland Çimentosu"},
		{SupplierName: "Nuh Çimento", Product: "Portland Çimentosu"},
	}
	if got := Search(quotes, "akçansa"); len(got) != 1 {
		t.Errorf("Search(akçansa) kept %d quotes, want 1", len(got))
	}
	if got := Search(quotes, "portland"); len(got) != 2 {
		t.Errorf("Search(portland) kept %d quotes, want 2", len(got))
	}
	if got := Search(quotes, ""); len(got) != 2 {
		t.Errorf("Search with empty term kept %d quotes, want 2", len(got))
	}
}

func TestSortPrice(t *testing.T) {
	quotes := []models.Quote{
		{TotalPrice: 105000},
		{TotalPrice: 92500},
		{TotalPrice: 96000},
	}
	got := Sort(quotes, "price")
	for i := 1; i < len(got); i++ {
		if got[i].TotalPrice < got[i-1].TotalPrice {
			t.Errorf("price sort not non-decreasing at %d", i)
		}
	}
	// Input order untouched.
	if quotes[0].TotalPrice != 105000 {
		t.Error("Sort mutated its input")
	}
}

func TestSortScore(t *testing.T) {
	quotes := []models.Quote{
		{Score: 65},
		{Score: 92},
		{Score: 78},
	}
	got := Sort(quotes, "score")
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("score sort not non-increasing at %d", i)
		}
	}
}

func TestSortDelivery(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	quotes := []models.Quote{
		{DeliveryDate: day(20)},
		{DeliveryDate: day(15)},
		{DeliveryDate: day(17)},
	}
	got := Sort(quotes, "delivery")
	for i := 1; i < len(got); i++ {
		if got[i].DeliveryDate.Before(got[i-1].DeliveryDate) {
			t.Errorf("delivery sort not ascending at %d", i)
		}
	}
}

func TestSortStable(t *testing.T) {
	// Equal scores keep their original order.
	a := testQuote(100, 0, 0)
	b := testQuote(200, 0, 0)
	got := Sort([]models.Quote{a, b}, "score")
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("equal-score quotes reordered")
	}
}

func TestSelectBest(t *testing.T) {
	quotes := []models.Quote{
		testQuote(92500, 95, 3),
		testQuote(96000, 88, 4),
		testQuote(105000, 82, 5),
	}
	ScoreQuotes(quotes)

	best, err := SelectBest(quotes)
	if err != nil {
		t.Fatalf("SelectBest returned error: %v", err)
	}
	if best.ID != quotes[0].ID {
		t.Errorf("best quote = %v, want the cheapest/fastest/most reliable one", best.ID)
	}
	for _, q := range quotes {
		if q.Score > best.Score {
			t.Errorf("quote %v outranks the selected best", q.ID)
		}
	}
}

func TestSelectBestTieBreaks(t *testing.T) {
	a := testQuote(200, 0, 0)
	b := testQuote(100, 0, 0)
	c := testQuote(100, 0, 0)
	a.Score, b.Score, c.Score = 80, 80, 80

	best, err := SelectBest([]models.Quote{a, b, c})
	if err != nil {
		t.Fatalf("SelectBest returned error: %v", err)
	}
	// Same score: cheaper wins; same price: earlier wins.
	if best.ID != b.ID {
		t.Errorf("tie-break picked %v, want the earlier cheaper quote", best.ID)
	}
}

func TestSelectBestEmptyBatch(t *testing.T) {
	_, err := SelectBest(nil)
	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestSelectQuote(t *testing.T) {
	quotes := []models.Quote{
		testQuote(92500, 95, 3),
		testQuote(96000, 88, 4),
		testQuote(105000, 82, 5),
	}
	target := quotes[1].ID

	updated, err := SelectQuote(quotes, target)
	if err != nil {
		t.Fatalf("SelectQuote returned error: %v", err)
	}

	selected := 0
	for _, q := range updated {
		switch {
		case q.ID == target:
			if q.Status != models.QuoteStatusSelected {
				t.Errorf("target quote status = %s, want selected", q.Status)
			}
			selected++
		case q.Status != models.QuoteStatusRejected:
			t.Errorf("competitor status = %s, want rejected", q.Status)
		}
	}
	if selected != 1 {
		t.Errorf("selected count = %d, want exactly 1", selected)
	}

	// Input batch untouched.
	for _, q := range quotes {
		if q.Status != models.QuoteStatusPending {
			t.Error("SelectQuote mutated its input")
		}
	}

	// Idempotent: selecting the same quote again changes nothing.
	again, err := SelectQuote(updated, target)
	if err != nil {
		t.Fatalf("second SelectQuote returned error: %v", err)
	}
	for i := range again {
		if again[i].Status != updated[i].Status {
			t.Errorf("second select changed status of quote %d", i)
		}
	}
}

func TestSelectQuoteNotFound(t *testing.T) {
	quotes := []models.Quote{testQuote(100, 50, 2)}
	_, err := SelectQuote(quotes, uuid.New())
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Errorf("expected ErrQuoteNotFound, got %v", err)
	}
	if quotes[0].Status != models.QuoteStatusPending {
		t.Error("failed selection modified the batch")
	}
}
