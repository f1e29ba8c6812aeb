package procurement

import (
	"testing"

	"procurement-dashboard-backend/internal/models"
)

func TestSnapshotSupplier(t *testing.T) {
	supplier := models.Supplier{
		Name:         "Akçansa Çimento",
		Rating:       4.8,
		Location:     "İstanbul",
		LeadTimeText: "2-3 gün",
		Reliability:  95,
		QualityScore: 90,
		HistoryScore: 85,
	}

	t.Run("empty input takes the full profile", func(t *testing.T) {
		got := snapshotSupplier(QuoteInput{}, supplier)
		if got.SupplierName != supplier.Name {
			t.Errorf("name = %q, want %q", got.SupplierName, supplier.Name)
		}
		if got.SupplierRating != supplier.Rating {
			t.Errorf("rating = %v, want %v", got.SupplierRating, supplier.Rating)
		}
		if got.SupplierLocation != supplier.Location {
			t.Errorf("location = %q, want %q", got.SupplierLocation, supplier.Location)
		}
		if got.LeadTimeText != supplier.LeadTimeText {
			t.Errorf("lead time = %q, want %q", got.LeadTimeText, supplier.LeadTimeText)
		}
		if got.Reliability != supplier.Reliability {
			t.Errorf("reliability = %v, want %v", got.Reliability, supplier.Reliability)
		}
		if got.QualityScore != supplier.QualityScore {
			t.Errorf("quality = %v, want %v", got.QualityScore, supplier.QualityScore)
		}
		if got.HistoryScore != supplier.HistoryScore {
			t.Errorf("history = %v, want %v", got.HistoryScore, supplier.HistoryScore)
		}
	})

	t.Run("quote-specific values win over the profile", func(t *testing.T) {
		in := QuoteInput{
			LeadTimeText: "5 gün", // request-specific lead time
			Reliability:  80,
		}
		got := snapshotSupplier(in, supplier)
		if got.LeadTimeText != "5 gün" {
			t.Errorf("lead time overwritten: %q", got.LeadTimeText)
		}
		if got.Reliability != 80 {
			t.Errorf("reliability overwritten: %v", got.Reliability)
		}
		// Unset fields still come from the profile.
		if got.SupplierName != supplier.Name {
			t.Errorf("name = %q, want %q", got.SupplierName, supplier.Name)
		}
	})
}
