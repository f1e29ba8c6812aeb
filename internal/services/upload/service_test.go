package upload

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func TestRowFromRecord(t *testing.T) {
	batchID := uuid.New()

	tests := []struct {
		name       string
		record     []string
		expectQty  float64
		expectName string
	}{
		{"full row", []string{"Çimento", "Portland Çimentosu", "50", "ton", "2024-01-15", "Şantiye A için"}, 50, "Portland Çimentosu"},
		{"comma decimal", []string{"Demir", "Nervürlü Demir", "12,5", "ton", "2024-01-20", ""}, 12.5, "Nervürlü Demir"},
		{"non numeric quantity", []string{"Tuğla", "Delikli Tuğla", "çok", "adet", "2024-01-10", ""}, 0, "Delikli Tuğla"},
		{"short record", []string{"Boya"}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rowFromRecord(batchID, 1, tt.record)
			if row.Quantity != tt.expectQty {
				t.Errorf("quantity = %v, want %v", row.Quantity, tt.expectQty)
			}
			if row.ProductName != tt.expectName {
				t.Errorf("product name = %q, want %q", row.ProductName, tt.expectName)
			}
			if row.UploadBatchID != batchID {
				t.Errorf("batch ID not carried over")
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	input := "Kategori,Ürün Adı,Miktar,Birim,Teslim Tarihi,Açıklama\n" +
		"Çimento,Portland Çimentosu,50,ton,2024-01-15,Şantiye A\n" +
		"Demir,Nervürlü Demir,10,ton,2024-01-20,\n"

	records, err := readCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readCSV returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records including header, got %d", len(records))
	}
	if records[1][1] != "Portland Çimentosu" {
		t.Errorf("record[1][1] = %q", records[1][1])
	}
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Kategori", "Ürün Adı", "Miktar", "Birim", "Teslim Tarihi"},
		{"Çimento", "Portland Çimentosu", 50, "ton", "2024-01-15"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to build test workbook: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize test workbook: %v", err)
	}

	records, err := readExcel(buf)
	if err != nil {
		t.Fatalf("readExcel returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
	if records[1][0] != "Çimento" {
		t.Errorf("records[1][0] = %q, want Çimento", records[1][0])
	}
}
