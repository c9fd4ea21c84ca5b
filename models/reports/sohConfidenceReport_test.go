package reports

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/stockaudit_backend/models"
	"github.com/shopspring/decimal"
)

func TestFlattenRows_RendersEventsAndBlanks(t *testing.T) {
	saleAt := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	rows := []*models.ReconciledRow{
		{
			Plant:           "1000",
			Material:        "000123",
			StorageLocation: "0001",
			Description:     "Widget",
			ReportedQty:     decimal.NewFromInt(9),
			ExpectedQty:     decimal.NewFromInt(7),
			Delta:           decimal.NewFromInt(2),
			LastSale:        &models.LastEvent{Time: saleAt, Qty: decimal.NewFromInt(-2), MvtCode: "601"},
			LossQty:         decimal.Zero,
			Tier:            models.TierMedium,
			Rationale:       "Differs from movement history by 2.",
		},
	}

	flat := FlattenRows(rows)
	if len(flat) != 1 {
		t.Fatalf("expected 1 export row, got %d", len(flat))
	}
	row := flat[0]
	if row.Tier != "MEDIUM" {
		t.Fatalf("expected MEDIUM, got %q", row.Tier)
	}
	if row.LastSaleAt != "2024-03-15 08:30:00" {
		t.Fatalf("unexpected sale timestamp %q", row.LastSaleAt)
	}
	if row.LastSaleQty == nil || row.LastSaleQty.String() != "-2" {
		t.Fatalf("unexpected sale qty %v", row.LastSaleQty)
	}
	if row.LastCountAt != "" || row.LastCountQty != nil {
		t.Fatal("absent events must render blank")
	}
}

func TestBuildXlsx_WritesHeadingAndDataRows(t *testing.T) {
	rows := []*models.ReconciledRow{
		{
			Plant:       "1000",
			Material:    "000123",
			ReportedQty: decimal.NewFromInt(9),
			Tier:        models.TierLow,
			Rationale:   "Differs from movement history by 9.",
		},
	}
	f, err := BuildXlsx(rows)
	if err != nil {
		t.Fatalf("BuildXlsx: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Sheet1", "A1"); got != "Plant" {
		t.Fatalf("expected heading Plant, got %q", got)
	}
	if got, _ := f.GetCellValue("Sheet1", "H2"); got != "LOW" {
		t.Fatalf("expected tier LOW in column H, got %q", got)
	}
	if got, _ := f.GetCellValue("Sheet1", "A2"); got != "1000" {
		t.Fatalf("expected plant 1000, got %q", got)
	}
}
