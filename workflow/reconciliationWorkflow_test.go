package workflow

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/stockaudit_backend/config"
	"bitbucket.org/mmdatafocus/stockaudit_backend/models"
	"bitbucket.org/mmdatafocus/stockaudit_backend/utils"
	"github.com/shopspring/decimal"
)

// NOTE: These tests are intentionally file-free. They feed the workflow
// already-decoded documents and validate the run semantics: atomic failure,
// join/overlap accounting, and the review sort order.

func testMovementRow(material, date, qty, code string) map[string]any {
	return map[string]any{
		"Plant":                "1000",
		"Material":             material,
		"Material Description": "Widget " + material,
		"Storage Location":     "1",
		"Movement Type":        code,
		"Movement Type Text":   "type " + code,
		"Posting Date":         date,
		"Time of Entry":        "08:00",
		"Qty in Unit of Entry": qty,
	}
}

func testSnapshotBlock(material, closing string) [][]string {
	return [][]string{
		{"Plant 1000"},
		{"Material " + material},
		{"Description Widget " + material},
		{"Stock on 31.12.9999        " + closing + " EA"},
		{"", "Loca", "MvT"},
		{"", "1", "601"},
	}
}

func testSettings() config.Settings {
	return config.Settings{MaterialPadWidth: 6, StorageLocationPadWidth: 4}
}

func TestRunReconciliation_JoinsAndCountsOverlap(t *testing.T) {
	movements := []map[string]any{
		testMovementRow("123", "2024-03-01", "10", "101"),
		testMovementRow("123", "2024-03-02", "-3", "601"),
		testMovementRow("777", "2024-03-02", "4", "101"), // log-only key
	}
	grid := testSnapshotBlock("123", "7.0")
	grid = append(grid, testSnapshotBlock("555", "2.0")...) // snapshot-only key

	result, err := RunReconciliation(context.Background(), movements, grid, testSettings())
	if err != nil {
		t.Fatalf("RunReconciliation: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("every snapshot key yields exactly one row, got %d", len(result.Rows))
	}
	if result.MatchedKeys != 1 {
		t.Fatalf("expected 1 overlapping key, got %d", result.MatchedKeys)
	}
	if result.RunId == "" {
		t.Fatal("expected a run id")
	}

	var matched *models.ReconciledRow
	for _, row := range result.Rows {
		if row.Material == "000123" {
			matched = row
		}
	}
	if matched == nil {
		t.Fatal("missing reconciled row for material 000123")
	}
	if matched.ExpectedQty.String() != "7" {
		t.Fatalf("expected on-hand 7, got %s", matched.ExpectedQty)
	}
	if !matched.Delta.IsZero() {
		t.Fatalf("expected zero delta, got %s", matched.Delta)
	}
	if matched.LastReceipt == nil || matched.LastSale == nil {
		t.Fatal("expected receipt and sale last events")
	}
	if matched.LastCount != nil {
		t.Fatal("no count movements were posted, last count must stay absent")
	}
}

func TestRunReconciliation_SchemaFailureYieldsNothing(t *testing.T) {
	row := testMovementRow("123", "2024-03-01", "10", "101")
	delete(row, "Posting Date")

	result, err := RunReconciliation(context.Background(), []map[string]any{row}, testSnapshotBlock("123", "7.0"), testSettings())
	var schemaErr *utils.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if result != nil {
		t.Fatal("a failed run must not surface a partial result")
	}
}

func TestRunReconciliation_FormatFailureYieldsNothing(t *testing.T) {
	grid := [][]string{{"no structure at all"}}
	result, err := RunReconciliation(context.Background(), nil, grid, testSettings())
	var formatErr *utils.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if result != nil {
		t.Fatal("a failed run must not surface a partial result")
	}
}

func TestSortRows_StockedFirstThenLowestConfidence(t *testing.T) {
	rows := []*models.ReconciledRow{
		{Key: "na", ReportedQty: decimal.Zero, Tier: models.TierNA},
		{Key: "high", ReportedQty: decimal.NewFromInt(5), Tier: models.TierHigh},
		{Key: "low-small", ReportedQty: decimal.NewFromInt(2), Tier: models.TierLow},
		{Key: "low-big", ReportedQty: decimal.NewFromInt(50), Tier: models.TierLow},
		{Key: "medium", ReportedQty: decimal.NewFromInt(9), Tier: models.TierMedium},
	}
	sortRows(rows)

	order := make([]string, 0, len(rows))
	for _, r := range rows {
		order = append(order, r.Key)
	}
	expected := []string{"low-big", "low-small", "medium", "high", "na"}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("unexpected order %v, want %v", order, expected)
		}
	}
}
