package models

import (
	"github.com/shopspring/decimal"
)

// ReconciledRow joins one snapshot record with the replayed movement facts
// and the classifier verdict. One row per snapshot key, always; keys that
// only appear in the movement log never produce a row.
type ReconciledRow struct {
	Plant           string
	Material        string
	StorageLocation string
	Description     string
	Key             string

	ReportedQty decimal.Decimal
	ExpectedQty decimal.Decimal
	// Reported minus expected.
	Delta decimal.Decimal

	LastCount   *LastEvent
	LastSale    *LastEvent
	LastReceipt *LastEvent

	// Fractional days, NaN when the category has no event.
	DaysSinceCount   float64
	DaysSinceSale    float64
	DaysSinceReceipt float64

	LossQty decimal.Decimal

	Tier      Tier
	Rationale string
}
