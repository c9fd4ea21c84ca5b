package reports

import (
	"bitbucket.org/mmdatafocus/stockaudit_backend/models"
	"bitbucket.org/mmdatafocus/stockaudit_backend/utils"
	"github.com/shopspring/decimal"
)

// SohConfidenceRow is the flat, export-ready rendering of one reconciled
// row. Timestamps render as "YYYY-MM-DD HH:MM:SS", empty when absent;
// last-event quantities are nil when the category has no event.
type SohConfidenceRow struct {
	Plant               string
	Material            string
	StorageLocation     string
	MaterialDescription string

	ReportedQty decimal.Decimal
	ExpectedQty decimal.Decimal
	Delta       decimal.Decimal

	Tier      string
	Rationale string

	LastCountAt    string
	LastCountQty   *decimal.Decimal
	LastSaleAt     string
	LastSaleQty    *decimal.Decimal
	LastReceiptAt  string
	LastReceiptQty *decimal.Decimal

	LossQty decimal.Decimal
}

// FlattenRows converts reconciled rows into export rows, order preserved.
func FlattenRows(rows []*models.ReconciledRow) []*SohConfidenceRow {
	out := make([]*SohConfidenceRow, 0, len(rows))
	for _, r := range rows {
		flat := &SohConfidenceRow{
			Plant:               r.Plant,
			Material:            r.Material,
			StorageLocation:     r.StorageLocation,
			MaterialDescription: r.Description,
			ReportedQty:         r.ReportedQty,
			ExpectedQty:         r.ExpectedQty,
			Delta:               r.Delta,
			Tier:                r.Tier.String(),
			Rationale:           r.Rationale,
			LossQty:             r.LossQty,
		}
		flat.LastCountAt, flat.LastCountQty = renderEvent(r.LastCount)
		flat.LastSaleAt, flat.LastSaleQty = renderEvent(r.LastSale)
		flat.LastReceiptAt, flat.LastReceiptQty = renderEvent(r.LastReceipt)
		out = append(out, flat)
	}
	return out
}

func renderEvent(e *models.LastEvent) (string, *decimal.Decimal) {
	if e == nil {
		return "", nil
	}
	qty := e.Qty
	return utils.FormatTimestamp(&e.Time), &qty
}
