package reports

import (
	"fmt"

	"bitbucket.org/mmdatafocus/stockaudit_backend/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var exportHeadings = []string{
	"Plant",
	"Material",
	"Storage Location",
	"Material Description",
	"SOH Qty",
	"Expected Qty",
	"Delta",
	"Confidence",
	"Rationale",
	"Last Count",
	"Last Count Qty",
	"Last Sale",
	"Last Sale Qty",
	"Last Receipt",
	"Last Receipt Qty",
	"Write-Down Qty",
}

// BuildXlsx renders reconciled rows into a workbook, one row per key plus a
// heading row.
func BuildXlsx(rows []*models.ReconciledRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Sheet1"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeadings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for rowNo, flat := range FlattenRows(rows) {
		values := []any{
			flat.Plant,
			flat.Material,
			flat.StorageLocation,
			flat.MaterialDescription,
			flat.ReportedQty.InexactFloat64(),
			flat.ExpectedQty.InexactFloat64(),
			flat.Delta.InexactFloat64(),
			flat.Tier,
			flat.Rationale,
			flat.LastCountAt,
			eventQtyCell(flat.LastCountQty),
			flat.LastSaleAt,
			eventQtyCell(flat.LastSaleQty),
			flat.LastReceiptAt,
			eventQtyCell(flat.LastReceiptQty),
			flat.LossQty.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNo+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// ExportXlsx writes the confidence report to disk.
func ExportXlsx(rows []*models.ReconciledRow, filename string) error {
	f, err := BuildXlsx(rows)
	if err != nil {
		return fmt.Errorf("unable to build report workbook: %v", err)
	}
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("unable to save report workbook: %v", err)
	}
	return nil
}

func eventQtyCell(qty *decimal.Decimal) any {
	if qty == nil {
		return ""
	}
	return qty.InexactFloat64()
}
