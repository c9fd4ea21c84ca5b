package utils

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadNamedRows decodes a sheet into one map per data row, keyed by the
// trimmed header names of the first row. Cells beyond the header width are
// dropped; short rows simply lack those keys. Sheet "" means the first sheet.
func ReadNamedRows(f *excelize.File, sheet string) ([]map[string]any, error) {
	sheet, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %v", sheet, err)
	}
	if len(rows) == 0 {
		return []map[string]any{}, nil
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	out := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		named := make(map[string]any, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				named[h] = row[i]
			} else {
				named[h] = ""
			}
		}
		out = append(out, named)
	}
	return out, nil
}

// ReadRawGrid decodes a sheet as a plain 2-D grid of raw cell strings.
func ReadRawGrid(f *excelize.File, sheet string) ([][]string, error) {
	sheet, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %v", sheet, err)
	}
	return rows, nil
}

func resolveSheet(f *excelize.File, sheet string) (string, error) {
	if strings.TrimSpace(sheet) != "" {
		return sheet, nil
	}
	name := f.GetSheetName(0)
	if name == "" {
		return "", ErrorNoSheets
	}
	return name, nil
}
