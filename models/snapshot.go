package models

import (
	"regexp"
	"strings"

	"bitbucket.org/mmdatafocus/stockaudit_backend/config"
	"bitbucket.org/mmdatafocus/stockaudit_backend/utils"
	"github.com/shopspring/decimal"
)

// MultiStorageLocation marks a snapshot block that listed movements for more
// than one storage location; the block-level quantity cannot be pinned to a
// single location.
const MultiStorageLocation = "MULTI"

// Per-block scan cap over non-empty first-column lines. Snapshot exports pad
// blocks with page-break noise; everything meaningful sits well inside this.
const blockLineScanLimit = 140

// The source system renders the closing balance as a far-future snapshot
// line. The numeric value is searched only after this marker so the digits
// of the date itself never match.
const closingStockMarker = "Stock on 31.12.9999"

const blockStartPrefix = "Plant"

var (
	plantLineRe    = regexp.MustCompile(`Plant\D*(\d+)`)
	materialLineRe = regexp.MustCompile(`\bMaterial\b\D*(\d+)`)
	closingQtyRe   = regexp.MustCompile(`(\d[\d.,]*)\s*(-)?\s*(?:EA|PC|ST|KG|L)?\s*(-)?`)
)

// SnapshotRecord is one recovered stock-on-hand row.
type SnapshotRecord struct {
	Plant           string
	Material        string
	StorageLocation string
	Description     string
	ReportedQty     decimal.Decimal
	Key             string
}

// ParseSnapshot recovers one SnapshotRecord per hierarchical block of the
// stock-on-hand report. A block begins at every row whose trimmed first cell
// starts with "Plant" and runs to the next such row or the end of the grid.
// A document with no blocks at all fails with *utils.FormatError; anything
// less structural degrades per field.
//
// Duplicate keys across blocks collapse to the first block's record.
func ParseSnapshot(grid [][]string, settings config.Settings) ([]*SnapshotRecord, error) {
	starts := make([]int, 0)
	for i, row := range grid {
		if strings.HasPrefix(strings.TrimSpace(cell(row, 0)), blockStartPrefix) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil, &utils.FormatError{Reason: "no blocks found"}
	}

	records := make([]*SnapshotRecord, 0, len(starts))
	seen := make(map[string]bool, len(starts))
	for b, start := range starts {
		end := len(grid)
		if b+1 < len(starts) {
			end = starts[b+1]
		}
		rec := parseBlock(grid[start:end], settings)
		if seen[rec.Key] {
			continue
		}
		seen[rec.Key] = true
		records = append(records, rec)
	}
	return records, nil
}

// blockFields accumulates per-block detector results.
type blockFields struct {
	plant       string
	material    string
	description string
	closingQty  decimal.Decimal
}

// A lineDetector inspects one first-column line and either claims a value or
// passes. Detectors run first-match-wins, independently of each other.
type lineDetector struct {
	match  func(index int, line string) (string, bool)
	assign func(f *blockFields, value string)
	done   bool
}

func blockDetectors() []*lineDetector {
	return []*lineDetector{
		{
			// Plant id only ever appears on the block's opening line.
			match: func(index int, line string) (string, bool) {
				if index != 0 {
					return "", false
				}
				m := plantLineRe.FindStringSubmatch(line)
				if m == nil {
					return "", false
				}
				return m[1], true
			},
			assign: func(f *blockFields, value string) { f.plant = value },
		},
		{
			match: func(_ int, line string) (string, bool) {
				m := materialLineRe.FindStringSubmatch(line)
				if m == nil {
					return "", false
				}
				return m[1], true
			},
			assign: func(f *blockFields, value string) { f.material = value },
		},
		{
			match: func(_ int, line string) (string, bool) {
				if !strings.HasPrefix(line, "Description") {
					return "", false
				}
				return strings.TrimSpace(strings.TrimPrefix(line, "Description")), true
			},
			assign: func(f *blockFields, value string) { f.description = value },
		},
		{
			match: matchClosingStock,
			assign: func(f *blockFields, value string) {
				// Parsed through the shared quantity parser so thousands
				// separators behave like everywhere else.
				if qty, ok := utils.ParseQuantity(value); ok {
					f.closingQty = qty
				}
			},
		},
	}
}

// matchClosingStock claims the closing balance line: the fixed marker prefix,
// then a number, optionally a trailing minus and/or a unit token. The minus
// may sit before or after the unit; either negates.
func matchClosingStock(_ int, line string) (string, bool) {
	if !strings.HasPrefix(line, closingStockMarker) {
		return "", false
	}
	rest := line[len(closingStockMarker):]
	m := closingQtyRe.FindStringSubmatch(rest)
	if m == nil {
		return "", false
	}
	value := m[1]
	if m[2] == "-" || m[3] == "-" {
		value = "-" + value
	}
	return value, true
}

func parseBlock(block [][]string, settings config.Settings) *SnapshotRecord {
	detectors := blockDetectors()
	fields := &blockFields{}

	scanned := 0
	for _, row := range block {
		line := strings.TrimSpace(cell(row, 0))
		if line == "" {
			continue
		}
		if scanned >= blockLineScanLimit {
			break
		}
		for _, d := range detectors {
			if d.done {
				continue
			}
			value, ok := d.match(scanned, line)
			if !ok {
				continue
			}
			d.done = true
			d.assign(fields, value)
		}
		scanned++
	}

	storLoc := inferStorageLocation(block, settings)

	plant := NormalizeIntegerish(fields.plant)
	material := NormalizeMaterial(fields.material, settings.MaterialPadWidth)
	return &SnapshotRecord{
		Plant:           plant,
		Material:        material,
		StorageLocation: storLoc,
		Description:     fields.description,
		ReportedQty:     fields.closingQty,
		Key:             MakeKey(plant, material, storLoc),
	}
}

// inferStorageLocation scans the full 2-D block for the movement sub-table
// header ("Loca" / "MvT" in columns two and three) and collects the distinct
// normalized locations listed under it. One distinct value wins outright;
// several collapse to the MULTI sentinel; none leaves the field empty.
func inferStorageLocation(block [][]string, settings config.Settings) string {
	headerRow := -1
	for i, row := range block {
		if strings.TrimSpace(cell(row, 1)) == "Loca" && strings.TrimSpace(cell(row, 2)) == "MvT" {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return ""
	}

	distinct := make([]string, 0, 1)
	seen := make(map[string]bool)
	for _, row := range block[headerRow+1:] {
		candidate := strings.TrimSpace(cell(row, 1))
		if candidate == "" {
			continue
		}
		normalized := NormalizeStorageLocation(candidate, settings.StorageLocationPadWidth)
		if !seen[normalized] {
			seen[normalized] = true
			distinct = append(distinct, normalized)
		}
	}
	switch len(distinct) {
	case 0:
		return ""
	case 1:
		return distinct[0]
	default:
		return MultiStorageLocation
	}
}

// cell reads a grid cell, treating ragged short rows as empty cells.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
