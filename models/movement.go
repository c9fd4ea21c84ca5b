package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/stockaudit_backend/config"
	"bitbucket.org/mmdatafocus/stockaudit_backend/utils"
	"github.com/shopspring/decimal"
)

// Required columns of the movement-log export.
const (
	ColPlant           = "Plant"
	ColMaterial        = "Material"
	ColMaterialDesc    = "Material Description"
	ColStorageLocation = "Storage Location"
	ColMovementType    = "Movement Type"
	ColMovementText    = "Movement Type Text"
	ColPostingDate     = "Posting Date"
	ColTimeOfEntry     = "Time of Entry"
	ColQtyUnitOfEntry  = "Qty in Unit of Entry"
)

var movementColumns = []string{
	ColPlant,
	ColMaterial,
	ColMaterialDesc,
	ColStorageLocation,
	ColMovementType,
	ColMovementText,
	ColPostingDate,
	ColTimeOfEntry,
	ColQtyUnitOfEntry,
}

// MovementRecord is one cleaned movement-log row. Immutable once built.
type MovementRecord struct {
	Plant           string
	Material        string
	MaterialDesc    string
	StorageLocation string
	MvtCode         string
	MvtText         string
	// Posting date and time of entry merged; nil when the date cell was
	// unreadable.
	PostedAt *time.Time
	Qty      decimal.Decimal
	Key      string
}

// CleanMovements validates and normalizes the raw movement log. The only
// hard failure is a missing required column (*utils.SchemaError, every
// missing name collected in one pass); unreadable cells inside a row degrade
// to nil/zero and never abort the run.
//
// Output order: key ascending, then timestamp ascending within a key (nil
// timestamps sort as zero), stable on the original row order.
func CleanMovements(rows []map[string]any, settings config.Settings) ([]*MovementRecord, error) {
	if len(rows) > 0 {
		missing := make([]string, 0)
		for _, col := range movementColumns {
			if _, ok := rows[0][col]; !ok {
				missing = append(missing, col)
			}
		}
		if len(missing) > 0 {
			return nil, &utils.SchemaError{MissingColumns: missing}
		}
	}

	records := make([]*MovementRecord, 0, len(rows))
	for _, row := range rows {
		plant := NormalizeIntegerish(cellString(row[ColPlant]))
		material := NormalizeMaterial(cellString(row[ColMaterial]), settings.MaterialPadWidth)
		storLoc := NormalizeStorageLocation(cellString(row[ColStorageLocation]), settings.StorageLocationPadWidth)

		date := utils.ParseDate(row[ColPostingDate])
		clock := utils.ParseClockMillis(row[ColTimeOfEntry])

		qty, ok := utils.ParseQuantity(row[ColQtyUnitOfEntry])
		if !ok {
			qty = decimal.Zero
		}

		records = append(records, &MovementRecord{
			Plant:           plant,
			Material:        material,
			MaterialDesc:    strings.TrimSpace(cellString(row[ColMaterialDesc])),
			StorageLocation: storLoc,
			MvtCode:         NormalizeIntegerish(cellString(row[ColMovementType])),
			MvtText:         strings.TrimSpace(cellString(row[ColMovementText])),
			PostedAt:        utils.CombineDateAndClock(date, clock),
			Qty:             qty,
			Key:             MakeKey(plant, material, storLoc),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Key != records[j].Key {
			return records[i].Key < records[j].Key
		}
		return sortTime(records[i].PostedAt).Before(sortTime(records[j].PostedAt))
	})
	return records, nil
}

// sortTime collapses a missing timestamp to the zero time for ordering.
func sortTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
