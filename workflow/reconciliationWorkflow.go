package workflow

import (
	"context"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/stockaudit_backend/config"
	"bitbucket.org/mmdatafocus/stockaudit_backend/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReconciliationResult is the complete output of one run. A caller holding a
// non-nil result holds all of it; a structural failure yields (nil, err) and
// nothing partial.
type ReconciliationResult struct {
	RunId       string
	GeneratedAt time.Time
	Rows        []*models.ReconciledRow
	// Count of keys present in both source reports.
	MatchedKeys int
}

// RunReconciliation cleans the movement log, parses the snapshot report,
// replays movements per key and classifies every snapshot record. The two
// inputs arrive already decoded; from here the run is one synchronous pass.
func RunReconciliation(ctx context.Context, movementRows []map[string]any, snapshotGrid [][]string, settings config.Settings) (*ReconciliationResult, error) {
	logger := config.GetLogger()
	runId := uuid.NewString()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		config.LogError(logger, "workflow", "RunReconciliation", "settings", settings, err)
		return nil, err
	}

	movements, err := models.CleanMovements(movementRows, settings)
	if err != nil {
		config.LogError(logger, "workflow", "RunReconciliation", "movement log", nil, err)
		return nil, err
	}
	snapshots, err := models.ParseSnapshot(snapshotGrid, settings)
	if err != nil {
		config.LogError(logger, "workflow", "RunReconciliation", "snapshot report", nil, err)
		return nil, err
	}

	expected := models.ExpectedOnHand(movements)
	lastCounts := models.LastEvents(movements, models.EventCategory{Name: "count-adjustment", Codes: config.CountAdjustmentCodes()})
	lastSales := models.LastEvents(movements, models.EventCategory{Name: "sale", Codes: config.SaleCodes()})
	lastReceipts := models.LastEvents(movements, models.EventCategory{Name: "receipt", Codes: config.ReceiptCodes()})
	losses := models.LossSums(movements, config.CountWriteDownCode())

	now := time.Now().UTC()
	rows := make([]*models.ReconciledRow, 0, len(snapshots))
	matched := 0
	for _, snap := range snapshots {
		if _, ok := expected[snap.Key]; ok {
			matched++
		}
		row := &models.ReconciledRow{
			Plant:           snap.Plant,
			Material:        snap.Material,
			StorageLocation: snap.StorageLocation,
			Description:     snap.Description,
			Key:             snap.Key,
			ReportedQty:     snap.ReportedQty,
			ExpectedQty:     expected[snap.Key],
			LastCount:       lastCounts[snap.Key],
			LastSale:        lastSales[snap.Key],
			LastReceipt:     lastReceipts[snap.Key],
			LossQty:         losses[snap.Key],
		}
		row.Delta = row.ReportedQty.Sub(row.ExpectedQty)
		row.DaysSinceCount = models.DaysSince(now, row.LastCount)
		row.DaysSinceSale = models.DaysSince(now, row.LastSale)
		row.DaysSinceReceipt = models.DaysSince(now, row.LastReceipt)
		row.Tier, row.Rationale = models.Classify(models.ClassifierInput{
			ReportedQty:      row.ReportedQty,
			ExpectedQty:      row.ExpectedQty,
			Delta:            row.Delta,
			Tolerance:        settings.DeltaTolerance,
			DaysSinceCount:   row.DaysSinceCount,
			DaysSinceSale:    row.DaysSinceSale,
			DaysSinceReceipt: row.DaysSinceReceipt,
			LossQty:          row.LossQty,
		})
		rows = append(rows, row)
	}

	sortRows(rows)

	logger.WithFields(logrus.Fields{
		"runId":       runId,
		"movements":   len(movements),
		"snapshots":   len(snapshots),
		"matchedKeys": matched,
	}).Info("reconciliation run complete")

	return &ReconciliationResult{
		RunId:       runId,
		GeneratedAt: now,
		Rows:        rows,
		MatchedKeys: matched,
	}, nil
}

// sortRows orders the result for review: stocked rows before empty ones,
// lowest confidence first within each group, biggest holdings first within a
// tier.
func sortRows(rows []*models.ReconciledRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		iStocked := rows[i].ReportedQty.IsPositive()
		jStocked := rows[j].ReportedQty.IsPositive()
		if iStocked != jStocked {
			return iStocked
		}
		if rows[i].Tier != rows[j].Tier {
			return rows[i].Tier < rows[j].Tier
		}
		return rows[i].ReportedQty.GreaterThan(rows[j].ReportedQty)
	})
}
