package models_test

import (
	"math"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/stockaudit_backend/models"
	"github.com/shopspring/decimal"
)

// healthyInput is a key with a perfect match and no demotion triggers:
// fresh receipt, fresh count, no write-down history.
func healthyInput() models.ClassifierInput {
	return models.ClassifierInput{
		ReportedQty:      decimal.NewFromInt(100),
		ExpectedQty:      decimal.NewFromInt(100),
		Delta:            decimal.Zero,
		Tolerance:        decimal.Zero,
		DaysSinceCount:   10,
		DaysSinceSale:    math.NaN(),
		DaysSinceReceipt: 30,
		LossQty:          decimal.Zero,
	}
}

func TestClassify_NoReportedStockShortCircuits(t *testing.T) {
	in := healthyInput()
	in.ReportedQty = decimal.Zero
	in.Delta = decimal.NewFromInt(-50)
	in.LossQty = decimal.NewFromInt(-10)

	tier, rationale := models.Classify(in)
	if tier != models.TierNA {
		t.Fatalf("expected N/A, got %s", tier)
	}
	if rationale != "No stock expected." {
		t.Fatalf("unexpected rationale %q", rationale)
	}
}

func TestClassify_ExactMatchStaysHigh(t *testing.T) {
	tier, rationale := models.Classify(healthyInput())
	if tier != models.TierHigh {
		t.Fatalf("expected HIGH, got %s (%s)", tier, rationale)
	}
}

func TestClassify_SmallDeltaIsMediumLargeDeltaIsLow(t *testing.T) {
	in := healthyInput()
	in.Delta = decimal.NewFromInt(3)
	if tier, _ := models.Classify(in); tier != models.TierMedium {
		t.Fatalf("delta 3 expected MEDIUM, got %s", tier)
	}

	in.Delta = decimal.NewFromInt(-40)
	if tier, _ := models.Classify(in); tier != models.TierLow {
		t.Fatalf("delta -40 expected LOW, got %s", tier)
	}
}

func TestClassify_RecentReceiptPromotesMediumOnly(t *testing.T) {
	in := healthyInput()
	in.Delta = decimal.NewFromInt(3)
	in.DaysSinceReceipt = 5
	if tier, _ := models.Classify(in); tier != models.TierHigh {
		t.Fatalf("recent receipt should lift MEDIUM to HIGH, got %s", tier)
	}

	in.Delta = decimal.NewFromInt(-40)
	if tier, _ := models.Classify(in); tier != models.TierLow {
		t.Fatalf("recent receipt must not lift LOW, got %s", tier)
	}
}

func TestClassify_StaleReceiptDemotesHighOnly(t *testing.T) {
	in := healthyInput()
	in.DaysSinceReceipt = math.NaN()
	if tier, _ := models.Classify(in); tier != models.TierMedium {
		t.Fatalf("no receipt should pull HIGH to MEDIUM, got %s", tier)
	}

	in = healthyInput()
	in.DaysSinceReceipt = 120
	in.Delta = decimal.NewFromInt(3)
	if tier, _ := models.Classify(in); tier != models.TierMedium {
		t.Fatalf("stale receipt must not touch MEDIUM, got %s", tier)
	}
}

func TestClassify_LossHistoryDemotesOneStep(t *testing.T) {
	in := healthyInput()
	in.LossQty = decimal.NewFromInt(-4)
	if tier, _ := models.Classify(in); tier != models.TierMedium {
		t.Fatalf("loss history should pull HIGH to MEDIUM, got %s", tier)
	}

	in.Delta = decimal.NewFromInt(3)
	if tier, _ := models.Classify(in); tier != models.TierLow {
		t.Fatalf("loss history should pull MEDIUM to LOW, got %s", tier)
	}
}

func TestClassify_CountAgeDemotesHighOnly(t *testing.T) {
	in := healthyInput()
	in.DaysSinceCount = math.NaN()
	if tier, _ := models.Classify(in); tier != models.TierMedium {
		t.Fatalf("missing count should pull HIGH to MEDIUM, got %s", tier)
	}

	in = healthyInput()
	in.DaysSinceCount = 365
	if tier, _ := models.Classify(in); tier != models.TierMedium {
		t.Fatalf("old count should pull HIGH to MEDIUM, got %s", tier)
	}
}

func TestClassify_RationaleKeepsFirstThreeLines(t *testing.T) {
	in := healthyInput()
	in.Delta = decimal.NewFromInt(-40)
	in.DaysSinceReceipt = math.NaN()
	in.DaysSinceSale = 2
	in.LossQty = decimal.NewFromInt(-4)
	in.DaysSinceCount = math.NaN()

	_, rationale := models.Classify(in)
	if strings.Count(rationale, ".") != 3 {
		t.Fatalf("expected exactly three rationale lines, got %q", rationale)
	}
	if !strings.HasPrefix(rationale, "Differs from movement history by -40.") {
		t.Fatalf("rationale lines must keep firing order, got %q", rationale)
	}
}
