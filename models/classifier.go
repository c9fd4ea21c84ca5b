package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier is the classifier's confidence label. The ordinal values double as
// the report sort rank: lowest confidence surfaces first.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierNA
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "LOW"
	case TierMedium:
		return "MEDIUM"
	case TierHigh:
		return "HIGH"
	case TierNA:
		return "N/A"
	default:
		return "UNKNOWN"
	}
}

// demoteOneStep steps the tier down within LOW..HIGH. N/A never demotes.
func (t Tier) demoteOneStep() Tier {
	switch t {
	case TierHigh:
		return TierMedium
	case TierMedium:
		return TierLow
	default:
		return t
	}
}

// Rationale keeps the first three lines only; later signals still move the
// tier but no longer add text.
const maxRationaleLines = 3

// ClassifierInput is everything the rule sequence looks at for one key.
// Days-since values are NaN when that category has no event.
type ClassifierInput struct {
	ReportedQty      decimal.Decimal
	ExpectedQty      decimal.Decimal
	Delta            decimal.Decimal
	Tolerance        decimal.Decimal
	DaysSinceCount   float64
	DaysSinceSale    float64
	DaysSinceReceipt float64
	LossQty          decimal.Decimal
}

var smallDeltaBound = decimal.NewFromInt(5)

// Classify runs the fixed rule sequence and returns the confidence tier with
// its rationale. The rules are deliberate business policy, not derived from
// data; in particular demotions move one step at most and a stale receipt
// only ever pulls HIGH down to MEDIUM.
func Classify(in ClassifierInput) (Tier, string) {
	if !in.ReportedQty.IsPositive() {
		return TierNA, "No stock expected."
	}

	lines := make([]string, 0, maxRationaleLines)
	note := func(line string) {
		lines = append(lines, line)
	}

	tier := TierMedium
	absDelta := in.Delta.Abs()
	if absDelta.LessThanOrEqual(in.Tolerance) {
		note("Book quantity matches movement history.")
		tier = TierHigh
	} else {
		note(fmt.Sprintf("Differs from movement history by %s.", in.Delta.String()))
		if absDelta.LessThanOrEqual(smallDeltaBound) {
			tier = TierMedium
		} else {
			tier = TierLow
		}
	}

	if !math.IsNaN(in.DaysSinceReceipt) && in.DaysSinceReceipt <= 14 {
		note("Goods receipt within the last 14 days.")
		if tier == TierMedium {
			tier = TierHigh
		}
	} else if math.IsNaN(in.DaysSinceReceipt) || in.DaysSinceReceipt > 90 {
		note("No goods receipt in over 90 days.")
		if tier == TierHigh {
			tier = TierMedium
		}
	}

	if !math.IsNaN(in.DaysSinceSale) && in.DaysSinceSale <= 14 {
		note("Item is actively selling.")
	}

	if in.LossQty.IsNegative() {
		note("History of count write-downs.")
		tier = tier.demoteOneStep()
	}

	if math.IsNaN(in.DaysSinceCount) {
		note("Never adjusted by a physical count.")
		if tier == TierHigh {
			tier = TierMedium
		}
	} else if in.DaysSinceCount > 180 {
		note("Last count adjustment older than 180 days.")
		if tier == TierHigh {
			tier = TierMedium
		}
	}

	if len(lines) > maxRationaleLines {
		lines = lines[:maxRationaleLines]
	}
	return tier, strings.Join(lines, " ")
}
