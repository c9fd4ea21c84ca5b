package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// EventCategory names a movement-type bucket and the codes that belong to it.
type EventCategory struct {
	Name  string
	Codes []string
}

// LastEvent is the most recent movement of a category for one key.
type LastEvent struct {
	Time    time.Time
	Qty     decimal.Decimal
	MvtCode string
	MvtText string
}

// ExpectedOnHand folds the signed quantities of every movement per key.
// Every movement contributes; no filtering by type.
func ExpectedOnHand(records []*MovementRecord) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		sums[r.Key] = sums[r.Key].Add(r.Qty)
	}
	return sums
}

// LastEvents finds, per key, the latest movement matching the category.
// Records without a timestamp never qualify. Only a strictly greater
// timestamp replaces the held candidate, so with time-ordered input the
// first event wins ties. Keys with no match are simply absent.
func LastEvents(records []*MovementRecord, category EventCategory) map[string]*LastEvent {
	codes := make(map[string]bool, len(category.Codes))
	for _, c := range category.Codes {
		codes[c] = true
	}
	latest := make(map[string]*LastEvent)
	for _, r := range records {
		if r.PostedAt == nil || !codes[r.MvtCode] {
			continue
		}
		held, ok := latest[r.Key]
		if ok && !r.PostedAt.After(held.Time) {
			continue
		}
		latest[r.Key] = &LastEvent{
			Time:    *r.PostedAt,
			Qty:     r.Qty,
			MvtCode: r.MvtCode,
			MvtText: r.MvtText,
		}
	}
	return latest
}

// LossSums totals the signed quantities booked under the count write-down
// code, per key. Every key seen in the log gets an entry, zero included.
func LossSums(records []*MovementRecord, writeDownCode string) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		if _, ok := sums[r.Key]; !ok {
			sums[r.Key] = decimal.Zero
		}
		if r.MvtCode == writeDownCode {
			sums[r.Key] = sums[r.Key].Add(r.Qty)
		}
	}
	return sums
}

// DaysSince returns the age of an event in fractional days, NaN when the
// event never happened. NaN propagates through the classifier; it is never
// treated as zero.
func DaysSince(now time.Time, event *LastEvent) float64 {
	if event == nil {
		return math.NaN()
	}
	return now.Sub(event.Time).Hours() / 24
}
