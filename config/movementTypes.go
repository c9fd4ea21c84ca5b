package config

import (
	"os"
	"strings"
)

// Movement-type code sets used by the replay engine. The defaults are the
// ERP's standard codes; override per deployment via env when a site uses
// custom movement types.
//
// Set via env:
// - SOH_COUNT_ADJUSTMENT_CODES="701,702"
// - SOH_SALE_CODES="601,602"
// - SOH_RECEIPT_CODES="101"
// - SOH_WRITE_DOWN_CODE="702"
//
// Codes are case-insensitive and trimmed.

func CountAdjustmentCodes() []string {
	return codesFromEnv("SOH_COUNT_ADJUSTMENT_CODES", []string{"701", "702"})
}

func SaleCodes() []string {
	return codesFromEnv("SOH_SALE_CODES", []string{"601", "602"})
}

func ReceiptCodes() []string {
	return codesFromEnv("SOH_RECEIPT_CODES", []string{"101"})
}

// CountWriteDownCode is the count-adjustment code that books stock away
// (the loss side of the count-adjustment pair).
func CountWriteDownCode() string {
	raw := strings.ToUpper(strings.TrimSpace(os.Getenv("SOH_WRITE_DOWN_CODE")))
	if raw == "" {
		return "702"
	}
	return raw
}

func codesFromEnv(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	codes := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			codes = append(codes, part)
		}
	}
	if len(codes) == 0 {
		return fallback
	}
	return codes
}
