package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettingsValidate(t *testing.T) {
	ok := Settings{MaterialPadWidth: 18, StorageLocationPadWidth: 4}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}

	bad := Settings{MaterialPadWidth: -1}
	if err := bad.Validate(); err == nil {
		t.Fatal("negative pad width must be rejected")
	}

	bad = Settings{DeltaTolerance: decimal.NewFromInt(-1)}
	if err := bad.Validate(); err == nil {
		t.Fatal("negative tolerance must be rejected")
	}
}

func TestMovementTypeDefaults(t *testing.T) {
	t.Setenv("SOH_COUNT_ADJUSTMENT_CODES", "")
	t.Setenv("SOH_WRITE_DOWN_CODE", "")

	codes := CountAdjustmentCodes()
	if len(codes) != 2 || codes[0] != "701" || codes[1] != "702" {
		t.Fatalf("unexpected default count-adjustment codes %v", codes)
	}
	if got := CountWriteDownCode(); got != "702" {
		t.Fatalf("unexpected default write-down code %q", got)
	}

	t.Setenv("SOH_COUNT_ADJUSTMENT_CODES", " x01 , x02 ")
	codes = CountAdjustmentCodes()
	if len(codes) != 2 || codes[0] != "X01" || codes[1] != "X02" {
		t.Fatalf("env override not applied: %v", codes)
	}
}
