package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Settings carries the knobs for one reconciliation run. A run takes its
// Settings by value; nothing here is shared or mutated between runs.
type Settings struct {
	// Zero-pad width applied to pure-digit material numbers. 0 disables.
	MaterialPadWidth int `validate:"gte=0"`
	// Zero-pad width applied to pure-digit storage locations. 0 disables.
	StorageLocationPadWidth int `validate:"gte=0"`
	// Absolute delta (reported vs expected) still counted as a match.
	DeltaTolerance decimal.Decimal
}

var settingsValidate = validator.New()

func (s Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return err
	}
	if s.DeltaTolerance.IsNegative() {
		return errors.New("delta tolerance must not be negative")
	}
	return nil
}

// DefaultSettings reads run defaults from env.
//
// Set via env:
// - SOH_MATERIAL_PAD_WIDTH (default 18, the ERP's zero-padded material width)
// - SOH_STORLOC_PAD_WIDTH (default 4)
// - SOH_DELTA_TOLERANCE (default 0)
func DefaultSettings() Settings {
	return Settings{
		MaterialPadWidth:        intFromEnv("SOH_MATERIAL_PAD_WIDTH", 18),
		StorageLocationPadWidth: intFromEnv("SOH_STORLOC_PAD_WIDTH", 4),
		DeltaTolerance:          decimalFromEnv("SOH_DELTA_TOLERANCE", decimal.Zero),
	}
}

func intFromEnv(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func decimalFromEnv(name string, fallback decimal.Decimal) decimal.Decimal {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		return fallback
	}
	return v
}
