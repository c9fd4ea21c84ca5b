package models

import (
	"regexp"
	"strings"
)

// KeyDelimiter never occurs inside a normalized field (fields are digit runs
// or trimmed text from single spreadsheet cells), so joined keys stay
// injective under exact string comparison.
const KeyDelimiter = "|"

var (
	trailingZeroFractionRe = regexp.MustCompile(`^(\d+)\.0+$`)
	allDigitsRe            = regexp.MustCompile(`^\d+$`)
)

// NormalizeIntegerish trims a raw identifier and collapses the float-export
// artifact of integer ids ("1000.0" for plant 1000). Idempotent: a second
// pass returns its input unchanged.
func NormalizeIntegerish(value string) string {
	v := strings.TrimSpace(value)
	if m := trailingZeroFractionRe.FindStringSubmatch(v); m != nil {
		return m[1]
	}
	return v
}

// NormalizeMaterial canonicalizes a material number. Pure-digit materials are
// zero-left-padded to padWidth (the ERP stores them padded); anything with a
// non-digit passes through untouched.
func NormalizeMaterial(value string, padWidth int) string {
	return padDigits(NormalizeIntegerish(value), padWidth)
}

// NormalizeStorageLocation canonicalizes a storage location the same way.
func NormalizeStorageLocation(value string, padWidth int) string {
	return padDigits(NormalizeIntegerish(value), padWidth)
}

func padDigits(v string, padWidth int) string {
	if padWidth <= 0 || len(v) >= padWidth || !allDigitsRe.MatchString(v) {
		return v
	}
	return strings.Repeat("0", padWidth-len(v)) + v
}

// MakeKey derives the join key for a stock-keeping unit. Inputs must already
// be normalized; keys compare by exact string equality only.
func MakeKey(plant, material, storageLocation string) string {
	return plant + KeyDelimiter + material + KeyDelimiter + storageLocation
}
