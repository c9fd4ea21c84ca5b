package utils

import (
	"errors"
	"strings"
)

var ErrorNoSheets = errors.New("workbook has no sheets")

// SchemaError reports every required movement-log column that is absent,
// collected in one pass so the caller can fix the export in one go.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return "movement log is missing required columns: " + strings.Join(e.MissingColumns, ", ")
}

// FormatError reports a snapshot document whose structure could not be
// recovered at all. Per-line noise inside a recognizable document is
// tolerated and never raises this.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "snapshot report format: " + e.Reason
}
