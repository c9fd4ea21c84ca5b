package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Excel serial-date convention (1900 epoch): serial 25569 is 1970-01-01.
const (
	excelEpochSerial = 25569
	// 9999-12-31 in the 1900 epoch; serials outside (0, max] are not dates.
	excelMaxSerial = 2958465
)

// ParseQuantity parses a user- or export-formatted quantity. Accepts native
// numerics and strings with thousands separators, surrounding currency noise
// and the ERP's trailing-minus convention ("1,234.5-"). Reports ok=false on
// anything it cannot read; callers default to zero, never fail the row.
func ParseQuantity(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false
		}
		s = strings.ReplaceAll(s, ",", "")
		neg := false
		if strings.HasPrefix(s, "-") {
			neg = true
			s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
		}
		if strings.HasSuffix(s, "-") {
			neg = true
			s = strings.TrimSpace(strings.TrimSuffix(s, "-"))
		}
		// Keep digits and '.' only; drops unit tokens glued to the number.
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			if (r >= '0' && r <= '9') || r == '.' {
				b.WriteRune(r)
			} else {
				break
			}
		}
		clean := b.String()
		if clean == "" || clean == "." {
			return decimal.Zero, false
		}
		if neg {
			clean = "-" + clean
		}
		d, err := decimal.NewFromString(clean)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate reads a posting-date cell: a native time value, an excel
// 1900-epoch date serial, or a parseable date string. The result is
// truncated to midnight UTC; time-of-day lives in a separate column.
// Returns nil when the cell is not a readable date.
func ParseDate(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return dateOnly(v.UTC())
	case *time.Time:
		if v == nil {
			return nil
		}
		return dateOnly(v.UTC())
	case float64:
		return serialToDate(v)
	case int:
		return serialToDate(float64(v))
	case int64:
		return serialToDate(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOnly(t.UTC())
			}
		}
		// Raw-value workbook reads hand date cells over as serial strings.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return serialToDate(f)
		}
		return nil
	default:
		return nil
	}
}

func serialToDate(serial float64) *time.Time {
	if serial <= 0 || serial > excelMaxSerial {
		return nil
	}
	t := time.Unix(int64((serial-excelEpochSerial)*86400), 0).UTC()
	return dateOnly(t)
}

func dateOnly(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseClockMillis reads a time-of-entry cell into milliseconds since
// midnight. Accepts a fractional-day numeric or an "HH:MM[:SS]" string;
// anything else reads as midnight.
func ParseClockMillis(value any) int64 {
	switch v := value.(type) {
	case float64:
		return fractionToMillis(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		parts := strings.Split(s, ":")
		if len(parts) == 2 || len(parts) == 3 {
			h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
			m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
			sec := 0
			var errS error
			if len(parts) == 3 {
				sec, errS = strconv.Atoi(strings.TrimSpace(parts[2]))
			}
			if errH == nil && errM == nil && errS == nil &&
				h >= 0 && h < 24 && m >= 0 && m < 60 && sec >= 0 && sec < 60 {
				return (int64(h)*3600 + int64(m)*60 + int64(sec)) * 1000
			}
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fractionToMillis(f)
		}
		return 0
	default:
		return 0
	}
}

func fractionToMillis(f float64) int64 {
	if f < 0 || f >= 1 {
		return 0
	}
	return int64(f * 86400000)
}

// CombineDateAndClock glues a posting date and a time-of-entry offset into
// one timestamp. A nil date stays nil regardless of the clock.
func CombineDateAndClock(date *time.Time, clockMillis int64) *time.Time {
	if date == nil {
		return nil
	}
	t := date.Add(time.Duration(clockMillis) * time.Millisecond)
	return &t
}

// FormatTimestamp renders a timestamp for flat exports, empty when absent.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
