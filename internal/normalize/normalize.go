// Package normalize converts the loosely formatted strings produced by
// document extraction into comparable values. Every parser is total: bad
// input yields ok=false, never a panic.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a parsed calendar date. Zero value is not a valid date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Time converts to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// Equal reports whether both dates are the same day.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// SameMonth reports whether both dates share year and month.
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

func (d Date) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.Year))
	b.WriteByte('-')
	if d.Month < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(d.Month))
	b.WriteByte('-')
	if d.Day < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(d.Day))
	return b.String()
}

var (
	isoDateRe    = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	dottedDateRe = regexp.MustCompile(`(\d{4})\s*\.\s*(\d{1,2})\s*\.\s*(\d{1,2})`)
	koreanDateRe = regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일`)
	shortDotRe   = regexp.MustCompile(`\b(\d{2})\s*\.\s*(\d{1,2})\s*\.\s*(\d{1,2})`)
	digitRunRe   = regexp.MustCompile(`\d+`)
)

// ParseDate extracts a calendar date from free-form text. Recognized shapes,
// tried in order: ISO 2006-01-02, dotted 2006.1.2, Korean 2006년 1월 2일,
// two-digit-year dotted 25.1.2, then bare digit runs of length 8 (yyyymmdd),
// 7 (yyyy0md or yyyymm0d), and 6 (yymmdd, century 2000).
func ParseDate(s string) (Date, bool) {
	if s == "" {
		return Date{}, false
	}

	for _, re := range []*regexp.Regexp{isoDateRe, dottedDateRe, koreanDateRe} {
		if m := re.FindStringSubmatch(s); m != nil {
			if d, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
				return d, true
			}
		}
	}

	if m := shortDotRe.FindStringSubmatch(s); m != nil {
		if d, ok := makeDate(2000+atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, true
		}
	}

	for _, run := range digitRunRe.FindAllString(s, -1) {
		if d, ok := parseDigitRun(run); ok {
			return d, true
		}
	}

	return Date{}, false
}

func parseDigitRun(run string) (Date, bool) {
	switch len(run) {
	case 8:
		return makeDate(atoi(run[:4]), atoi(run[4:6]), atoi(run[6:8]))
	case 7:
		// A 7-digit run omits one leading zero. yyyy0m-dd when the month
		// digit position holds a zero, otherwise yyyymm-0d.
		if run[4] == '0' {
			return makeDate(atoi(run[:4]), atoi(run[4:6]), atoi(run[6:7]))
		}
		return makeDate(atoi(run[:4]), atoi(run[4:5]), atoi(run[5:7]))
	case 6:
		return makeDate(2000+atoi(run[:2]), atoi(run[2:4]), atoi(run[4:6]))
	}
	return Date{}, false
}

func makeDate(y, m, d int) (Date, bool) {
	if y < 1900 || y > 2100 || m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

var areaCleanRe = regexp.MustCompile(`[,\s]|㎡|m²|m2|평`)

// ParseArea converts an extracted area value to square meters. Accepts
// numeric types directly and strings with comma separators or unit suffixes.
func ParseArea(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, x > 0
	case float32:
		return float64(x), x > 0
	case int:
		return float64(x), x > 0
	case int64:
		return float64(x), x > 0
	case string:
		cleaned := areaCleanRe.ReplaceAllString(x, "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || f <= 0 {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

var keyStripRe = regexp.MustCompile(`[\s\-_.,()]`)

// CanonicalKey normalizes a string for cross-document comparison: lowercase
// with spaces, hyphens, underscores, dots, commas and parens removed.
func CanonicalKey(s string) string {
	return strings.ToLower(keyStripRe.ReplaceAllString(s, ""))
}

// AreasMatch reports whether two areas agree within the 0.1㎡ tolerance used
// throughout cross-document reconciliation.
func AreasMatch(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= 0.1
}
