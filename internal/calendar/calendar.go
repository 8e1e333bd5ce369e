// Package calendar bridges Persian (Jalali) calendar date strings and
// Gregorian dates. It owns all conversion logic; callers compare Persian
// date strings only lexicographically.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// ErrInvalidDate reports a malformed or out-of-range Persian date.
var ErrInvalidDate = errors.New("invalid persian date")

// Sentinel marks an unset date in order snapshots. Rows carrying it are
// filtered out before any date arithmetic.
const Sentinel = "0000-00-00"

// Date is a Persian calendar date. The zero value is not a valid date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date in zero-padded YYYY-MM-DD form, which sorts
// lexicographically in calendar order.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParsePersian parses and validates a Persian YYYY-MM-DD string.
func ParsePersian(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate checks that the date names a real day on the Persian calendar.
func (d Date) Validate() error {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	if d.Day < 1 || d.Day > monthLength(d.Year, d.Month) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	return nil
}

// monthLength returns the number of days in the given Persian month.
// Months 1-6 have 31 days, 7-11 have 30, and Esfand has 29 or 30
// depending on the leap year.
func monthLength(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	default:
		if isLeap(year) {
			return 30
		}
		return 29
	}
}

func isLeap(year int) bool {
	return ptime.Date(year, ptime.Farvardin, 1, 0, 0, 0, 0, time.UTC).IsLeap()
}

// ToGregorian converts a valid Persian date to a Gregorian date at
// midnight UTC.
func (d Date) ToGregorian() time.Time {
	pt := ptime.Date(d.Year, ptime.Month(d.Month), d.Day, 12, 0, 0, 0, time.UTC)
	g := pt.Time()
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, time.UTC)
}

// FromGregorian converts a Gregorian date to its Persian equivalent. It is
// total over the range the conversion tables support, so it always succeeds
// for dates produced by ToGregorian.
func FromGregorian(t time.Time) Date {
	pt := ptime.New(time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC))
	return Date{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}
}

var monthAbbrevs = map[string]string{
	"01": "Far", "02": "Ord", "03": "Kho",
	"04": "Tir", "05": "Mor", "06": "Sha",
	"07": "Meh", "08": "Aba", "09": "Aza",
	"10": "Dey", "11": "Bah", "12": "Esf",
}

// MonthAbbrev maps a two-digit Persian month code to its three-letter
// abbreviation. Unknown codes pass through unchanged.
func MonthAbbrev(code string) string {
	if abbr, ok := monthAbbrevs[code]; ok {
		return abbr
	}
	return code
}

// FormatShort turns a Persian YYYY-MM-DD string into a chart label like
// "Far 05". Strings that do not split into three parts are returned as-is.
func FormatShort(persianDate string) string {
	parts := strings.Split(persianDate, "-")
	if len(parts) != 3 {
		return persianDate
	}
	return MonthAbbrev(parts[1]) + " " + parts[2]
}
