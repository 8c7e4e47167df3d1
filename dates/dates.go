// dates/dates.go
package dates

import (
	"regexp"
	"time"

	"github.com/araddon/dateparse"

	"github.com/tbnguyen/covidtracker/models"
)

// Layout is the canonical MM-DD-YYYY report date format.
const Layout = "01-02-2006"

// OriginDate is the earliest date for which the source publishes a
// report in the current column schema.
var OriginDate = time.Date(2020, time.December, 2, 0, 0, 0, 0, time.UTC)

var canonicalRegex = regexp.MustCompile(`^(0[1-9]|1[012])-(0[1-9]|[12][0-9]|3[01])-20\d\d$`)

// Normalize turns loosely formatted date text into canonical MM-DD-YYYY.
// Ambiguous numeric dates are read day-first. Input that is already
// canonical is returned unchanged, so Normalize is idempotent.
func Normalize(dateString string) (string, error) {
	if err := ValidateCanonical(dateString); err == nil {
		return dateString, nil
	}
	t, err := dateparse.ParseAny(dateString, dateparse.PreferMonthFirst(false))
	if err != nil {
		return "", &models.InvalidDateError{Input: dateString}
	}
	return t.Format(Layout), nil
}

// ValidateCanonical checks that dateString is a well-formed canonical
// date. It is re-run wherever canonical input crosses a package
// boundary, since callers may supply dates directly.
func ValidateCanonical(dateString string) error {
	if !canonicalRegex.MatchString(dateString) {
		return &models.InvalidDateError{Input: dateString}
	}
	// The pattern admits impossible days such as 02-30; time.Parse
	// rejects them.
	if _, err := time.Parse(Layout, dateString); err != nil {
		return &models.InvalidDateError{Input: dateString}
	}
	return nil
}

// ParseCanonical converts a canonical date string to midnight UTC.
func ParseCanonical(dateString string) (time.Time, error) {
	if err := ValidateCanonical(dateString); err != nil {
		return time.Time{}, err
	}
	return time.Parse(Layout, dateString)
}

// Format renders t as a canonical date string.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// DayOf truncates t to midnight UTC so dates compare as whole days.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
