// models/errors.go
package models

import (
	"errors"
	"fmt"
)

// ErrRemoteNotFound signals that no report has been published for the
// requested date. Callers rely on it (via errors.Is) to probe backward
// for the latest available date and to skip gaps during bulk caching.
var ErrRemoteNotFound = errors.New("remote report not found")

// InvalidDateError reports date text that could not be parsed, or input
// that does not match the strict canonical MM-DD-YYYY pattern.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format: %q (expected MM-DD-YYYY)", e.Input)
}

// TransportError reports a network or HTTP failure other than a missing
// report. It is never retried internally.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedSourceError reports a report file that violates the expected
// CSV structure or column schema.
type MalformedSourceError struct {
	Reason string
	Err    error
}

func (e *MalformedSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed source data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed source data: %s", e.Reason)
}

func (e *MalformedSourceError) Unwrap() error { return e.Err }

// CountryNotFoundError reports a country absent from a day's aggregate.
// Date is the first canonical date in the queried range that lacked it.
type CountryNotFoundError struct {
	Country string
	Date    string
}

func (e *CountryNotFoundError) Error() string {
	return fmt.Sprintf("country %q not found in report for %s", e.Country, e.Date)
}
