// scraper/report_parser.go
package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/tbnguyen/covidtracker/models"
)

// ParseReport decodes raw report lines into typed rows. csvutil consumes
// the header line and maps columns to models.ReportRow by its csv tags,
// which must exactly match the upstream headers.
func ParseReport(lines []string) ([]models.ReportRow, error) {
	var rows []models.ReportRow
	raw := []byte(strings.Join(lines, "\n"))
	if err := csvutil.Unmarshal(raw, &rows); err != nil {
		return nil, &models.MalformedSourceError{Reason: "cannot decode daily report CSV", Err: err}
	}
	return rows, nil
}

// AggregateRows reduces report rows into per-country totals. Rows that
// share a Country_Region (sub-national breakdowns reported separately)
// sum field-wise, and the result is independent of row order.
func AggregateRows(rows []models.ReportRow) (models.DateAggregate, error) {
	agg := make(models.DateAggregate)
	for i, row := range rows {
		tally, err := rowTally(row)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, row.CountryRegion, err)
		}
		agg[row.CountryRegion] = agg[row.CountryRegion].Add(tally)
	}
	return agg, nil
}

// rowTally reads the four count columns of one row. Empty fields count
// as zero; anything else non-numeric violates the source schema.
func rowTally(row models.ReportRow) (models.Tally, error) {
	var t models.Tally
	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"Confirmed", row.Confirmed, &t.Confirmed},
		{"Deaths", row.Deaths, &t.Deaths},
		{"Recovered", row.Recovered, &t.Recovered},
		{"Active", row.Active, &t.Active},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			raw = "0"
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Tally{}, &models.MalformedSourceError{
				Reason: fmt.Sprintf("column %s holds non-numeric value %q", f.name, f.raw),
				Err:    err,
			}
		}
		*f.dst = n
	}
	return t, nil
}
