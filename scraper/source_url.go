// scraper/source_url.go
package scraper

import (
	"github.com/tbnguyen/covidtracker/config"
	"github.com/tbnguyen/covidtracker/dates"
)

// SourceURL maps a canonical date to the URL of that day's report CSV.
// The mapping is deterministic; the date is validated again here since
// callers may supply a date string directly.
func SourceURL(dateString string) (string, error) {
	if err := dates.ValidateCanonical(dateString); err != nil {
		return "", err
	}
	src := config.AppConfig.Source
	return src.BaseURL + src.ReportPath + dateString + ".csv", nil
}
