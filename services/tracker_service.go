// services/tracker_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tbnguyen/covidtracker/config"
	"github.com/tbnguyen/covidtracker/dates"
	"github.com/tbnguyen/covidtracker/models"
	"github.com/tbnguyen/covidtracker/scraper"
	"github.com/tbnguyen/covidtracker/store"
)

// TrackerService orchestrates the fetch, parse and aggregate pipeline
// over the report date range. The latest available report date is
// resolved once (see ResolveLatestDate) and injected at construction;
// it must stay fixed for the process lifetime so range queries keep a
// consistent upper bound.
type TrackerService struct {
	store  store.Store
	client *http.Client
	latest time.Time
}

// NewTrackerService builds a service around the given cache store and
// resolved latest report date. A nil client gets the configured timeout.
func NewTrackerService(st store.Store, client *http.Client, latest time.Time) *TrackerService {
	if client == nil {
		client = &http.Client{Timeout: config.AppConfig.Source.Timeout}
	}
	return &TrackerService{store: st, client: client, latest: dates.DayOf(latest)}
}

// LatestDate returns the resolved latest report date.
func (s *TrackerService) LatestDate() time.Time { return s.latest }

// ResolveLatestDate walks backward from today until a published report
// is found. Missing days are the expected probe signal, not failures;
// any other error aborts. The probe goes through the regular fetch path,
// so the report it lands on is already cached afterwards.
func ResolveLatestDate(st store.Store, client *http.Client) (time.Time, error) {
	day := dates.DayOf(time.Now())
	for !day.Before(dates.OriginDate) {
		url, err := scraper.SourceURL(dates.Format(day))
		if err != nil {
			return time.Time{}, err
		}
		_, err = scraper.FetchReport(client, st, url, false)
		switch {
		case err == nil:
			log.Printf("Service: latest available report date is %s\n", dates.Format(day))
			return day, nil
		case errors.Is(err, models.ErrRemoteNotFound):
			day = day.AddDate(0, 0, -1)
		default:
			return time.Time{}, fmt.Errorf("probing latest report date: %w", err)
		}
	}
	return time.Time{}, fmt.Errorf("no report published between %s and today", dates.Format(dates.OriginDate))
}

// GetDataForDate returns the per-country aggregate for one canonical
// date, composing source URL derivation, the cached fetch, CSV parsing
// and aggregation. The derived aggregate is cached under
// extracted-<date>.json; with force unset a cached aggregate is returned
// without touching the raw report or the network.
func (s *TrackerService) GetDataForDate(dateString string, force bool) (models.DateAggregate, error) {
	if err := dates.ValidateCanonical(dateString); err != nil {
		return nil, err
	}
	cacheKey := "extracted-" + dateString + ".json"

	if !force {
		ok, err := s.store.Has(store.NamespaceExtracted, cacheKey)
		if err != nil {
			return nil, err
		}
		if ok {
			blob, err := s.store.Get(store.NamespaceExtracted, cacheKey)
			if err != nil {
				return nil, err
			}
			var agg models.DateAggregate
			if err := json.Unmarshal(blob, &agg); err != nil {
				return nil, fmt.Errorf("corrupt extracted cache entry %s: %w", cacheKey, err)
			}
			return agg, nil
		}
	}

	url, err := scraper.SourceURL(dateString)
	if err != nil {
		return nil, err
	}
	lines, err := scraper.FetchReport(s.client, s.store, url, force)
	if err != nil {
		return nil, err
	}
	rows, err := scraper.ParseReport(lines)
	if err != nil {
		return nil, fmt.Errorf("report for %s: %w", dateString, err)
	}
	agg, err := scraper.AggregateRows(rows)
	if err != nil {
		return nil, fmt.Errorf("report for %s: %w", dateString, err)
	}

	blob, err := json.Marshal(agg)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize aggregate for %s: %w", dateString, err)
	}
	if err := s.store.Put(store.NamespaceExtracted, cacheKey, blob); err != nil {
		return nil, err
	}
	return agg, nil
}

// GetCountryData collects one country's tally for every day in
// [start, end], ascending. Zero start/end mean unbounded; the range is
// silently clamped to [origin, latest]. The first day the country is
// absent aborts the whole range with *models.CountryNotFoundError.
func (s *TrackerService) GetCountryData(country string, start, end time.Time) (models.CountrySeries, error) {
	if end.IsZero() || dates.DayOf(end).After(s.latest) {
		end = s.latest
	} else {
		end = dates.DayOf(end)
	}
	if start.IsZero() || dates.DayOf(start).Before(dates.OriginDate) {
		start = dates.OriginDate
	} else {
		start = dates.DayOf(start)
	}

	var series models.CountrySeries
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dateString := dates.Format(day)
		agg, err := s.GetDataForDate(dateString, false)
		if err != nil {
			return nil, err
		}
		tally, ok := agg[country]
		if !ok {
			return nil, &models.CountryNotFoundError{Country: country, Date: dateString}
		}
		series = append(series, models.SeriesPoint{Date: dateString, Tally: tally})
	}
	return series, nil
}

// GetNewChanges returns the field-wise day-over-day delta for country on
// the given canonical date: tally(date) - tally(date-1).
func (s *TrackerService) GetNewChanges(country, dateString string) (models.Tally, error) {
	day, err := dates.ParseCanonical(dateString)
	if err != nil {
		return models.Tally{}, err
	}
	series, err := s.GetCountryData(country, day.AddDate(0, 0, -1), day)
	if err != nil {
		return models.Tally{}, err
	}
	if len(series) < 2 {
		return models.Tally{}, fmt.Errorf("no previous day available to compute changes for %q on %s", country, dateString)
	}
	return series[len(series)-1].Tally.Sub(series[0].Tally), nil
}

// CacheData warms both cache namespaces by walking backward from the
// latest report date for the given number of days (clamped so the walk
// never precedes the origin date). Days whose report has not been
// published are logged and skipped; any other failure aborts the run.
func (s *TrackerService) CacheData(numberOfDays int, force bool) error {
	maxDays := int(s.latest.Sub(dates.OriginDate).Hours() / 24)
	if numberOfDays > maxDays {
		numberOfDays = maxDays
	}

	day := s.latest
	for i := 0; i < numberOfDays; i++ {
		dateString := dates.Format(day)
		log.Printf("Service: caching data for %s... (%d/%d)\n", dateString, i+1, numberOfDays)
		if _, err := s.GetDataForDate(dateString, force); err != nil {
			if errors.Is(err, models.ErrRemoteNotFound) {
				log.Printf("Service: no report published for %s, skipping\n", dateString)
			} else {
				return fmt.Errorf("bulk caching aborted at %s: %w", dateString, err)
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	return nil
}
