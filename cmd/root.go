// cmd/root.go

// Package cmd implements the command-line interface: tabular tally
// display, terminal charting and cache warming on top of the tracker
// service.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tbnguyen/covidtracker/config"
	"github.com/tbnguyen/covidtracker/dates"
	"github.com/tbnguyen/covidtracker/models"
	"github.com/tbnguyen/covidtracker/services"
	"github.com/tbnguyen/covidtracker/store"
)

var (
	cfgFile string

	svc        *services.TrackerService
	cacheStore store.Store
)

var rootCmd = &cobra.Command{
	Use:   "covidtracker",
	Short: "Shows and plots COVID-19 case data",
	Long: `covidtracker fetches daily COVID-19 reports from the JHU CSSE
repository, aggregates per-country case counts and caches everything
locally for tabular display and terminal charting.`,
	SilenceUsage:  true,
	SilenceErrors: true, // main prints the final error
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initService()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeStore()
	},
}

// Execute runs the root command. main delegates here.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config.yaml")
}

// initService loads configuration, opens the cache backend and resolves
// the latest available report date once for the whole process.
func initService() error {
	if err := config.LoadConfig(cfgFile); err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}
	cacheStore = st

	client := &http.Client{Timeout: config.AppConfig.Source.Timeout}
	latest, err := services.ResolveLatestDate(st, client)
	if err != nil {
		return fmt.Errorf("resolving latest report date: %w", err)
	}
	svc = services.NewTrackerService(st, client, latest)
	return nil
}

// closeStore releases the cache backend when it holds resources, such
// as the MySQL connection pool.
func closeStore() {
	if c, ok := cacheStore.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("WARN: failed to close cache store: %v\n", err)
		}
	}
}

func newStore() (store.Store, error) {
	switch config.AppConfig.Cache.Backend {
	case "", "file":
		return store.NewFileStore(config.AppConfig.Cache.Dir)
	case "mysql":
		return store.NewDBStore(config.AppConfig.Database)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", config.AppConfig.Cache.Backend)
	}
}

// resolveDateFlag turns a --date style value into a canonical date
// within [origin, latest]. "latest" (or empty) selects the latest
// date; a date outside the bounds falls back with a warning.
func resolveDateFlag(value string) (string, error) {
	if value == "" || value == "latest" {
		return dates.Format(svc.LatestDate()), nil
	}
	dateString, err := dates.Normalize(value)
	if err != nil {
		return "", err
	}
	day, err := dates.ParseCanonical(dateString)
	if err != nil {
		return "", err
	}
	if day.After(svc.LatestDate()) {
		log.Printf("WARN: data for %s is not available yet, using the latest report\n", dateString)
		return dates.Format(svc.LatestDate()), nil
	}
	if day.Before(dates.OriginDate) {
		log.Printf("WARN: data for %s predates the first report, using %s\n", dateString, dates.Format(dates.OriginDate))
		return dates.Format(dates.OriginDate), nil
	}
	return dateString, nil
}

// resolveDaysFlag turns a day-count value ("max" or an integer) into a
// count clamped to the days between the origin and latest dates.
func resolveDaysFlag(value string) (int, error) {
	maxDays := int(svc.LatestDate().Sub(dates.OriginDate).Hours()/24) + 1
	if value == "" || value == "max" {
		return maxDays, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number of days %q, must be a positive integer or \"max\"", value)
	}
	if n > maxDays {
		log.Printf("WARN: number of days exceeds the origin date, using the maximum of %d\n", maxDays)
		return maxDays, nil
	}
	return n, nil
}

// userMessage maps the pipeline's classified errors to actionable
// user-facing text. The error kinds are the contract with the service
// layer; anything unclassified passes through as-is.
func userMessage(err error) string {
	var (
		invalidDate     *models.InvalidDateError
		countryNotFound *models.CountryNotFoundError
		transport       *models.TransportError
		malformed       *models.MalformedSourceError
	)
	switch {
	case errors.As(err, &countryNotFound):
		return fmt.Sprintf("country %q is not found in the report for %s", countryNotFound.Country, countryNotFound.Date)
	case errors.As(err, &invalidDate):
		return fmt.Sprintf("%q is not a valid date", invalidDate.Input)
	case errors.Is(err, models.ErrRemoteNotFound):
		return "no report has been published for that date yet"
	case errors.As(err, &transport):
		return fmt.Sprintf("could not reach the data source (%s): %v", transport.URL, transport.Err)
	case errors.As(err, &malformed):
		return fmt.Sprintf("the source data is malformed: %s", malformed.Reason)
	default:
		return err.Error()
	}
}
