// cmd/tally.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tbnguyen/covidtracker/dates"
)

var (
	tallyDate     string
	tallyNoChange bool
)

var tallyCmd = &cobra.Command{
	Use:   "tally [flags] COUNTRY...",
	Short: "Show the COVID-19 tally for one or more countries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTally,
}

func init() {
	tallyCmd.Flags().StringVarP(&tallyDate, "date", "d", "latest", "the date of the tally")
	tallyCmd.Flags().BoolVar(&tallyNoChange, "no-change", false, "disable printing daily changes")
	rootCmd.AddCommand(tallyCmd)
}

func runTally(cmd *cobra.Command, args []string) error {
	dateString, err := resolveDateFlag(tallyDate)
	if err != nil {
		return errors.New(userMessage(err))
	}
	day, err := dates.ParseCanonical(dateString)
	if err != nil {
		return errors.New(userMessage(err))
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Country", "Confirmed", "Deaths", "Recovered", "Active"})

	for _, country := range args {
		series, err := svc.GetCountryData(country, day, day)
		if err != nil {
			return errors.New(userMessage(err))
		}
		tl := series[0].Tally
		t.AppendRow(table.Row{country, tl.Confirmed, tl.Deaths, tl.Recovered, tl.Active})

		// No delta row on the origin date: there is no previous day to
		// diff against.
		if !tallyNoChange && !day.Equal(dates.OriginDate) {
			ch, err := svc.GetNewChanges(country, dateString)
			if err != nil {
				return errors.New(userMessage(err))
			}
			t.AppendRow(table.Row{"", signed(ch.Confirmed), signed(ch.Deaths), signed(ch.Recovered), signed(ch.Active)})
		}
	}

	fmt.Printf("Selected date (MM-DD-YYYY) is %s\n", dateString)
	t.Render()
	return nil
}

func signed(n int) string {
	if n < 0 {
		return fmt.Sprintf("(%d)", n)
	}
	return fmt.Sprintf("(+%d)", n)
}
