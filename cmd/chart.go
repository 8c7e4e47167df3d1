// cmd/chart.go
package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/tbnguyen/covidtracker/dates"
	"github.com/tbnguyen/covidtracker/models"
)

var (
	chartEnd       string
	chartDays      string
	chartConfirmed bool
	chartDeaths    bool
	chartRecovered bool
	chartActive    bool
	chartScale     string
)

var chartCmd = &cobra.Command{
	Use:   "chart [flags] COUNTRY",
	Short: "Plot a country's COVID-19 tally as a terminal chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartEnd, "end", "e", "latest", "the end date of the chart")
	chartCmd.Flags().StringVarP(&chartDays, "days", "n", "max", "number of days of data to plot")
	chartCmd.Flags().BoolVarP(&chartConfirmed, "confirmed", "c", false, "plot the number of confirmed cases")
	chartCmd.Flags().BoolVarP(&chartDeaths, "deaths", "d", false, "plot the number of deaths")
	chartCmd.Flags().BoolVarP(&chartRecovered, "recovered", "r", false, "plot the number of recovered cases")
	chartCmd.Flags().BoolVarP(&chartActive, "active", "a", false, "plot the number of active cases")
	chartCmd.Flags().StringVarP(&chartScale, "scale", "s", "log", "y-axis scale: log or linear")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	if !(chartConfirmed || chartDeaths || chartRecovered || chartActive) {
		return errors.New("at least one of --confirmed, --deaths, --recovered or --active must be enabled")
	}
	if chartScale != "log" && chartScale != "linear" {
		return fmt.Errorf("invalid scale %q, must be \"log\" or \"linear\"", chartScale)
	}

	country := args[0]
	endString, err := resolveDateFlag(chartEnd)
	if err != nil {
		return errors.New(userMessage(err))
	}
	end, err := dates.ParseCanonical(endString)
	if err != nil {
		return errors.New(userMessage(err))
	}
	days, err := resolveDaysFlag(chartDays)
	if err != nil {
		return err
	}

	fmt.Printf("Selected end date (MM-DD-YYYY) is %s\n", endString)
	fmt.Printf("Selected number of days is %d\n", days)

	series, err := svc.GetCountryData(country, end.AddDate(0, 0, -(days-1)), end)
	if err != nil {
		return errors.New(userMessage(err))
	}

	plots := []struct {
		enabled bool
		name    string
		value   func(models.Tally) int
	}{
		{chartConfirmed, "confirmed", func(t models.Tally) int { return t.Confirmed }},
		{chartDeaths, "deaths", func(t models.Tally) int { return t.Deaths }},
		{chartRecovered, "recovered", func(t models.Tally) int { return t.Recovered }},
		{chartActive, "active", func(t models.Tally) int { return t.Active }},
	}
	for _, p := range plots {
		if !p.enabled {
			continue
		}
		data := make([]float64, len(series))
		for i, point := range series {
			v := float64(p.value(point.Tally))
			if chartScale == "log" {
				v = math.Log10(math.Max(v, 1))
			}
			data[i] = v
		}
		caption := fmt.Sprintf("%s - %s cases, %s to %s (%s scale)",
			country, p.name, series[0].Date, series[len(series)-1].Date, chartScale)
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(15),
			asciigraph.Caption(caption),
		))
		fmt.Println()
	}
	return nil
}
