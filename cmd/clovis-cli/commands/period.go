package commands

import (
	"os"
	"strconv"
	"time"

	"clovis-backend/lib/serviceutil"
	"clovis-backend/services/flights"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var periodTripDays *int
var periodVariation *int
var periodWeekends *bool
var periodOneWay *bool

func init() {
	periodTripDays = periodCmd.Flags().Int("days", 3, "Trip duration in calendar days, departure and return inclusive.")
	periodVariation = periodCmd.Flags().Int("variation", 0, "Also try durations days +- variation.")
	periodWeekends = periodCmd.Flags().Bool("weekends", false, "Keep only trips centered on a weekend.")
	periodOneWay = periodCmd.Flags().Bool("one-way", false, "Scan single departure dates instead of pairs.")
	rootCmd.AddCommand(periodCmd)
}

var periodCmd = &cobra.Command{
	Use:   "period <from> <to> <periodStart> <periodEnd> [--days <n>] [--variation <n>] [--weekends] [--one-way]",
	Short: "Scans a date window for the cheapest trip, one search per candidate date.",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()
		query := flights.PeriodQuery{
			Origin:            args[0],
			Destination:       args[1],
			Start:             args[2],
			End:               args[3],
			TripDays:          *periodTripDays,
			DurationVariation: *periodVariation,
			PreferWeekends:    *periodWeekends,
		}

		t1 := time.Now()
		var results []flights.PeriodResult
		var err error
		if *periodOneWay {
			results, err = service.SearchPeriodOneWay(cmd.Context(), query)
		} else {
			results, err = service.SearchPeriod(cmd.Context(), query)
		}
		if err != nil {
			serviceutil.Fatal("period scan failed", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Depart", "Return", "Price", "Airline", "Status"})
		for _, r := range results {
			price := "-"
			status := "ok"
			airline := ""
			if r.Error != "" {
				status = r.Error
			} else {
				price = formatPrice(r.TotalPrice)
				if r.Outbound != nil {
					airline = r.Outbound.Airline
				}
			}
			t.AppendRow(table.Row{r.DepartDate, r.ReturnDate, price, airline, status})
		}
		t.Render()
		cmd.Printf("scan time: %.1fs over %d candidates\n", time.Since(t1).Seconds(), len(results))
	},
}

func formatPrice(price int) string {
	return "$" + strconv.Itoa(price)
}
