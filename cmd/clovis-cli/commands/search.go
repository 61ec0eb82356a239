package commands

import (
	"os"
	"time"

	"clovis-backend/lib/scrapers/gflights"
	"clovis-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchReturnDate *string
var searchLimit *int

func init() {
	searchReturnDate = searchCmd.Flags().String("return", "", "Return date (YYYY-MM-DD) for a round trip; omit for one way.")
	searchLimit = searchCmd.Flags().Int("limit", 15, "Maximum number of itineraries to print.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <from> <to> <departDate> [--return <date>] [--limit <n>]",
	Short: "Lists itineraries for a route and date, cheapest first.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()
		from, to, departDate := args[0], args[1], args[2]

		t1 := time.Now()
		var itineraries []gflights.Itinerary
		var err error
		if *searchReturnDate == "" {
			itineraries, err = service.SearchOneWay(cmd.Context(), from, to, departDate)
		} else {
			itineraries, err = service.SearchRoundTrip(cmd.Context(), from, to, departDate, *searchReturnDate)
		}
		if err != nil {
			serviceutil.Fatal("search failed", err)
		}

		if len(itineraries) > *searchLimit {
			itineraries = itineraries[:*searchLimit]
		}
		renderItineraries(itineraries)
		cmd.Printf("search time: %.1fs\n", time.Since(t1).Seconds())
	},
}

func renderItineraries(itineraries []gflights.Itinerary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Price", "Airline", "Flight", "Departure", "Arrival", "Duration", "Stops"})
	for _, it := range itineraries {
		t.AppendRow(table.Row{
			it.Price,
			it.Airline,
			it.FlightNumber,
			it.DepartureTime,
			it.ArrivalTime,
			it.Duration,
			it.Stops,
		})
	}
	t.Render()
}
