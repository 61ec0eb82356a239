package commands

import (
	"fmt"

	"clovis-backend/lib/serviceutil"
	"clovis-backend/services/flights"

	"github.com/spf13/cobra"
)

var cheapestReturnDate *string

func init() {
	cheapestReturnDate = cheapestCmd.Flags().String("return", "", "Return date (YYYY-MM-DD) for a round trip; omit for one way.")
	rootCmd.AddCommand(cheapestCmd)
}

var cheapestCmd = &cobra.Command{
	Use:   "cheapest <from> <to> <departDate> [--return <date>]",
	Short: "Finds the cheapest itinerary for a route and date.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()
		from, to, departDate := args[0], args[1], args[2]

		var result flights.CheapestResult
		var err error
		if *cheapestReturnDate == "" {
			result, err = service.CheapestOneWay(cmd.Context(), from, to, departDate)
		} else {
			result, err = service.CheapestRoundTrip(cmd.Context(), from, to, departDate, *cheapestReturnDate)
		}
		if err != nil {
			serviceutil.Fatal("cheapest search failed", err)
		}

		renderCheapest(result)
	},
}

func renderCheapest(r flights.CheapestResult) {
	fmt.Printf("%s -> %s  %s", r.From, r.To, r.DepartDate)
	if r.ReturnDate != "" {
		fmt.Printf(" .. %s", r.ReturnDate)
	}
	fmt.Printf("\ntotal: $%d\n", r.TotalPrice)

	if r.Outbound != nil {
		fmt.Printf("outbound: %s %s  %s -> %s  (%s)\n",
			r.Outbound.Airline, r.Outbound.FlightNumber,
			r.Outbound.DepartureTime, r.Outbound.ArrivalTime, r.Outbound.Duration)
	}
	if r.Return != nil {
		fmt.Printf("return:   %s %s  %s -> %s  (%s)\n",
			r.Return.Airline, r.Return.FlightNumber,
			r.Return.DepartureTime, r.Return.ArrivalTime, r.Return.Duration)
	}

	if r.BookingUrl != nil {
		fmt.Printf("booking: %s\n", *r.BookingUrl)
	}
	fmt.Printf("search:  %s\n", r.SearchUrl)
}
