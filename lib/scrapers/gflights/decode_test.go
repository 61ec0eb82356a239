package gflights

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeShoppingResults(t *testing.T) {
	raw, err := os.ReadFile("testdata/shopping_results.txt")
	require.NoError(t, err)

	got := DecodeShoppingResults(string(raw))
	require.Len(t, got, 2, "duplicate anchors must collapse to one itinerary")

	// sorted ascending by price
	require.Equal(t, 129, got[0].Price)
	require.Equal(t, 182, got[1].Price)

	nonstop := got[1]
	require.Equal(t, "PBI", nonstop.Origin)
	require.Equal(t, "LAS", nonstop.Destination)
	require.Equal(t, "2026-02-10 09:30", nonstop.DepartureTime)
	require.Equal(t, "2026-02-10 12:45", nonstop.ArrivalTime)
	require.Equal(t, "3h 15m", nonstop.Duration)
	require.Equal(t, 195, nonstop.DurationMinutes)
	require.Equal(t, 0, nonstop.Stops)
	require.Equal(t, "NK", nonstop.AirlineCode)
	require.Equal(t, "Spirit", nonstop.Airline)
	require.Equal(t, []string{"NK1772"}, nonstop.FlightNumbers)
	require.Equal(t, "NK1772", nonstop.FlightNumber)
	require.Equal(t, "TOKEN=X", nonstop.BookingToken, "escaped equals signs must be restored")
	require.Len(t, nonstop.Segments, 1)
	require.Equal(t, "Palm Beach Intl", nonstop.Segments[0].OriginName)
	require.Equal(t, "Harry Reid Intl", nonstop.Segments[0].DestinationName)
	require.Empty(t, nonstop.Layovers)

	onestop := got[0]
	require.Equal(t, "2026-02-10 06:00", onestop.DepartureTime)
	require.Equal(t, "6h 10m", onestop.Duration)
	require.Equal(t, 1, onestop.Stops)
	require.Equal(t, "F9", onestop.AirlineCode)
	require.Equal(t, "Frontier", onestop.Airline)
	require.Equal(t, []string{"F9821", "F9305"}, onestop.FlightNumbers)
	require.Equal(t, "F9821, F9305", onestop.FlightNumber)
	require.Equal(t, "ReturnTokenB", onestop.BookingToken)
	require.Len(t, onestop.Segments, 2)
	require.Equal(t, "DEN", onestop.Segments[0].Destination)
	require.Len(t, onestop.Layovers, 1)
	require.Equal(t, "DEN", onestop.Layovers[0].Airport)
	require.Equal(t, "Denver Intl", onestop.Layovers[0].AirportName)
	require.Equal(t, "1h 2m", onestop.Layovers[0].Duration)
}

// The same record can arrive with structural quotes rendered plain or
// backslash-escaped depending on nesting depth. Both renderings must
// decode to the same itinerary.
func TestDecodeEscapedQuoteEquivalence(t *testing.T) {
	plain := `)]}'
[null,["UA","United"],"SFO",[2026,3,2],[9,15],"JFK",[2026,3,2],[17,40],325,null],[[null,248],"Tok3n"]`
	escaped := `)]}'
[null,[\"UA\",\"United\"],\"SFO\",[2026,3,2],[9,15],\"JFK\",[2026,3,2],[17,40],325,null],[[null,248],\"Tok3n\"]`

	a := DecodeShoppingResults(plain)
	b := DecodeShoppingResults(escaped)
	require.Len(t, a, 1)
	require.Equal(t, 248, a[0].Price)
	require.Equal(t, "UA", a[0].AirlineCode, "loose airline fallback must fire")
	require.Equal(t, "United", a[0].Airline)
	require.Empty(t, cmp.Diff(a, b))
}

func TestDecodeHostileInput(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":            "",
		"prefix only":      ")]}'\n",
		"no anchors":       ")]}'\n[[\"wrb.fr\",null,null]]",
		"interstitial":     "<html><body>Before you continue</body></html>",
		"truncated anchor": `)]}'` + "\n" + `"PBI",[2026,2,`,
	} {
		t.Run(name, func(t *testing.T) {
			require.Empty(t, DecodeShoppingResults(raw))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "3h 15m", FormatDuration(195))
	require.Equal(t, "0h 45m", FormatDuration(45))
	require.Equal(t, "2h 0m", FormatDuration(120))
}
