package flights

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripPairs(t *testing.T) {
	pairs, err := RoundTripPairs(PeriodQuery{
		Start: "2026-02-01", End: "2026-02-05", TripDays: 3,
	})
	require.NoError(t, err)
	require.Equal(t, []DatePair{
		{Depart: "2026-02-01", Return: "2026-02-03"},
		{Depart: "2026-02-02", Return: "2026-02-04"},
		{Depart: "2026-02-03", Return: "2026-02-05"},
	}, pairs)
}

// pair count is (window length) - tripDays + 1, floored at zero
func TestRoundTripPairsCount(t *testing.T) {
	for _, tc := range []struct {
		start, end string
		tripDays   int
		want       int
	}{
		{"2026-02-01", "2026-02-05", 1, 5},
		{"2026-02-01", "2026-02-05", 5, 1},
		{"2026-02-01", "2026-02-05", 6, 0},
		{"2026-02-01", "2026-02-01", 1, 1},
		{"2026-02-06", "2026-02-05", 3, 0},
		{"2026-02-01", "2026-02-05", 0, 0},
	} {
		pairs, err := RoundTripPairs(PeriodQuery{
			Start: tc.start, End: tc.end, TripDays: tc.tripDays,
		})
		require.NoError(t, err)
		require.Len(t, pairs, tc.want, "window %s..%s tripDays=%d", tc.start, tc.end, tc.tripDays)
	}
}

func TestRoundTripPairsDurationVariation(t *testing.T) {
	pairs, err := RoundTripPairs(PeriodQuery{
		Start: "2026-02-01", End: "2026-02-05", TripDays: 3, DurationVariation: 1,
	})
	require.NoError(t, err)
	// 4 two-day pairs, 3 three-day pairs, 2 four-day pairs
	require.Len(t, pairs, 9)

	seen := map[DatePair]struct{}{}
	for _, p := range pairs {
		_, dup := seen[p]
		require.False(t, dup, "pair %v appeared twice", p)
		seen[p] = struct{}{}
	}
}

func TestRoundTripPairsWeekendPreference(t *testing.T) {
	// the week of Mon 2026-02-02; only trips centered on Fri or Sat
	// survive the filter
	pairs, err := RoundTripPairs(PeriodQuery{
		Start: "2026-02-02", End: "2026-02-08", TripDays: 3, PreferWeekends: true,
	})
	require.NoError(t, err)
	require.Equal(t, []DatePair{
		{Depart: "2026-02-05", Return: "2026-02-07"},
		{Depart: "2026-02-06", Return: "2026-02-08"},
	}, pairs)

	// too short for a meaningful midpoint, filter does not apply
	short, err := RoundTripPairs(PeriodQuery{
		Start: "2026-02-02", End: "2026-02-04", TripDays: 2, PreferWeekends: true,
	})
	require.NoError(t, err)
	require.Len(t, short, 2)
}

func TestRoundTripPairsInvalidDates(t *testing.T) {
	_, err := RoundTripPairs(PeriodQuery{Start: "02/01/2026", End: "2026-02-05", TripDays: 3})
	require.Error(t, err)
	_, err = RoundTripPairs(PeriodQuery{Start: "2026-02-01", End: "soon", TripDays: 3})
	require.Error(t, err)
}

func TestOneWayDates(t *testing.T) {
	dates, err := OneWayDates("2026-02-01", "2026-02-05")
	require.NoError(t, err)
	require.Equal(t, []string{
		"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04", "2026-02-05",
	}, dates)

	empty, err := OneWayDates("2026-02-06", "2026-02-05")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSortByPriceFailuresLast(t *testing.T) {
	results := []PeriodResult{
		{CheapestResult: CheapestResult{DepartDate: "a", TotalPrice: PriceUnavailable}, Error: "boom a"},
		{CheapestResult: CheapestResult{DepartDate: "b", TotalPrice: 300}},
		{CheapestResult: CheapestResult{DepartDate: "c", TotalPrice: PriceUnavailable}, Error: "boom c"},
		{CheapestResult: CheapestResult{DepartDate: "d", TotalPrice: 120}},
	}
	sortByPrice(results)

	require.Equal(t, "d", results[0].DepartDate)
	require.Equal(t, "b", results[1].DepartDate)
	// failures keep their relative order
	require.Equal(t, "a", results[2].DepartDate)
	require.Equal(t, "c", results[3].DepartDate)
}
