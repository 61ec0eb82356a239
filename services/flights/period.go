package flights

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DatePair is one (depart, return) candidate of a period scan.
type DatePair struct {
	Depart string `json:"departDate"`
	Return string `json:"returnDate"`
}

// PeriodQuery spans the date window [Start, End] inclusive. TripDays
// counts calendar days from departure to return inclusive, so a
// 3-day trip departs on day N and returns on day N+2.
type PeriodQuery struct {
	Origin      string
	Destination string
	// YYYY-MM-DD, inclusive window bounds
	Start    string
	End      string
	TripDays int
	// widens the duration range to TripDays +- DurationVariation
	DurationVariation int
	// keep only pairs whose trip midpoint lands on Fri, Sat or Sun;
	// ignored for trips of two days or less
	PreferWeekends bool
}

// RoundTripPairs enumerates every (depart, return) pair inside the
// window for every allowed duration, in depart-date order per
// duration. Overlapping durations can produce the same pair twice;
// duplicates are dropped keeping first appearance.
func RoundTripPairs(q PeriodQuery) ([]DatePair, error) {
	start, end, err := parseWindow(q.Start, q.End)
	if err != nil {
		return nil, err
	}
	if start.After(end) || q.TripDays < 1 {
		return nil, nil
	}

	lo := q.TripDays - q.DurationVariation
	if lo < 1 {
		lo = 1
	}
	hi := q.TripDays + q.DurationVariation

	var pairs []DatePair
	seen := map[DatePair]struct{}{}
	for days := lo; days <= hi; days++ {
		span := days - 1
		for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
			ret := cursor.AddDate(0, 0, span)
			if ret.After(end) {
				break
			}
			if q.PreferWeekends && days > 2 && !isWeekendCentered(cursor, span) {
				continue
			}
			pair := DatePair{
				Depart: cursor.Format(dateLayout),
				Return: ret.Format(dateLayout),
			}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			pairs = append(pairs, pair)
		}
	}
	return pairs, nil
}

// OneWayDates lists every date of the window inclusive.
func OneWayDates(startDate, endDate string) ([]string, error) {
	start, end, err := parseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var dates []string
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		dates = append(dates, cursor.Format(dateLayout))
	}
	return dates, nil
}

func parseWindow(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period start %q: %w", startDate, err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period end %q: %w", endDate, err)
	}
	return start, end, nil
}

// the midpoint day of the trip, rounded up for even spans
func isWeekendCentered(depart time.Time, span int) bool {
	mid := depart.AddDate(0, 0, (span+1)/2)
	switch mid.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}
