package gflights

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The response is not valid JSON even after stripping the prefix: the
// same structural quote renders as `"` or `\"` depending on nesting
// depth, so every pattern below accepts both. There is no schema; the
// patterns are regressions against captured traffic (see testdata/).

// constant anti-hijacking prefix at the start of every rpc response
const antiHijackPrefix = ")]}'"

// origin, [y,m,d], [h(,m)?], destination, [y,m,d], [h(,m)?], minutes
var routePattern = regexp.MustCompile(`\\?"([A-Z]{3})\\?",\[(\d{4}),(\d{1,2}),(\d{1,2})\],\[(\d{1,2})(?:,(\d{1,2}))?\],\\?"([A-Z]{3})\\?",\[(\d{4}),(\d{1,2}),(\d{1,2})\],\[(\d{1,2})(?:,(\d{1,2}))?\],(\d+),`)

// one physical leg with an embedded [code, number, null, airline] pair
var segmentPattern = regexp.MustCompile(`\[null,null,null,\\?"([A-Z]{3})\\?",\\?"([^"\\]+)\\?",\\?"([^"\\]+)\\?",\\?"([A-Z]{3})\\?",null,\[(\d+)(?:,(\d+))?\],null,\[(\d+)(?:,(\d+))?\],(\d+),.*?\[\\?"([A-Z0-9]{2})\\?",\\?"(\d+)\\?",null,\\?"([^"\\]+)\\?"\]`)

// standalone [code, number, null, airline] flight tuple
var flightNumPattern = regexp.MustCompile(`\[\\?"([A-Z0-9]{2})\\?",\\?"(\d+)\\?",null,\\?"([^"\\]+)\\?"\]`)

// [[minutes, code, code, null, airport name]
var layoverPattern = regexp.MustCompile(`\[\[(\d+),\\?"([A-Z]{3})\\?",\\?"[A-Z]{3}\\?",null,\\?"([^"\\]+)\\?"`)

// progressively looser airline shapes, tried only when no segment or
// flight tuple carried one; the last match in the window wins
var airlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[\[\\?"([A-Z0-9]{2})\\?",\[\\?"([^"\\]+)\\?"\]`),
	regexp.MustCompile(`\[\\?"([A-Z0-9]{2})\\?",\\?"([^"\\]+)\\?"`),
}

// [[null, price], "token"] where the token may embed escaped
// `=` sequences standing for literal '='
var priceTokenPattern = regexp.MustCompile(`\[\[null,(\d+)\],\\?"((?:[A-Za-z0-9+/_-]+|\\{1,2}u003d)+)\\?"\]`)

var escapedEquals = regexp.MustCompile(`\\{1,2}u003d`)

// how far around a route anchor satellite fields are searched for
const (
	lookBehindWindow = 800
	lookAheadWindow  = 1500
)

// DecodeShoppingResults turns a raw rpc response into itineraries
// sorted ascending by price. A malformed or blocked payload yields no
// anchors and therefore an empty list; a single bad anchor is skipped
// without affecting the rest.
func DecodeShoppingResults(raw string) []Itinerary {
	text := strings.TrimLeft(strings.TrimPrefix(raw, antiHijackPrefix), " \t\r\n")

	var out []Itinerary
	seen := map[string]struct{}{}

	for _, m := range routePattern.FindAllStringSubmatchIndex(text, -1) {
		it, ok := decodeAnchor(text, m)
		if !ok {
			continue
		}

		depHour, depMin := splitClock(it.DepartureTime)
		key := fmt.Sprintf(
			"%s-%s-%s-%s:%s-%d",
			it.AirlineCode, it.Origin, it.Destination, depHour, depMin, it.Price,
		)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price < out[j].Price
	})
	return out
}

// decodeAnchor recovers one itinerary from the text around a route
// anchor match. ok is false when a numeric field fails to parse, so
// one malformed record never blanks the whole decode.
func decodeAnchor(text string, m []int) (Itinerary, bool) {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}

	parseFailed := false
	num := func(s string) int {
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			parseFailed = true
		}
		return n
	}

	origin := group(1)
	depYear, depMonth, depDay := num(group(2)), num(group(3)), num(group(4))
	depHour, depMin := num(group(5)), num(group(6))
	destination := group(7)
	arrYear, arrMonth, arrDay := num(group(8)), num(group(9)), num(group(10))
	arrHour, arrMin := num(group(11)), num(group(12))
	durationMins := num(group(13))
	if parseFailed {
		return Itinerary{}, false
	}

	start := m[0]
	lo := start - lookBehindWindow
	if lo < 0 {
		lo = 0
	}
	before := text[lo:start]

	var airlineCode, airlineName string
	var segments []Segment
	for _, sm := range segmentPattern.FindAllStringSubmatch(before, -1) {
		if sm[1] == "" || sm[4] == "" {
			continue
		}
		segments = append(segments, Segment{
			Origin:          sm[1],
			OriginName:      sm[2],
			Destination:     sm[4],
			DestinationName: sm[3],
			DepartureTime:   formatClock(num(sm[5]), num(sm[6])),
			ArrivalTime:     formatClock(num(sm[7]), num(sm[8])),
			Duration:        FormatDuration(num(sm[9])),
			FlightNumber:    sm[10] + sm[11],
			Airline:         sm[12],
		})
		if airlineCode == "" {
			airlineCode = sm[10]
			airlineName = sm[12]
		}
	}

	var flightNumbers []string
	for _, fm := range flightNumPattern.FindAllStringSubmatch(before, -1) {
		if fm[1] == "" || fm[2] == "" {
			continue
		}
		flightNumbers = append(flightNumbers, fm[1]+fm[2])
		if airlineCode == "" {
			airlineCode = fm[1]
			airlineName = fm[3]
		}
	}

	var layovers []Layover
	for _, lm := range layoverPattern.FindAllStringSubmatch(before, -1) {
		if lm[1] == "" || lm[2] == "" {
			continue
		}
		layovers = append(layovers, Layover{
			Airport:     lm[2],
			AirportName: lm[3],
			Duration:    FormatDuration(num(lm[1])),
		})
	}

	if airlineCode == "" {
		for _, pattern := range airlinePatterns {
			matches := pattern.FindAllStringSubmatch(before, -1)
			if len(matches) == 0 {
				continue
			}
			last := matches[len(matches)-1]
			if last[1] != "" && last[2] != "" {
				airlineCode = last[1]
				airlineName = last[2]
				break
			}
		}
	}

	hi := start + lookAheadWindow
	if hi > len(text) {
		hi = len(text)
	}
	after := text[start:hi]

	price := 0
	token := ""
	if pm := priceTokenPattern.FindStringSubmatch(after); pm != nil {
		price = num(pm[1])
		token = escapedEquals.ReplaceAllString(pm[2], "=")
	}

	if parseFailed {
		return Itinerary{}, false
	}

	stops := len(layovers)
	if len(segments) > 1 && len(segments)-1 > stops {
		stops = len(segments) - 1
	}

	return Itinerary{
		Price:           price,
		Airline:         airlineName,
		AirlineCode:     airlineCode,
		FlightNumber:    strings.Join(flightNumbers, ", "),
		FlightNumbers:   flightNumbers,
		Origin:          origin,
		Destination:     destination,
		DepartureTime:   fmt.Sprintf("%04d-%02d-%02d %s", depYear, depMonth, depDay, formatClock(depHour, depMin)),
		ArrivalTime:     fmt.Sprintf("%04d-%02d-%02d %s", arrYear, arrMonth, arrDay, formatClock(arrHour, arrMin)),
		Duration:        FormatDuration(durationMins),
		DurationMinutes: durationMins,
		Stops:           stops,
		BookingToken:    token,
		Segments:        segments,
		Layovers:        layovers,
	}, true
}

func formatClock(hour, min int) string {
	return fmt.Sprintf("%02d:%02d", hour, min)
}

// FormatDuration renders minutes in the "3h 15m" style used
// throughout result payloads.
func FormatDuration(mins int) string {
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

// splitClock pulls the hour and minute back out of a formatted
// timestamp, for the dedup identity key.
func splitClock(formatted string) (string, string) {
	idx := strings.LastIndexByte(formatted, ' ')
	clock := formatted[idx+1:]
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock, "0"
	}
	return parts[0], parts[1]
}
