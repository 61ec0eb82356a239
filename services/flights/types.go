package flights

import (
	"math"

	"clovis-backend/lib/scrapers/gflights"
)

// PriceUnavailable is the sentinel price carried by period candidates
// whose search failed. It is larger than any real fare, so a plain
// ascending sort ranks every failure after every success.
const PriceUnavailable = math.MaxInt32

// CheapestResult is the cheapest bookable option for one concrete
// date (pair). One-way results leave ReturnDate empty and Return nil.
type CheapestResult struct {
	From       string `json:"from"`
	To         string `json:"to"`
	DepartDate string `json:"departDate"`
	ReturnDate string `json:"returnDate,omitempty"`
	TotalPrice int    `json:"totalPrice"`
	// nil when the itinerary lacks the airline or flight number
	// needed to pin a booking deep link
	BookingUrl *string             `json:"bookingUrl"`
	SearchUrl  string              `json:"searchUrl"`
	Outbound   *gflights.Itinerary `json:"outbound"`
	Return     *gflights.Itinerary `json:"return"`
}

// PeriodResult is one candidate of a period scan: either a filled
// CheapestResult, or a failure record with the sentinel price and the
// error message.
type PeriodResult struct {
	CheapestResult
	Error string `json:"error,omitempty"`
}

// SearchResult is the raw list of itineraries for one round-trip
// query, cheapest first.
type SearchResult struct {
	From       string               `json:"from"`
	To         string               `json:"to"`
	DepartDate string               `json:"departDate"`
	ReturnDate string               `json:"returnDate"`
	Flights    []gflights.Itinerary `json:"flights"`
}

// OneWaySearchResult summarizes a one-way query: the cheapest option
// plus the first options overall.
type OneWaySearchResult struct {
	From         string               `json:"from"`
	To           string               `json:"to"`
	DepartDate   string               `json:"departDate"`
	Cheapest     *gflights.Itinerary  `json:"cheapest"`
	TotalFlights int                  `json:"totalFlights"`
	AllFlights   []gflights.Itinerary `json:"allFlights"`
}

// ReturnSearchResult lists the return legs compatible with a selected
// outbound itinerary.
type ReturnSearchResult struct {
	Origin      string               `json:"origin"`
	Destination string               `json:"destination"`
	ReturnDate  string               `json:"returnDate"`
	Flights     []gflights.Itinerary `json:"flights"`
}
