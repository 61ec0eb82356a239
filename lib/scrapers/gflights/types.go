package gflights

// Session holds the two opaque tokens scraped off the flights landing
// page. Both are required on every shopping RPC; they are fetched fresh
// per logical search and never persisted.
type Session struct {
	// signed integer rendered as a string, sent as the `f.sid` query param
	Sid string `json:"sid"`
	// build label, sent as the `bl` query param
	Bl string `json:"bl"`
}

type TripType int

const (
	TripRoundTrip TripType = iota
	TripOneWay
	// a search for return legs matching a previously selected
	// outbound itinerary, keyed by its booking token
	TripReturnLeg
)

// SearchRequest describes one shopping RPC. Dates are YYYY-MM-DD.
type SearchRequest struct {
	Trip        TripType
	Origin      string
	Destination string
	DepartDate  string
	// round trips only
	ReturnDate string
	// required for TripReturnLeg: the booking token of the
	// selected outbound itinerary
	PriorToken string
}

// Segment is one physical flight leg within an itinerary.
type Segment struct {
	Origin          string `json:"origin"`
	OriginName      string `json:"originName"`
	Destination     string `json:"destination"`
	DestinationName string `json:"destinationName"`
	DepartureTime   string `json:"departureTime"`
	ArrivalTime     string `json:"arrivalTime"`
	Duration        string `json:"duration"`
	FlightNumber    string `json:"flightNumber"`
	Airline         string `json:"airline"`
	Aircraft        string `json:"aircraft"`
}

// Layover is the connection gap between two consecutive segments.
type Layover struct {
	Airport     string `json:"airport"`
	AirportName string `json:"airportName"`
	Duration    string `json:"duration"`
}

// Itinerary is one priced, bookable flight option recovered from a
// shopping response. Values are immutable once decoded.
type Itinerary struct {
	Price           int       `json:"price"`
	Airline         string    `json:"airline"`
	AirlineCode     string    `json:"airlineCode"`
	FlightNumber    string    `json:"flightNumber"`
	FlightNumbers   []string  `json:"flightNumbers,omitempty"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureTime   string    `json:"departureTime"`
	ArrivalTime     string    `json:"arrivalTime"`
	Duration        string    `json:"duration"`
	DurationMinutes int       `json:"durationMinutes"`
	Stops           int       `json:"stops"`
	Aircraft        string    `json:"aircraft"`
	BookingToken    string    `json:"token"`
	Segments        []Segment `json:"segments"`
	Layovers        []Layover `json:"layovers"`
}
