package flights

import (
	"context"
	"fmt"
	"strings"

	"clovis-backend/lib/scrapers/gflights"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Options struct {
	// cap on simultaneous candidate searches during a period scan,
	// 0 means one goroutine per candidate
	MaxConcurrency int `json:"max_concurrency"`
}

// Service wraps a scraper client with the fare-finding logic: cheapest
// round trip and one way for concrete dates, plus period scans over
// date windows.
type Service struct {
	client  *gflights.Client
	options Options
}

func NewService(client *gflights.Client, options Options) *Service {
	return &Service{client: client, options: options}
}

// Token fetches a fresh session token pair. Exposed for diagnostics.
func (s *Service) Token(ctx context.Context) (gflights.Session, error) {
	return s.client.FetchSession(ctx)
}

// SearchRoundTrip returns every itinerary for a round-trip query,
// cheapest first.
func (s *Service) SearchRoundTrip(ctx context.Context, origin, destination, departDate, returnDate string) ([]gflights.Itinerary, error) {
	session, err := s.client.FetchSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.SearchRoundTrip(ctx, session, origin, destination, departDate, returnDate)
}

// SearchOneWay returns every itinerary for a one-way query, cheapest
// first.
func (s *Service) SearchOneWay(ctx context.Context, origin, destination, departDate string) ([]gflights.Itinerary, error) {
	session, err := s.client.FetchSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.SearchOneWay(ctx, session, origin, destination, departDate)
}

// ReturnLegs returns the return itineraries compatible with a
// previously selected outbound, identified by its booking token.
func (s *Service) ReturnLegs(ctx context.Context, token, origin, destination, returnDate string) ([]gflights.Itinerary, error) {
	session, err := s.client.FetchSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.SearchReturnLeg(ctx, session, token, origin, destination, returnDate)
}

// CheapestRoundTrip finds the cheapest outbound for the date pair,
// then the cheapest return leg compatible with it. The reported total
// is the round-trip fare quoted on the outbound. Both searches reuse
// one session.
func (s *Service) CheapestRoundTrip(ctx context.Context, origin, destination, departDate, returnDate string) (CheapestResult, error) {
	ctx, span := tracer.Start(ctx, "CheapestRoundTrip")
	defer span.End()
	span.SetAttributes(
		attribute.String("origin", origin),
		attribute.String("destination", destination),
		attribute.String("depart_date", departDate),
		attribute.String("return_date", returnDate),
	)

	session, err := s.client.FetchSession(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session acquisition failed")
		return CheapestResult{}, err
	}

	outbound, err := s.client.SearchRoundTrip(ctx, session, origin, destination, departDate, returnDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "outbound search failed")
		return CheapestResult{}, err
	}
	if len(outbound) == 0 {
		return CheapestResult{}, fmt.Errorf("no outbound flights found")
	}

	cheapestOut := outbound[0]
	if cheapestOut.BookingToken == "" {
		return CheapestResult{}, fmt.Errorf("no booking token found for cheapest outbound flight")
	}

	returns, err := s.client.SearchReturnLeg(ctx, session, cheapestOut.BookingToken, destination, origin, returnDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "return search failed")
		return CheapestResult{}, err
	}
	if len(returns) == 0 {
		return CheapestResult{}, fmt.Errorf("no return flights found")
	}
	cheapestRet := returns[0]

	result := CheapestResult{
		From:       origin,
		To:         destination,
		DepartDate: departDate,
		ReturnDate: returnDate,
		TotalPrice: cheapestOut.Price,
		SearchUrl:  s.client.QuerySearchURL(origin, destination, departDate, returnDate),
		Outbound:   &cheapestOut,
		Return:     &cheapestRet,
	}

	outLeg, outOk := selectedLeg(cheapestOut, origin, destination, departDate)
	retLeg, retOk := selectedLeg(cheapestRet, destination, origin, returnDate)
	if outOk && retOk {
		url := s.client.BookingURL(outLeg, retLeg)
		result.BookingUrl = &url
	}
	return result, nil
}

// CheapestOneWay finds the cheapest one-way itinerary for the date.
func (s *Service) CheapestOneWay(ctx context.Context, origin, destination, departDate string) (CheapestResult, error) {
	ctx, span := tracer.Start(ctx, "CheapestOneWay")
	defer span.End()

	flights, err := s.SearchOneWay(ctx, origin, destination, departDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "one-way search failed")
		return CheapestResult{}, err
	}
	if len(flights) == 0 {
		return CheapestResult{}, fmt.Errorf("no flights found")
	}

	cheapest := flights[0]
	searchLeg := gflights.Leg{Date: departDate, Origin: origin, Destination: destination}

	result := CheapestResult{
		From:       origin,
		To:         destination,
		DepartDate: departDate,
		TotalPrice: cheapest.Price,
		SearchUrl:  s.client.SearchURL(searchLeg),
		Outbound:   &cheapest,
	}
	if cheapest.BookingToken != "" {
		url := s.client.SelectedOneWayURL(searchLeg, cheapest.BookingToken)
		result.BookingUrl = &url
	}
	return result, nil
}

// selectedLeg turns an itinerary into a deep-linkable leg. ok is
// false when the airline code or flight number is missing, in which
// case no booking link can be pinned.
func selectedLeg(it gflights.Itinerary, origin, destination, date string) (gflights.Leg, bool) {
	code := strings.ToUpper(strings.TrimSpace(it.AirlineCode))

	number := it.FlightNumber
	if len(it.Segments) > 0 && it.Segments[0].FlightNumber != "" {
		number = it.Segments[0].FlightNumber
	}
	number = digitsOnly(number)

	if code == "" || number == "" {
		return gflights.Leg{}, false
	}
	return gflights.Leg{
		Date:         date,
		Origin:       origin,
		Destination:  destination,
		AirlineCode:  code,
		FlightNumber: number,
	}, true
}

// digitsOnly strips the carrier prefix off flight numbers like
// "NK1772".
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
