package gflights

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/url"

	"google.golang.org/protobuf/encoding/protowire"
)

// The flights frontend accepts its internal search state as
// base64url-encoded protobuf wire bytes in the `tfs` and `tfu` query
// params. The field numbers below were recovered by decoding the
// params of manually built searches; there is no published schema.

// Leg identifies one flight for deep-link purposes. AirlineCode and
// FlightNumber are optional; when present the link lands on that exact
// flight instead of the search results for the route.
type Leg struct {
	// YYYY-MM-DD
	Date         string
	Origin       string
	Destination  string
	AirlineCode  string
	FlightNumber string
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// airport kind 1, code in field 2
func encodeLocation(code string) []byte {
	var b []byte
	b = appendVarintField(b, 1, 1)
	b = appendStringField(b, 2, code)
	return b
}

// the selected-flight detail block nested inside a leg
func encodeSelectedDetail(leg Leg) []byte {
	var b []byte
	b = appendStringField(b, 1, leg.Origin)
	b = appendStringField(b, 2, leg.Date)
	b = appendStringField(b, 3, leg.Destination)
	b = appendStringField(b, 5, leg.AirlineCode)
	b = appendStringField(b, 6, leg.FlightNumber)
	return b
}

func encodeLeg(leg Leg) []byte {
	var b []byte
	b = appendStringField(b, 2, leg.Date)
	if leg.AirlineCode != "" && leg.FlightNumber != "" {
		b = appendBytesField(b, 4, encodeSelectedDetail(leg))
	}
	b = appendBytesField(b, 13, encodeLocation(leg.Origin))
	b = appendBytesField(b, 14, encodeLocation(leg.Destination))
	return b
}

func encodeSearchState(legs []Leg, tripKind uint64) []byte {
	var b []byte
	b = appendVarintField(b, 1, 28)
	b = appendVarintField(b, 2, 2)
	for _, leg := range legs {
		b = appendBytesField(b, 3, encodeLeg(leg))
	}
	b = appendVarintField(b, 8, 1)
	b = appendVarintField(b, 9, 1)
	b = appendVarintField(b, 14, 1)

	var sentinel []byte
	sentinel = appendVarintField(sentinel, 1, math.MaxUint64)
	b = appendBytesField(b, 16, sentinel)

	b = appendVarintField(b, 19, tripKind)
	return b
}

// SelectedRoundTripToken builds the tfs state for a round trip with
// both legs pinned to specific flights.
func SelectedRoundTripToken(outbound, inbound Leg) string {
	return base64.RawURLEncoding.EncodeToString(
		encodeSearchState([]Leg{outbound, inbound}, 1),
	)
}

// OneWaySearchToken builds the tfs state for a one-way search, with
// the flight pinned when the leg names one.
func OneWaySearchToken(leg Leg) string {
	return base64.RawURLEncoding.EncodeToString(
		encodeSearchState([]Leg{leg}, 2),
	)
}

// SelectionStateToken wraps an outbound booking token into the
// companion tfu param that marks the outbound leg as already chosen.
func SelectionStateToken(bookingToken string) string {
	var inner []byte
	inner = appendVarintField(inner, 1, 0)

	var b []byte
	b = appendStringField(b, 1, bookingToken)
	b = appendBytesField(b, 2, inner)
	b = appendBytesField(b, 4, nil)
	return base64.RawURLEncoding.EncodeToString(b)
}

const frontendLocale = "hl=en-US&gl=US&curr=USD"

// BookingURL links straight to the booking page for a selected round
// trip, both legs pinned. Works for most single-carrier itineraries;
// mixed ones can still show as unavailable upstream, which is why
// callers always pair it with a search fallback.
func (c *Client) BookingURL(outbound, inbound Leg) string {
	return fmt.Sprintf(
		"%s/booking?tfs=%s&%s",
		c.frontendUrl, SelectedRoundTripToken(outbound, inbound), frontendLocale,
	)
}

// SearchURL links to the one-way results page for a leg.
func (c *Client) SearchURL(leg Leg) string {
	return fmt.Sprintf(
		"%s/search?tfs=%s&%s",
		c.frontendUrl, OneWaySearchToken(leg), frontendLocale,
	)
}

// SelectedOneWayURL links to the one-way results page with the given
// itinerary marked as chosen via its booking token.
func (c *Client) SelectedOneWayURL(leg Leg, bookingToken string) string {
	return fmt.Sprintf(
		"%s/search?tfs=%s&tfu=%s&%s",
		c.frontendUrl, OneWaySearchToken(leg), SelectionStateToken(bookingToken), frontendLocale,
	)
}

// SelectedSearchURL links to the round-trip results page with the
// given legs preselected and the outbound marked as chosen via its
// booking token.
func (c *Client) SelectedSearchURL(outbound, inbound Leg, outboundToken string) string {
	return fmt.Sprintf(
		"%s/search?tfs=%s&tfu=%s&%s",
		c.frontendUrl,
		SelectedRoundTripToken(outbound, inbound),
		SelectionStateToken(outboundToken),
		frontendLocale,
	)
}

// QuerySearchURL is the fallback link built from a natural-language
// query, used when no wire token can be produced.
func (c *Client) QuerySearchURL(origin, destination, departDate, returnDate string) string {
	q := fmt.Sprintf("Flights from %s to %s on %s", origin, destination, departDate)
	if returnDate != "" {
		q += fmt.Sprintf(" returning %s", returnDate)
	}
	return fmt.Sprintf("%s/search?q=%s&%s", c.frontendUrl, url.QueryEscape(q), frontendLocale)
}
