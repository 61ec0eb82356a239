package gflights

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mazen160/go-random"
)

// Every position in these arrays is a protocol constant recovered from
// observed traffic. A misplaced field does not produce an error from
// the remote side, it just reports "no results".

// [[["PBI",0]]]
func placeList(code string) []any {
	return []any{[]any{[]any{code, 0}}}
}

// a full 15-slot leg used by round-trip requests, trailing constant 3
func roundTripLeg(origin, destination, date string) []any {
	return []any{
		placeList(origin),
		placeList(destination),
		nil, 0, nil, nil, date,
		nil, nil, nil, nil, nil, nil, nil, 3,
	}
}

// the short 7-slot leg used by one-way and return-leg requests
func shortLeg(origin, destination, date string) []any {
	return []any{
		placeList(origin),
		placeList(destination),
		nil, 0, nil, nil, date,
	}
}

// tripSpec is the large middle element shared by every request
// variant: 1 adult, economy, and the legs at slot 13.
func tripSpec(tripKind int, legs []any) []any {
	return []any{
		nil, nil, tripKind, nil, []any{}, 1, []any{1, 0, 0, 0},
		nil, nil, nil, nil, nil, nil,
		legs,
		nil, nil, nil, 1,
	}
}

func innerPayload(req SearchRequest) ([]any, error) {
	switch req.Trip {
	case TripRoundTrip:
		return []any{
			[]any{},
			tripSpec(1, []any{
				roundTripLeg(req.Origin, req.Destination, req.DepartDate),
				roundTripLeg(req.Destination, req.Origin, req.ReturnDate),
			}),
			0, 0, 0, 1,
		}, nil
	case TripOneWay:
		return []any{
			[]any{},
			tripSpec(2, []any{
				shortLeg(req.Origin, req.Destination, req.DepartDate),
			}),
			0, 0, 0, 2,
		}, nil
	case TripReturnLeg:
		if req.PriorToken == "" {
			return nil, fmt.Errorf("return-leg search requires the outbound booking token")
		}
		return []any{
			[]any{nil, req.PriorToken},
			tripSpec(1, []any{
				shortLeg(req.Origin, req.Destination, req.DepartDate),
			}),
			0, 0, 0, 2,
		}, nil
	}
	return nil, fmt.Errorf("unknown trip type %d", req.Trip)
}

// EncodeShoppingRequest serializes a search into the `f.req` form
// field value: the positional array is JSON-encoded, then wrapped as
// the second element of an outer two-element array which is
// JSON-encoded again. The double encoding is required by the remote
// protocol.
func EncodeShoppingRequest(req SearchRequest) (string, error) {
	inner, err := innerPayload(req)
	if err != nil {
		return "", err
	}
	innerJson, err := json.Marshal(inner)
	if err != nil {
		return "", err
	}
	outer, err := json.Marshal([]any{nil, string(innerJson)})
	if err != nil {
		return "", err
	}
	return string(outer), nil
}

// rpcQuery builds the query string for a shopping rpc: session tokens,
// fixed locale/platform identifiers and a randomized request id drawn
// uniformly from [100000, 999999].
func rpcQuery(s Session, trip TripType) (url.Values, error) {
	reqid, err := random.IntRange(100000, 1000000)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("f.sid", s.Sid)
	query.Set("bl", s.Bl)
	query.Set("hl", "en-US")
	if trip == TripOneWay {
		query.Set("gl", "US")
	}
	query.Set("soc-app", "162")
	query.Set("soc-platform", "1")
	query.Set("soc-device", "1")
	query.Set("_reqid", strconv.Itoa(reqid))
	query.Set("rt", "c")
	return query, nil
}
