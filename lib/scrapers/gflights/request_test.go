package gflights

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// unwrap reverses the double encoding and returns the inner
// positional array as raw JSON
func unwrap(t *testing.T, encoded string) string {
	t.Helper()
	var outer []*string
	require.NoError(t, json.Unmarshal([]byte(encoded), &outer))
	require.Len(t, outer, 2)
	require.Nil(t, outer[0])
	require.NotNil(t, outer[1])
	return *outer[1]
}

func TestEncodeShoppingRequestRoundTrip(t *testing.T) {
	encoded, err := EncodeShoppingRequest(SearchRequest{
		Trip:        TripRoundTrip,
		Origin:      "PBI",
		Destination: "LAS",
		DepartDate:  "2026-02-14",
		ReturnDate:  "2026-02-17",
	})
	require.NoError(t, err)

	want := `[[],[null,null,1,null,[],1,[1,0,0,0],null,null,null,null,null,null,` +
		`[[[[["PBI",0]]],[[["LAS",0]]],null,0,null,null,"2026-02-14",null,null,null,null,null,null,null,3],` +
		`[[[["LAS",0]]],[[["PBI",0]]],null,0,null,null,"2026-02-17",null,null,null,null,null,null,null,3]],` +
		`null,null,null,1],0,0,0,1]`
	require.Equal(t, want, unwrap(t, encoded))
}

func TestEncodeShoppingRequestOneWay(t *testing.T) {
	encoded, err := EncodeShoppingRequest(SearchRequest{
		Trip:        TripOneWay,
		Origin:      "SFO",
		Destination: "JFK",
		DepartDate:  "2026-03-02",
	})
	require.NoError(t, err)

	want := `[[],[null,null,2,null,[],1,[1,0,0,0],null,null,null,null,null,null,` +
		`[[[[["SFO",0]]],[[["JFK",0]]],null,0,null,null,"2026-03-02"]],` +
		`null,null,null,1],0,0,0,2]`
	require.Equal(t, want, unwrap(t, encoded))
}

func TestEncodeShoppingRequestReturnLeg(t *testing.T) {
	encoded, err := EncodeShoppingRequest(SearchRequest{
		Trip:        TripReturnLeg,
		Origin:      "PBI",
		Destination: "LAS",
		DepartDate:  "2026-02-17",
		PriorToken:  "OutboundTok",
	})
	require.NoError(t, err)

	want := `[[null,"OutboundTok"],[null,null,1,null,[],1,[1,0,0,0],null,null,null,null,null,null,` +
		`[[[[["PBI",0]]],[[["LAS",0]]],null,0,null,null,"2026-02-17"]],` +
		`null,null,null,1],0,0,0,2]`
	require.Equal(t, want, unwrap(t, encoded))
}

func TestEncodeShoppingRequestReturnLegRequiresToken(t *testing.T) {
	_, err := EncodeShoppingRequest(SearchRequest{
		Trip:        TripReturnLeg,
		Origin:      "PBI",
		Destination: "LAS",
		DepartDate:  "2026-02-17",
	})
	require.Error(t, err)
}

func TestRpcQuery(t *testing.T) {
	s := Session{Sid: "-987", Bl: "boq_x"}

	query, err := rpcQuery(s, TripRoundTrip)
	require.NoError(t, err)
	require.Equal(t, "-987", query.Get("f.sid"))
	require.Equal(t, "boq_x", query.Get("bl"))
	require.Equal(t, "en-US", query.Get("hl"))
	require.Equal(t, "c", query.Get("rt"))
	require.Equal(t, "162", query.Get("soc-app"))
	require.Empty(t, query.Get("gl"), "gl is a one-way only param")

	reqid, err := strconv.Atoi(query.Get("_reqid"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, reqid, 100000)
	require.Less(t, reqid, 1000000)

	oneWay, err := rpcQuery(s, TripOneWay)
	require.NoError(t, err)
	require.Equal(t, "US", oneWay.Get("gl"))
}
