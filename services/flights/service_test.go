package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"clovis-backend/lib/scrapers/gflights"

	"github.com/stretchr/testify/require"
)

const testLanding = `<!DOCTYPE html>
<html><head>
<script nonce="t">window.WIZ_global_data = {"FdrFJe":"-555","cfb2h":"boq_travel-frontend-ui_test"};</script>
</head><body><c-wiz></c-wiz></body></html>`

const outboundRpc = `)]}'

[["NK","1772",null,"Spirit"],"PBI",[2026,2,1],[9,30],"LAS",[2026,2,1],[12,45],195,null],[[null,250],"SelToken"]`

const returnRpc = `)]}'

[["NK","407",null,"Spirit"],"LAS",[2026,2,3],[14,0],"PBI",[2026,2,3],[21,40],280,null],[[null,260],"RetTok"]`

// newTestService stands up a stub upstream serving the landing page
// and canned rpc payloads. Requests whose payload mentions a date in
// failDates get a 500.
func newTestService(t *testing.T, options Options, failDates ...string) *Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/flights", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testLanding)
	})
	mux.HandleFunc("/rpc", func(w http.ResponseWriter, r *http.Request) {
		freq := r.FormValue("f.req")
		for _, d := range failDates {
			if strings.Contains(freq, d) {
				http.Error(w, "synthetic upstream failure", http.StatusInternalServerError)
				return
			}
		}
		if strings.Contains(freq, "SelToken") {
			fmt.Fprint(w, returnRpc)
			return
		}
		fmt.Fprint(w, outboundRpc)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := gflights.NewClient(gflights.Options{
		SiteUrl:     server.URL,
		FrontendUrl: server.URL + "/flights",
		RpcUrl:      server.URL + "/rpc",
	})
	require.NoError(t, err)
	return NewService(client, options)
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doRequest(t *testing.T, s *Service, method, target string, body string) (int, testEnvelope) {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, r)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestTokenRoute(t *testing.T) {
	s := newTestService(t, Options{})

	code, env := doRequest(t, s, http.MethodGet, "/token", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var session gflights.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.Equal(t, "-555", session.Sid)
	require.Equal(t, "boq_travel-frontend-ui_test", session.Bl)
}

func TestCheapestRoute(t *testing.T) {
	s := newTestService(t, Options{})

	code, env := doRequest(t, s, http.MethodGet,
		"/flights/cheapest?from=pbi&to=las&departDate=2026-02-01&returnDate=2026-02-03", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var result CheapestResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, "PBI", result.From)
	require.Equal(t, "LAS", result.To)
	require.Equal(t, 250, result.TotalPrice, "total is the fare quoted on the outbound")
	require.NotNil(t, result.Outbound)
	require.Equal(t, "SelToken", result.Outbound.BookingToken)
	require.NotNil(t, result.Return)
	require.Equal(t, "RetTok", result.Return.BookingToken)
	require.NotNil(t, result.BookingUrl)
	require.Contains(t, *result.BookingUrl, "/booking?tfs=")
	require.Contains(t, result.SearchUrl, "q="+url.QueryEscape("Flights from PBI to LAS on 2026-02-01 returning 2026-02-03"))
}

func TestCheapestRouteMissingParams(t *testing.T) {
	s := newTestService(t, Options{})

	code, env := doRequest(t, s, http.MethodGet, "/flights/cheapest?from=PBI", "")
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
	require.Contains(t, env.Error, "required")
}

func TestSearchRoundTripRoute(t *testing.T) {
	s := newTestService(t, Options{})

	code, env := doRequest(t, s, http.MethodGet,
		"/flights/search/roundTrip?from=PBI&to=LAS&departDate=2026-02-01&returnDate=2026-02-03", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var result SearchResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, "2026-02-01", result.DepartDate)
	require.Equal(t, "2026-02-03", result.ReturnDate)
	require.Len(t, result.Flights, 1)
	require.Equal(t, 250, result.Flights[0].Price)
}

func TestSearchOneWayRoute(t *testing.T) {
	s := newTestService(t, Options{})

	code, env := doRequest(t, s, http.MethodGet,
		"/flights/search/oneWay?from=PBI&to=LAS&departDate=2026-02-01", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var result OneWaySearchResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, 1, result.TotalFlights)
	require.Len(t, result.AllFlights, 1)
	require.NotNil(t, result.Cheapest)
	require.Equal(t, 250, result.Cheapest.Price)
}

func TestReturnRoute(t *testing.T) {
	s := newTestService(t, Options{})

	body := `{"token":"SelToken","origin":"las","destination":"pbi","returnDate":"2026-02-03"}`
	code, env := doRequest(t, s, http.MethodPost, "/flights/return", body)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var result ReturnSearchResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, "LAS", result.Origin)
	require.Equal(t, "PBI", result.Destination)
	require.Len(t, result.Flights, 1)
	require.Equal(t, "RetTok", result.Flights[0].BookingToken)

	code, env = doRequest(t, s, http.MethodPost, "/flights/return", `{"token":"x"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
}

func TestSearchPeriodPartialFailure(t *testing.T) {
	s := newTestService(t, Options{MaxConcurrency: 2}, "2026-02-02")

	results, err := s.SearchPeriod(context.Background(), PeriodQuery{
		Origin:      "PBI",
		Destination: "LAS",
		Start:       "2026-02-01",
		End:         "2026-02-05",
		TripDays:    3,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// the two working pairs first, then the failed candidate
	require.Equal(t, 250, results[0].TotalPrice)
	require.Empty(t, results[0].Error)
	require.Equal(t, 250, results[1].TotalPrice)
	require.Equal(t, PriceUnavailable, results[2].TotalPrice)
	require.Equal(t, "2026-02-02", results[2].DepartDate)
	require.NotEmpty(t, results[2].Error)
	require.Nil(t, results[2].Outbound)
}

func TestSearchPeriodOneWay(t *testing.T) {
	s := newTestService(t, Options{MaxConcurrency: 2}, "2026-02-03")

	results, err := s.SearchPeriodOneWay(context.Background(), PeriodQuery{
		Origin:      "PBI",
		Destination: "LAS",
		Start:       "2026-02-01",
		End:         "2026-02-03",
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, 250, results[0].TotalPrice)
	require.Equal(t, 250, results[1].TotalPrice)
	require.Equal(t, PriceUnavailable, results[2].TotalPrice)
	require.Equal(t, "2026-02-03", results[2].DepartDate)
	require.Empty(t, results[2].ReturnDate)
}
