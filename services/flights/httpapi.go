package flights

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router exposes the service over HTTP. Every response carries the
// `{success, data | error}` envelope; upstream failures map to 502,
// bad parameters to 400.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/token", s.handleToken)
	r.Route("/flights", func(r chi.Router) {
		r.Get("/search/roundTrip", s.handleSearch)
		r.Get("/search/oneWay", s.handleSearchOneWay)
		r.Get("/cheapest", s.handleCheapest)
		r.Get("/cheapest/oneWay", s.handleCheapestOneWay)
		r.Post("/return", s.handleReturn)
		r.Get("/period", s.handlePeriod)
		r.Get("/period/oneWay", s.handlePeriodOneWay)
	})
	return r
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: err.Error()})
}

// routePair reads and normalizes the from/to query params.
func routePair(r *http.Request) (string, string, error) {
	from := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("from")))
	to := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("to")))
	if from == "" || to == "" {
		return "", "", fmt.Errorf("missing required parameters: 'from' and 'to' are required")
	}
	return from, to, nil
}

// dateOrDefault falls back to today plus offsetDays when the param is
// absent.
func dateOrDefault(r *http.Request, param string, offsetDays int) string {
	if v := r.URL.Query().Get(param); v != "" {
		return v
	}
	return time.Now().AddDate(0, 0, offsetDays).Format(dateLayout)
}

func (s *Service) handleToken(w http.ResponseWriter, r *http.Request) {
	session, err := s.Token(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "token fetch failed", "err", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, session)
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	from, to, err := routePair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	departDate := dateOrDefault(r, "departDate", 7)
	returnDate := dateOrDefault(r, "returnDate", 14)

	flights, err := s.SearchRoundTrip(r.Context(), from, to, departDate, returnDate)
	if err != nil {
		slog.WarnContext(r.Context(), "round-trip search failed", "from", from, "to", to, "err", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, SearchResult{
		From:       from,
		To:         to,
		DepartDate: departDate,
		ReturnDate: returnDate,
		Flights:    flights,
	})
}

func (s *Service) handleSearchOneWay(w http.ResponseWriter, r *http.Request) {
	from, to, err := routePair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	departDate := dateOrDefault(r, "departDate", 7)

	flights, err := s.SearchOneWay(r.Context(), from, to, departDate)
	if err != nil {
		slog.WarnContext(r.Context(), "one-way search failed", "from", from, "to", to, "err", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	if len(flights) == 0 {
		writeError(w, http.StatusBadGateway, fmt.Errorf("no flights found"))
		return
	}

	all := flights
	if len(all) > 20 {
		all = all[:20]
	}
	writeData(w, OneWaySearchResult{
		From:         from,
		To:           to,
		DepartDate:   departDate,
		Cheapest:     &flights[0],
		TotalFlights: len(flights),
		AllFlights:   all,
	})
}

func (s *Service) handleCheapest(w http.ResponseWriter, r *http.Request) {
	from, to, err := routePair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	departDate := dateOrDefault(r, "departDate", 7)
	returnDate := dateOrDefault(r, "returnDate", 14)

	result, err := s.CheapestRoundTrip(r.Context(), from, to, departDate, returnDate)
	if err != nil {
		slog.WarnContext(r.Context(), "cheapest search failed", "from", from, "to", to, "err", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, result)
}

func (s *Service) handleCheapestOneWay(w http.ResponseWriter, r *http.Request) {
	from, to, err := routePair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	departDate := dateOrDefault(r, "departDate", 7)

	result, err := s.CheapestOneWay(r.Context(), from, to, departDate)
	if err != nil {
		slog.WarnContext(r.Context(), "cheapest one-way failed", "from", from, "to", to, "err", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, result)
}

type returnRequest struct {
	Token       string `json:"token"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	ReturnDate  string `json:"returnDate"`
}

func (s *Service) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Token == "" || req.Origin == "" || req.Destination == "" || req.ReturnDate == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf(
			"missing required fields: token, origin, destination and returnDate are required",
		))
		return
	}
	origin := strings.ToUpper(strings.TrimSpace(req.Origin))
	destination := strings.ToUpper(strings.TrimSpace(req.Destination))

	flights, err := s.ReturnLegs(r.Context(), req.Token, origin, destination, req.ReturnDate)
	if err != nil {
		slog.WarnContext(r.Context(), "return search failed", "origin", origin, "err", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, ReturnSearchResult{
		Origin:      origin,
		Destination: destination,
		ReturnDate:  req.ReturnDate,
		Flights:     flights,
	})
}

// periodQuery reads the shared period scan params.
func periodQuery(r *http.Request) (PeriodQuery, error) {
	from, to, err := routePair(r)
	if err != nil {
		return PeriodQuery{}, err
	}

	q := PeriodQuery{
		Origin:      from,
		Destination: to,
		Start:       r.URL.Query().Get("periodStart"),
		End:         r.URL.Query().Get("periodEnd"),
		TripDays:    1,
	}
	if q.Start == "" || q.End == "" {
		return PeriodQuery{}, fmt.Errorf(
			"missing required parameters: 'periodStart' and 'periodEnd' are required",
		)
	}
	if v := r.URL.Query().Get("tripDays"); v != "" {
		q.TripDays, err = strconv.Atoi(v)
		if err != nil {
			return PeriodQuery{}, fmt.Errorf("invalid tripDays %q", v)
		}
	}
	if v := r.URL.Query().Get("durationVariation"); v != "" {
		q.DurationVariation, err = strconv.Atoi(v)
		if err != nil {
			return PeriodQuery{}, fmt.Errorf("invalid durationVariation %q", v)
		}
	}
	q.PreferWeekends = r.URL.Query().Get("preferWeekends") == "true"
	return q, nil
}

func (s *Service) handlePeriod(w http.ResponseWriter, r *http.Request) {
	q, err := periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	results, err := s.SearchPeriod(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeData(w, results)
}

func (s *Service) handlePeriodOneWay(w http.ResponseWriter, r *http.Request) {
	q, err := periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	results, err := s.SearchPeriodOneWay(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeData(w, results)
}
