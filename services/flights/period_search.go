package flights

import (
	"context"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/semaphore"
)

// SearchPeriod scans a date window for the cheapest round trip: one
// concurrent search per candidate pair, each resolving independently
// to a result or a sentinel-priced failure. Results come back sorted
// ascending by price, failures last in candidate order.
func (s *Service) SearchPeriod(ctx context.Context, q PeriodQuery) ([]PeriodResult, error) {
	ctx, span := tracer.Start(ctx, "SearchPeriod")
	defer span.End()

	pairs, err := RoundTripPairs(q)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates", len(pairs)))
	if len(pairs) == 0 {
		return nil, nil
	}

	results := make([]PeriodResult, len(pairs))
	s.forEachCandidate(ctx, len(pairs), func(i int) {
		pair := pairs[i]
		r, err := s.CheapestRoundTrip(ctx, q.Origin, q.Destination, pair.Depart, pair.Return)
		if err != nil {
			results[i] = failedCandidate(q, pair.Depart, pair.Return, err)
			return
		}
		results[i] = PeriodResult{CheapestResult: r}
	})

	sortByPrice(results)
	return results, nil
}

// SearchPeriodOneWay is the one-way variant: one candidate per date
// in the window.
func (s *Service) SearchPeriodOneWay(ctx context.Context, q PeriodQuery) ([]PeriodResult, error) {
	ctx, span := tracer.Start(ctx, "SearchPeriodOneWay")
	defer span.End()

	dates, err := OneWayDates(q.Start, q.End)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates", len(dates)))
	if len(dates) == 0 {
		return nil, nil
	}

	results := make([]PeriodResult, len(dates))
	s.forEachCandidate(ctx, len(dates), func(i int) {
		r, err := s.CheapestOneWay(ctx, q.Origin, q.Destination, dates[i])
		if err != nil {
			results[i] = failedCandidate(q, dates[i], "", err)
			return
		}
		results[i] = PeriodResult{CheapestResult: r}
	})

	sortByPrice(results)
	return results, nil
}

// forEachCandidate fans fn out over candidate indices, bounded by
// MaxConcurrency when set. Each fn owns its slot in the results
// slice, so no locking is needed.
func (s *Service) forEachCandidate(ctx context.Context, n int, fn func(i int)) {
	var sem *semaphore.Weighted
	if s.options.MaxConcurrency > 0 {
		sem = semaphore.NewWeighted(int64(s.options.MaxConcurrency))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if sem != nil {
			if err := sem.Acquire(ctx, 1); err != nil {
				// canceled mid-batch: run the rest inline so every
				// slot still gets a failure record
				fn(i)
				continue
			}
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if sem != nil {
				defer sem.Release(1)
			}
			fn(i)
		}(i)
	}
	wg.Wait()
}

func failedCandidate(q PeriodQuery, depart, ret string, err error) PeriodResult {
	return PeriodResult{
		CheapestResult: CheapestResult{
			From:       q.Origin,
			To:         q.Destination,
			DepartDate: depart,
			ReturnDate: ret,
			TotalPrice: PriceUnavailable,
		},
		Error: err.Error(),
	}
}

// stable, so equally priced failures keep candidate order
func sortByPrice(results []PeriodResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalPrice < results[j].TotalPrice
	})
}
