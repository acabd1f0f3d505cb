package httpserver

import (
	"context"
	"net/http"
	"sync"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

var _ application.GoalRepo = (*fakeGoalRepo)(nil)
var _ application.PriceSource = (*scriptedSource)(nil)

type fakeGoalRepo struct {
	mu    sync.Mutex
	store map[string]string
}

func (f *fakeGoalRepo) All(context.Context) (domain.GoalMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := domain.GoalMapping{}
	for k, v := range f.store {
		out[k] = v
	}
	return out, nil
}

func (f *fakeGoalRepo) Get(_ context.Context, coin string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.store[coin]
	return v, ok, nil
}

func (f *fakeGoalRepo) Set(_ context.Context, coin, price string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.store == nil {
		f.store = map[string]string{}
	}
	f.store[coin] = price
	return nil
}

type result struct {
	set domain.SnapshotSet
	err error
}

// scriptedSource replays results in order and repeats the last one forever.
type scriptedSource struct {
	mu      sync.Mutex
	results []result
	calls   int
}

func (s *scriptedSource) FetchSnapshot(context.Context) (domain.SnapshotSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	return s.results[i].set, s.results[i].err
}

func (s *scriptedSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func p(v float64) *float64 { return &v }

func snapshot(btcEUR float64) domain.SnapshotSet {
	return domain.SnapshotSet{
		{ID: "bitcoin", Name: "Bitcoin", Label: "BTC/BTC", Prices: domain.Prices{EUR: p(btcEUR), USD: p(btcEUR * 1.08), BTC: p(1)}},
		{ID: "ethereum", Name: "Ethereum", Label: "ETH/BTC", Prices: domain.Prices{EUR: p(2000)}},
	}
}

func newTestServer(src application.PriceSource, goals *fakeGoalRepo, opts ...ServerOption) (*Server, http.Handler) {
	svc := application.NewCoinService(src, goals)
	srv := NewServer(svc, opts...)
	return srv, NewRouter(srv)
}
