package application

import (
	"context"
	"errors"

	"coinwatch/internal/domain"
)

var (
	ErrRepo = errors.New("repo error")
)

func f(v float64) *float64 { return &v }

type fakeGoalRepo struct {
	store map[string]string
	err   error
}

func (r *fakeGoalRepo) All(context.Context) (domain.GoalMapping, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := domain.GoalMapping{}
	for k, v := range r.store {
		out[k] = v
	}
	return out, nil
}

func (r *fakeGoalRepo) Get(_ context.Context, coin string) (string, bool, error) {
	if r.err != nil {
		return "", false, r.err
	}
	v, ok := r.store[coin]
	return v, ok, nil
}

func (r *fakeGoalRepo) Set(_ context.Context, coin, price string) error {
	if r.err != nil {
		return r.err
	}
	if r.store == nil {
		r.store = map[string]string{}
	}
	r.store[coin] = price
	return nil
}

type fakePriceSource struct {
	out   domain.SnapshotSet
	err   error
	calls int
}

func (p *fakePriceSource) FetchSnapshot(context.Context) (domain.SnapshotSet, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.out, nil
}

func sampleSet() domain.SnapshotSet {
	return domain.SnapshotSet{
		{ID: "bitcoin", Name: "Bitcoin", Prices: domain.Prices{EUR: f(40000), USD: f(43000), BTC: f(1)}},
		{ID: "ethereum", Name: "Ethereum", Prices: domain.Prices{EUR: f(2000), USD: f(2150)}},
	}
}
