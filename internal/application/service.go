package application

import (
	"context"
	"fmt"
	"strings"

	"coinwatch/internal/domain"

	"go.uber.org/zap"
)

type CoinService struct {
	prices PriceSource
	goals  GoalRepo
	log    *zap.Logger
}

type Option func(*CoinService)

func WithLogger(l *zap.Logger) Option { return func(s *CoinService) { s.log = l } }

func NewCoinService(prices PriceSource, goals GoalRepo, opts ...Option) *CoinService {
	s := &CoinService{prices: prices, goals: goals}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Snapshot fetches a fresh snapshot from the upstream.
func (s *CoinService) Snapshot(ctx context.Context) (domain.SnapshotSet, error) {
	return s.prices.FetchSnapshot(ctx)
}

// Overview returns the current snapshot together with every saved goal.
// A failing goal store degrades to no goals.
func (s *CoinService) Overview(ctx context.Context) (domain.SnapshotSet, domain.GoalMapping, error) {
	set, err := s.prices.FetchSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	goals, err := s.goals.All(ctx)
	if err != nil {
		s.log.Warn("goals_load_failed", zap.Error(err))
		goals = domain.GoalMapping{}
	}
	return set, goals, nil
}

// Coin returns one coin from a fresh snapshot and its saved goal, if any.
func (s *CoinService) Coin(ctx context.Context, id string) (domain.CoinSnapshot, string, error) {
	set, err := s.prices.FetchSnapshot(ctx)
	if err != nil {
		return domain.CoinSnapshot{}, "", err
	}
	coin, ok := set.Find(id)
	if !ok {
		return domain.CoinSnapshot{}, "", fmt.Errorf("coin %q: %w", id, ErrNotFound)
	}
	goal, _, err := s.goals.Get(ctx, coin.ID)
	if err != nil {
		s.log.Warn("goal_load_failed", zap.String("coin", coin.ID), zap.Error(err))
		goal = ""
	}
	return coin, goal, nil
}

// SetGoal stores price for coin under its lowercase identifier. Neither value
// is checked against the allow-list or parsed as a number.
func (s *CoinService) SetGoal(ctx context.Context, coin, price string) error {
	if strings.TrimSpace(coin) == "" || strings.TrimSpace(price) == "" {
		return fmt.Errorf("coinName and goalPrice are required: %w", ErrBadRequest)
	}
	return s.goals.Set(ctx, domain.CoinID(coin), price)
}
