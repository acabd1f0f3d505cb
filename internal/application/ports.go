package application

import (
	"context"

	"coinwatch/internal/domain"
)

// PriceSource performs exactly one upstream request per call.
type PriceSource interface {
	FetchSnapshot(ctx context.Context) (domain.SnapshotSet, error)
}

// GoalRepo stores one target price text per coin. Writes are last-writer-wins.
type GoalRepo interface {
	All(ctx context.Context) (domain.GoalMapping, error)
	Get(ctx context.Context, coin string) (string, bool, error)
	Set(ctx context.Context, coin, price string) error
}
