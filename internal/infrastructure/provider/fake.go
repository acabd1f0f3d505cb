package provider

import (
	"context"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

// Ensure Fake implements application.PriceSource.
var _ application.PriceSource = (*Fake)(nil)

// Fake serves a fixed snapshot for local development (PROVIDER=fake).
type Fake struct {
	set domain.SnapshotSet
}

func NewFake() *Fake {
	p := func(v float64) *float64 { return &v }
	return &Fake{set: domain.SnapshotSet{
		{ID: "bitcoin", Name: "Bitcoin", Label: "BTC/BTC", Prices: domain.Prices{EUR: p(40000), USD: p(43000), BTC: p(1), CNY: p(310000), GBP: p(34000), RUB: p(3900000)}},
		{ID: "ethereum", Name: "Ethereum", Label: "ETH/BTC", Prices: domain.Prices{EUR: p(2000), USD: p(2150), BTC: p(0.05), CNY: p(15500), GBP: p(1700), RUB: p(195000)}},
		{ID: "solana", Name: "Solana", Label: "SOL/BTC", Prices: domain.Prices{EUR: p(95), USD: p(102), BTC: p(0.0024), CNY: p(735), GBP: p(81), RUB: p(9300)}},
	}}
}

func (f *Fake) FetchSnapshot(context.Context) (domain.SnapshotSet, error) {
	return f.set, nil
}
