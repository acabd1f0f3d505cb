//go:build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvidePriceSource,
	ProvideGoalStore,
	ProvideCoinService,
)

// InitAPI builds the HTTP application and its cleanup.
func InitAPI(ctx context.Context) (*App, func(), error) {
	wire.Build(
		infraSet,
		ProvideHub,
		ProvidePoller,
		ProvideServer,
		ProvideApp,
	)
	return nil, nil, nil
}
