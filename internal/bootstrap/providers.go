package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"coinwatch/internal/application"
	"coinwatch/internal/config"
	"coinwatch/internal/infrastructure/filestore"
	httpserver "coinwatch/internal/infrastructure/http"
	"coinwatch/internal/infrastructure/httpx"
	"coinwatch/internal/infrastructure/logx"
	"coinwatch/internal/infrastructure/pg"
	"coinwatch/internal/infrastructure/provider"
	redisstore "coinwatch/internal/infrastructure/redis"
	"coinwatch/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORAGE=pg")

// App is everything cmd/api needs to serve.
type App struct {
	Config  config.Config
	Handler http.Handler
	// Poller is nil unless BROADCAST_MODE=shared.
	Poller application.Worker
}

// GoalStore couples the repository with an optional readiness check.
type GoalStore struct {
	Repo application.GoalRepo
	Ping func(ctx context.Context) error
}

func ProvideConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func ProvideLogger(cfg config.Config) *zap.Logger { return logx.Configure(cfg.LogLevel) }

func ProvidePriceSource(cfg config.Config, log *zap.Logger) (application.PriceSource, error) {
	switch cfg.Provider {
	case config.ProviderWorldCoinIndex:
		return &provider.WorldCoinIndexProvider{
			BaseURL: cfg.APIBaseURL,
			APIKey:  cfg.APIKey,
			Client:  &httpx.Client{HTTP: &http.Client{Timeout: cfg.RequestTimeout}},
			Log:     log,
		}, nil
	case config.ProviderFake:
		log.Warn("using fake price provider")
		return provider.NewFake(), nil
	default:
		return nil, fmt.Errorf("unsupported PROVIDER=%q", cfg.Provider)
	}
}

func ProvideGoalStore(ctx context.Context, cfg config.Config, log *zap.Logger) (GoalStore, func(), error) {
	switch cfg.Storage {
	case config.StoragePG:
		if cfg.DatabaseURL == "" {
			return GoalStore{}, func() {}, ErrMissingDBURL
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return GoalStore{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return GoalStore{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return GoalStore{Repo: pg.NewGoalRepo(db), Ping: db.Ping}, cleanup, nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := redisstore.New(client, cfg.RedisGoalsKey)
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		return GoalStore{Repo: store, Ping: store.Ping}, cleanup, nil
	default:
		return GoalStore{Repo: filestore.NewGoalRepo(cfg.GoalsFile, log)}, func() {}, nil
	}
}

func ProvideCoinService(src application.PriceSource, goals GoalStore, log *zap.Logger) *application.CoinService {
	return application.NewCoinService(src, goals.Repo, application.WithLogger(log))
}

// ProvideHub returns nil in per-connection mode.
func ProvideHub(cfg config.Config) *application.Hub {
	if cfg.BroadcastMode != config.BroadcastShared {
		return nil
	}
	return application.NewHub()
}

func ProvidePoller(cfg config.Config, src application.PriceSource, hub *application.Hub, log *zap.Logger) application.Worker {
	if hub == nil {
		return nil
	}
	return &worker.Poller{
		Source:    src,
		Hub:       hub,
		PollEvery: cfg.PushInterval,
		Timeout:   cfg.RequestTimeout,
		Log:       log.With(zap.String("worker", "poller")),
	}
}

func ProvideServer(cfg config.Config, svc *application.CoinService, hub *application.Hub, goals GoalStore) *httpserver.Server {
	opts := []httpserver.ServerOption{httpserver.WithPushInterval(cfg.PushInterval)}
	if hub != nil {
		opts = append(opts, httpserver.WithHub(hub))
	}
	srv := httpserver.NewServer(svc, opts...)
	if goals.Ping != nil {
		srv.SetReadyCheck(goals.Ping)
	}
	return srv
}

func ProvideApp(cfg config.Config, srv *httpserver.Server, poller application.Worker) *App {
	return &App{Config: cfg, Handler: httpserver.NewRouter(srv), Poller: poller}
}
