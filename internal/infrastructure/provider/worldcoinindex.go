package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/httpx"
	"coinwatch/internal/infrastructure/metrics"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	worldCoinIndexPath = "/apiservice/json"
)

type WorldCoinIndexProvider struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
	Log     *zap.Logger
}

var _ application.PriceSource = (*WorldCoinIndexProvider)(nil)

type wciMarket struct {
	Label     string   `json:"Label"`
	Name      string   `json:"Name"`
	PriceBTC  *float64 `json:"Price_btc"`
	PriceUSD  *float64 `json:"Price_usd"`
	PriceCNY  *float64 `json:"Price_cny"`
	PriceEUR  *float64 `json:"Price_eur"`
	PriceGBP  *float64 `json:"Price_gbp"`
	PriceRUR  *float64 `json:"Price_rur"`
	Volume24h *float64 `json:"Volume_24h"`
	Timestamp int64    `json:"Timestamp"`
}

type wciResp struct {
	Markets *[]wciMarket `json:"Markets"`
}

// FetchSnapshot performs one request against the index and keeps allow-listed
// coins in response order.
func (p *WorldCoinIndexProvider) FetchSnapshot(ctx context.Context) (domain.SnapshotSet, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	if p.BaseURL == "" || p.APIKey == "" {
		return nil, fmt.Errorf("worldcoinindex: missing configuration: %w", application.ErrUpstream)
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("worldcoinindex: invalid base url: %v: %w", err, application.ErrUpstream)
	}
	u.Path = worldCoinIndexPath
	q := u.Query()
	q.Set("key", p.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("worldcoinindex: create request: %v: %w", err, application.ErrUpstream)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}

	start := time.Now()
	var body wciResp
	err = client.DoJSON(ctx, req, &body)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		log.Warn("worldcoinindex.fetch_failed", zap.Error(err))
		return nil, fmt.Errorf("worldcoinindex: %v: %w", err, application.ErrUpstream)
	}
	if body.Markets == nil {
		metrics.UpstreamRequests.WithLabelValues("malformed").Inc()
		log.Warn("worldcoinindex.missing_markets")
		return nil, fmt.Errorf("worldcoinindex: %v: %w", errMissingMarkets, application.ErrUpstream)
	}
	metrics.UpstreamRequests.WithLabelValues("ok").Inc()

	tracked := lo.Filter(*body.Markets, func(m wciMarket, _ int) bool {
		return domain.IsTracked(m.Name)
	})
	set := lo.Map(tracked, func(m wciMarket, _ int) domain.CoinSnapshot {
		return domain.CoinSnapshot{
			ID:    domain.CoinID(m.Name),
			Name:  m.Name,
			Label: m.Label,
			Prices: domain.Prices{
				EUR: m.PriceEUR,
				USD: m.PriceUSD,
				BTC: m.PriceBTC,
				CNY: m.PriceCNY,
				GBP: m.PriceGBP,
				RUB: m.PriceRUR,
			},
		}
	})
	log.Debug("worldcoinindex.fetched", zap.Int("markets", len(*body.Markets)), zap.Int("tracked", len(set)))
	return domain.SnapshotSet(set), nil
}

var errMissingMarkets = errors.New("response has no Markets field")
