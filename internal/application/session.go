package application

import (
	"bytes"

	"coinwatch/internal/domain"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type FrameKind string

const (
	FramePrices FrameKind = "prices"
	FrameError  FrameKind = "error"
)

// Frame is one live-update event ready to be written to a stream.
type Frame struct {
	Kind FrameKind
	Data []byte
}

// UpstreamErrorMessage is sent to clients when a poll fails.
const UpstreamErrorMessage = "failed to fetch price data"

type coinPayload struct {
	Name     string   `json:"name"`
	PriceEUR *float64 `json:"price,omitempty"`
	PriceUSD *float64 `json:"price_usd,omitempty"`
	PriceBTC *float64 `json:"price_btc,omitempty"`
	PriceCNY *float64 `json:"price_cny,omitempty"`
	PriceGBP *float64 `json:"price_gbp,omitempty"`
	PriceRUB *float64 `json:"price_rur,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// EncodeSnapshot serializes set into the live-update payload. Two sets are
// considered equal when their encodings are byte-identical.
func EncodeSnapshot(set domain.SnapshotSet) ([]byte, error) {
	out := make([]coinPayload, 0, len(set))
	for _, c := range set {
		out = append(out, coinPayload{
			Name:     c.ID,
			PriceEUR: c.Prices.EUR,
			PriceUSD: c.Prices.USD,
			PriceBTC: c.Prices.BTC,
			PriceCNY: c.Prices.CNY,
			PriceGBP: c.Prices.GBP,
			PriceRUB: c.Prices.RUB,
		})
	}
	return json.Marshal(out)
}

// Session holds the last payload sent on one live-update connection. It is
// owned by the connection handler and must not be shared.
type Session struct {
	last []byte
}

func NewSession() *Session { return &Session{} }

// Observe turns a poll result into the frame to send, if any. Failed polls
// produce an error frame and leave the last-sent payload untouched.
func (s *Session) Observe(set domain.SnapshotSet, err error) (Frame, bool) {
	if err != nil {
		data, _ := json.Marshal(errorPayload{Message: UpstreamErrorMessage})
		return Frame{Kind: FrameError, Data: data}, true
	}
	data, encErr := EncodeSnapshot(set)
	if encErr != nil {
		data, _ = json.Marshal(errorPayload{Message: UpstreamErrorMessage})
		return Frame{Kind: FrameError, Data: data}, true
	}
	if s.last != nil && bytes.Equal(s.last, data) {
		return Frame{}, false
	}
	s.last = data
	return Frame{Kind: FramePrices, Data: data}, true
}
