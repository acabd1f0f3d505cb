package worker

import (
	"context"
	"time"

	"coinwatch/internal/application"
	infraconfig "coinwatch/internal/infrastructure/config"

	"go.uber.org/zap"
)

var _ application.Worker = (*Poller)(nil)

// Poller fetches one snapshot per interval for the whole process and
// publishes every result, failures included, to the hub.
type Poller struct {
	Source    application.PriceSource
	Hub       *application.Hub
	PollEvery time.Duration
	Timeout   time.Duration
	Log       *zap.Logger
}

func (w *Poller) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.PollEvery <= 0 {
		w.PollEvery = infraconfig.DefaultPushInterval
	}
	if w.Timeout <= 0 {
		w.Timeout = infraconfig.DefaultUpstreamTimeout
	}

	t := time.NewTicker(w.PollEvery)
	defer t.Stop()

	log.Info("poller_started", zap.Duration("poll_every", w.PollEvery))
	w.tick(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("poller_stopped")
			return
		case <-t.C:
			w.tick(ctx, log)
		}
	}
}

func (w *Poller) tick(ctx context.Context, log *zap.Logger) {
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}
	set, err := w.Source.FetchSnapshot(ctx)
	if err != nil {
		log.Warn("poll_failed", zap.Error(err))
	} else {
		log.Debug("poll_done", zap.Int("coins", len(set)))
	}
	w.Hub.Publish(application.Update{Snapshot: set, Err: err})
}
