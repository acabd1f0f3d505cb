package httpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/logx"
	"coinwatch/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// Events streams price snapshots as text/event-stream until the client goes
// away. Each connection owns its Session, so diffs never leak between tabs.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		internalError(w)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	rid, _ := r.Context().Value(requestIDKey).(string)
	log := logx.L().With(zap.String("request_id", rid))
	metrics.LiveConnections.Inc()
	defer metrics.LiveConnections.Dec()
	log.Info("events.opened")

	sess := application.NewSession()
	if s.hub != nil {
		s.streamFromHub(r.Context(), w, flusher, sess, log)
	} else {
		s.streamPolling(r.Context(), w, flusher, sess, log)
	}
	log.Info("events.closed")
}

// streamPolling is the per-connection mode: one upstream call right away and
// one per interval, on a ticker that dies with the request.
func (s *Server) streamPolling(ctx context.Context, w io.Writer, f http.Flusher, sess *application.Session, log *zap.Logger) {
	emit := func() bool {
		set, err := s.svc.Snapshot(ctx)
		if ctx.Err() != nil {
			return false
		}
		if err != nil {
			log.Warn("events.fetch_failed", zap.Error(err))
		}
		return s.send(w, f, sess, set, err, log)
	}
	if !emit() {
		return
	}
	t := time.NewTicker(s.pushEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !emit() {
				return
			}
		}
	}
}

func (s *Server) streamFromHub(ctx context.Context, w io.Writer, f http.Flusher, sess *application.Session, log *zap.Logger) {
	updates, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-updates:
			if !s.send(w, f, sess, u.Snapshot, u.Err, log) {
				return
			}
		}
	}
}

func (s *Server) send(w io.Writer, f http.Flusher, sess *application.Session, set domain.SnapshotSet, err error, log *zap.Logger) bool {
	frame, ok := sess.Observe(set, err)
	if !ok {
		log.Debug("events.unchanged")
		return true
	}
	if werr := writeFrame(w, frame); werr != nil {
		log.Info("events.write_failed", zap.Error(werr))
		return false
	}
	f.Flush()
	metrics.FramesSent.WithLabelValues(string(frame.Kind)).Inc()
	log.Debug("events.sent", zap.String("kind", string(frame.Kind)))
	return true
}

func writeFrame(w io.Writer, fr application.Frame) error {
	var err error
	if fr.Kind == application.FrameError {
		_, err = fmt.Fprintf(w, "event: error\ndata: %s\n\n", fr.Data)
	} else {
		_, err = fmt.Fprintf(w, "data: %s\n\n", fr.Data)
	}
	return err
}
