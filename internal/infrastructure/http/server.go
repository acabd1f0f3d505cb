package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"coinwatch/internal/application"
	infraconfig "coinwatch/internal/infrastructure/config"
	"coinwatch/internal/infrastructure/logx"
	"coinwatch/internal/infrastructure/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Server struct {
	svc       *application.CoinService
	hub       *application.Hub
	pushEvery time.Duration
	ping      func(ctx context.Context) error
	validate  *validator.Validate
}

type ServerOption func(*Server)

// WithHub switches live updates to the shared poller: connections subscribe
// to hub instead of polling the upstream themselves.
func WithHub(h *application.Hub) ServerOption { return func(s *Server) { s.hub = h } }

func WithPushInterval(d time.Duration) ServerOption {
	return func(s *Server) { s.pushEvery = d }
}

func NewServer(svc *application.CoinService, opts ...ServerOption) *Server {
	s := &Server{svc: svc, validate: validator.New()}
	for _, opt := range opts {
		opt(s)
	}
	if s.pushEvery <= 0 {
		s.pushEvery = infraconfig.DefaultPushInterval
	}
	return s
}

func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

func (s *Server) Overview(w http.ResponseWriter, r *http.Request) {
	set, goals, err := s.svc.Overview(r.Context())
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	render(w, r, "overview.html", newOverviewPage(set, goals))
}

func (s *Server) Detail(w http.ResponseWriter, r *http.Request) {
	coin, goal, err := s.svc.Coin(r.Context(), chi.URLParam(r, "coinId"))
	switch {
	case errors.Is(err, application.ErrNotFound):
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Coin not found"))
		return
	case err != nil:
		upstreamError(w, r, err)
		return
	}
	render(w, r, "detail.html", detailPage{Coin: newCoinView(coin, goal)})
}

type setGoalRequest struct {
	CoinName  string    `json:"coinName" validate:"required"`
	GoalPrice priceText `json:"goalPrice" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// priceText accepts the goal as a JSON string or a bare number and keeps it
// as text.
type priceText string

func (p *priceText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = priceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("goalPrice must be a string or a number")
	}
	*p = priceText(n.String())
	return nil
}

func (s *Server) SetGoal(w http.ResponseWriter, r *http.Request) {
	var body setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.GoalWrites.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		metrics.GoalWrites.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "coinName and goalPrice are required")
		return
	}
	err := s.svc.SetGoal(r.Context(), body.CoinName, string(body.GoalPrice))
	switch {
	case errors.Is(err, application.ErrBadRequest):
		metrics.GoalWrites.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "coinName and goalPrice are required")
		return
	case err != nil:
		metrics.GoalWrites.WithLabelValues("failed").Inc()
		logx.L().Error("set_goal_failed", zap.String("coin", body.CoinName), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save goal price")
		return
	}
	metrics.GoalWrites.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Goal price for %s saved.", body.CoinName)})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	rid, _ := r.Context().Value(requestIDKey).(string)
	logx.L().Warn("upstream_unavailable", zap.String("request_id", rid), zap.Error(err))
	http.Error(w, "Failed to fetch price data", http.StatusBadGateway)
}

func internalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
