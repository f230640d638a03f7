// Package httpadapter exposes the chat pipeline as a small HTTP API so
// the assistant can serve many sessions at once.
package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
	"github.com/kirillkom/realty-assistant/internal/core/usecase"
	"github.com/kirillkom/realty-assistant/internal/observability/metrics"
)

const maxRequestBody = 64 << 10

type Config struct {
	RateLimitRPS   int
	RateLimitBurst int
	MaxInFlight    int
	InFlightWait   time.Duration
}

type Router struct {
	chat *usecase.ChatUseCase
	http *metrics.HTTPMetrics
	cfg  Config
}

func NewRouter(chat *usecase.ChatUseCase, httpMetrics *metrics.HTTPMetrics, cfg Config) *Router {
	if cfg.InFlightWait <= 0 {
		cfg.InFlightWait = 2 * time.Second
	}
	return &Router{chat: chat, http: httpMetrics, cfg: cfg}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.handleHealth)
	mux.HandleFunc("/v1/query", rt.handleQuery)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.MaxInFlight, rt.cfg.InFlightWait)
	handler = rateLimitMiddleware(handler, rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst)
	if rt.http != nil {
		handler = rt.http.Middleware(handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type queryRequest struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type queryResponse struct {
	Reply string `json:"reply"`
	Quit  bool   `json:"quit,omitempty"`
}

func (rt *Router) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req queryRequest
	body := io.LimitReader(r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	role, ok := domain.ParseRole(strings.TrimSpace(req.Role))
	if !ok {
		writeError(w, http.StatusBadRequest, "role must be one of: customer, realtor")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	outcome, err := rt.chat.Handle(r.Context(), role, req.Text)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		if status >= 500 {
			slog.Error("query_failed",
				"request_id", requestIDFromContext(r.Context()),
				"error", err,
			)
		}
		writeError(w, status, domain.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Reply: outcome.Reply, Quit: outcome.Quit})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		slog.Warn("write_response_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
