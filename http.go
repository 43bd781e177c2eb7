package bankline

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Pinger is what the health check needs from the database layer.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewAdminHandler serves the operational surface next to the line
// protocol: a database health probe and the prometheus metrics.
func NewAdminHandler(db Pinger, log *zerolog.Logger) http.Handler {
	hndlr := &adminHandler{
		DB:  db,
		Log: log,
	}
	mux := chi.NewMux()
	mux.Get("/healthz", hndlr.Health)
	mux.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return mux
}

type adminHandler struct {
	DB  Pinger
	Log *zerolog.Logger
}

func (h *adminHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := h.DB.Ping(ctx); err != nil {
		h.Log.Warn().Err(err).Msg("health check ping failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
