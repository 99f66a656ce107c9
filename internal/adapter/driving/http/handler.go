package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/pushsumo/signaling/internal/config"
	"github.com/pushsumo/signaling/internal/core/service"
)

type Handler struct {
	Session *service.Session
	cors    *cors.Cors
}

func NewHandler(cfg config.Config, session *service.Session) *Handler {
	return &Handler{
		Session: session,
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllow,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}),
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.Status)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", h.ServeWS)

	return h.cors.Handler(r)
}

type statusResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	ActiveRooms       int    `json:"activeRooms"`
	ActiveConnections int    `json:"activeConnections"`
}

// Status is the read-only health query used by deployment probes.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statusResponse{
		Status:            "OK",
		Message:           "P2P signaling server",
		ActiveRooms:       h.Session.RoomCount(),
		ActiveConnections: h.Session.ConnectionCount(),
	})
}
