package app

import (
	"context"
	"net/http"
	"time"
	httpresp "venuely/pkg/http"
	"venuely/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	mongo *mongo.Client
	log   *logger.Logger
}

func NewHealthHandler(mongoClient *mongo.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongo: mongoClient,
		log:   log,
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/health", h.Health)
	router.HandlerFunc(http.MethodGet, "/ready", h.Ready)
}

// Health reports process liveness only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	httpresp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready also pings Mongo; a service without its database is not ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.mongo != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.mongo.Ping(ctx, nil); err != nil {
			h.log.Warn("Readiness check failed", "error", err)
			httpresp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}
	}

	httpresp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
