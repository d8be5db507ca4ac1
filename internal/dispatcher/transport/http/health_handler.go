package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/domain"
)

// RegisterHealthRoutes registers the management health endpoint.
func RegisterHealthRoutes(r chi.Router) {
	r.Get("/management/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(domain.HealthStatus{Status: "UP"})
	})
}
