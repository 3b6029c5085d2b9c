package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/ttshub/internal/backend"
)

type HealthHandler struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	registry *backend.Registry
}

func NewHealthHandler(db *pgxpool.Pool, rdb *redis.Client, registry *backend.Registry) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb, registry: registry}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports per-dependency state. The service is ready when every
// configured dependency responds and at least one synthesis backend
// survived its probe; a service that can synthesize nothing is not ready.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	available := len(h.registry.AvailableIDs())
	total := len(h.registry.Descriptors())
	if available == 0 {
		checks["backends"] = fmt.Sprintf("unhealthy: 0/%d available", total)
	} else {
		checks["backends"] = fmt.Sprintf("ok: %d/%d available", available, total)
	}

	status := http.StatusOK
	for _, v := range checks {
		if strings.HasPrefix(v, "unhealthy") {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
