package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// lexiconSizer reports how many entries the loaded lexicon holds.
type lexiconSizer interface {
	Len() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	lexicon lexiconSizer
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler. db may be nil when the lexicon
// is not backed by PostgreSQL.
func NewHealthHandler(lexicon lexiconSizer, db dbPinger, version string) *HealthHandler {
	return &HealthHandler{lexicon: lexicon, db: db, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Entries *int   `json:"entries,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: the lexicon must be loaded and, when
// configured, the DB must answer a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context())

	status, code := "ok", http.StatusOK
	if !allOK(components) {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component status and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context())

	status, code := "ok", http.StatusOK
	if !allOK(components) {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context) map[string]CompStatus {
	components := make(map[string]CompStatus, 2)

	n := h.lexicon.Len()
	if n > 0 {
		components["lexicon"] = CompStatus{Status: "ok", Entries: &n}
	} else {
		components["lexicon"] = CompStatus{Status: "down", Entries: &n}
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
		} else {
			components["database"] = CompStatus{
				Status:  "ok",
				Latency: latency.String(),
			}
		}
	}

	return components
}

func allOK(components map[string]CompStatus) bool {
	for _, c := range components {
		if c.Status != "ok" {
			return false
		}
	}
	return true
}
