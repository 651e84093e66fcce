package resources

import (
	"net/http"

	"github.com/kc0bfv/power-sensor-monitor/docs"
	"github.com/kc0bfv/power-sensor-monitor/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

// SystemHandlers serves health, metrics and API docs
type SystemHandlers struct {
	monitoring *monitoring.Service
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /v1/health [get]
func (h *SystemHandlers) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": nuts.GetVersion(),
	})
}

// @Summary Event counters
// @Tags system
// @Produce json
// @Success 200 {object} monitoring.Snapshot
// @Router /v1/metrics [get]
func (h *SystemHandlers) Metrics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.monitoring.GetEventMetrics())
}

func (h *SystemHandlers) Swagger(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
}
