package resources

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kc0bfv/power-sensor-monitor/internal/errors"
	"github.com/kc0bfv/power-sensor-monitor/internal/webhook"
	nuts "github.com/vaudience/go-nuts"
)

// maxSampleBytes bounds a posted sample body.
const maxSampleBytes = 64 << 10

// WebhookHandlers encapsulates the sample catcher HTTP handlers
type WebhookHandlers struct {
	catcher *webhook.Service
}

// @Summary Store a sensor sample
// @Description Accepts a webhook post from the sensor cloud and appends published_at and data to the history behind the paired read key
// @Tags webhook
// @Accept json
// @Produce json
// @Param key path string true "Write key"
// @Param sample body models.Entry true "Sample"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /webhook/{key} [post]
func (h *WebhookHandlers) Catch(w http.ResponseWriter, r *http.Request) {
	writeKey := mux.Vars(r)["key"]
	requestID := nuts.NID("req", 12)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSampleBytes))
	if err != nil {
		respondWithError(w, errors.NewValidationError("failed to read request body", err).WithRequestID(requestID))
		return
	}

	readKey, err := h.catcher.Catch(r.Context(), writeKey, body)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to store sample").WithRequestID(requestID))
		return
	}

	nuts.L.Debugf("[WebhookHandler] Stored sample for %s", readKey)
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// @Summary Get a sensor history
// @Description Returns the stored samples of a read key, oldest first
// @Tags webhook
// @Produce json
// @Param key path string true "Read key"
// @Success 200 {array} models.Entry
// @Failure 404 {object} errors.APIError
// @Router /webhook/get/{key} [get]
func (h *WebhookHandlers) History(w http.ResponseWriter, r *http.Request) {
	readKey := mux.Vars(r)["key"]
	requestID := nuts.NID("req", 12)

	record, err := h.catcher.History(r.Context(), readKey)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to load samples").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}
