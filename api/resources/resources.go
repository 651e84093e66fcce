// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/errors"
	"github.com/kc0bfv/power-sensor-monitor/internal/fetcher"
	"github.com/kc0bfv/power-sensor-monitor/internal/monitoring"
	"github.com/kc0bfv/power-sensor-monitor/internal/webhook"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Webhook   *WebhookHandlers
	Dashboard *DashboardHandlers
	System    *SystemHandlers
}

// NewResources creates a new Resources instance
func NewResources(
	catcher *webhook.Service,
	client *fetcher.Client,
	renderOpts dashboard.Options,
	metrics *monitoring.Service,
) *Resources {
	return &Resources{
		Webhook:   &WebhookHandlers{catcher: catcher},
		Dashboard: NewDashboardHandlers(client, renderOpts),
		System:    &SystemHandlers{monitoring: metrics},
	}
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// asAPIError keeps an APIError as is and wraps anything else as internal.
func asAPIError(err error, msg string) *errors.APIError {
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return errors.NewInternalError(msg, err)
}
