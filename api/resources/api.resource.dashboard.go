package resources

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/errors"
	"github.com/kc0bfv/power-sensor-monitor/internal/fetcher"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/kc0bfv/power-sensor-monitor/internal/view"
	nuts "github.com/vaudience/go-nuts"
)

// ShimBase is where the fragment shim sends the browser.
const ShimBase = "/dashboard/"

// ViewOptions are the query parameters every dashboard route accepts.
type ViewOptions struct {
	Strict *bool `schema:"strict"`
	Width  int   `schema:"width"`
	Height int   `schema:"height"`
}

// DashboardHandlers renders sensor histories fetched from the data service.
type DashboardHandlers struct {
	client  *fetcher.Client
	opts    dashboard.Options
	decoder *schema.Decoder
}

func NewDashboardHandlers(client *fetcher.Client, opts dashboard.Options) *DashboardHandlers {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &DashboardHandlers{client: client, opts: opts, decoder: decoder}
}

// @Summary Dashboard shim
// @Description Forwards /dashboard#KEY to /dashboard/KEY
// @Tags dashboard
// @Produce html
// @Success 200 {string} string
// @Router /dashboard [get]
func (h *DashboardHandlers) Shim(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.WriteShim(w, ShimBase); err != nil {
		nuts.L.Errorf("[DashboardHandler] Failed to write shim: %v", err)
	}
}

// @Summary Dashboard page
// @Description Fetches the history of a read key and renders the power status and charts
// @Tags dashboard
// @Produce html
// @Param key path string true "Read key"
// @Param strict query bool false "Reject malformed rows and timestamps"
// @Success 200 {string} string
// @Failure 502 {string} string
// @Router /dashboard/{key} [get]
func (h *DashboardHandlers) Page(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	requestID := nuts.NID("req", 12)

	opts, apiErr := h.viewOptions(r)
	if apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	var alert string
	client := h.client.WithAlerter(fetcher.AlerterFunc(func(message string) { alert = message }))
	page := view.NewPage(key)
	err := client.Load(r.Context(), key, func(record *models.RawRecord) error {
		return h.renderer(opts).Render(record, page)
	})

	var buf bytes.Buffer
	switch {
	case alert != "":
		if err := view.WriteAlert(&buf, alert); err != nil {
			respondWithError(w, errors.NewInternalError("failed to write alert page", err).WithRequestID(requestID))
			return
		}
		writeHTML(w, http.StatusBadGateway, buf.Bytes())
		return
	case err != nil:
		respondWithError(w, errors.NewUpstreamError("sensor data could not be rendered", err).WithRequestID(requestID))
		return
	}

	if err := page.Write(&buf); err != nil {
		respondWithError(w, errors.NewInternalError("failed to write page", err).WithRequestID(requestID))
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// @Summary Dashboard chart image
// @Description Renders one dashboard chart of a read key as PNG
// @Tags dashboard
// @Produce png
// @Param key path string true "Read key"
// @Param chart path string true "Chart id" Enums(pwr_diff_chart, pwr_src_chart, temp_humid_chart)
// @Param width query int false "Image width"
// @Param height query int false "Image height"
// @Success 200 {file} file
// @Failure 404 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /dashboard/{key}/charts/{chart}.png [get]
func (h *DashboardHandlers) Chart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key, chartID := vars["key"], vars["chart"]
	requestID := nuts.NID("req", 12)

	opts, apiErr := h.viewOptions(r)
	if apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	sink := view.NewPNG(opts.Width, opts.Height)
	client := h.client.WithAlerter(fetcher.AlerterFunc(func(string) {}))
	err := client.Load(r.Context(), key, func(record *models.RawRecord) error {
		return h.renderer(opts).Render(record, sink)
	})
	if err != nil {
		respondWithError(w, errors.NewUpstreamError(fetcher.FailureMessage, err).WithRequestID(requestID))
		return
	}

	img, err := sink.Image(chartID)
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("unknown chart "+chartID, err).WithRequestID(requestID))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

func (h *DashboardHandlers) viewOptions(r *http.Request) (ViewOptions, *errors.APIError) {
	var opts ViewOptions
	if err := h.decoder.Decode(&opts, r.URL.Query()); err != nil {
		return opts, errors.NewValidationError("invalid query parameters", err)
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Width > 4000 || opts.Height > 4000 {
		return opts, errors.NewValidationError("image size out of range", nil)
	}
	return opts, nil
}

func (h *DashboardHandlers) renderer(opts ViewOptions) *dashboard.Renderer {
	ro := h.opts
	if opts.Strict != nil {
		ro.Strict = *opts.Strict
	}
	return dashboard.NewRenderer(ro)
}

func writeHTML(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(body)
}
