package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kc0bfv/power-sensor-monitor/api/resources"
	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/fetcher"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/kc0bfv/power-sensor-monitor/internal/monitoring"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository/files"
	"github.com/kc0bfv/power-sensor-monitor/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{"published_at":"2022-02-14T03:42:08.865Z","data":"39, 66, 478, 544, 0, 19, 98.062500, \"VIN\""}`

// newTestServer serves the full router and points the dashboard fetcher
// back at the same server.
func newTestServer(t *testing.T) *httptest.Server {
	var handler http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	store, err := files.NewSampleRepository(t.TempDir())
	require.NoError(t, err)
	catcher := webhook.New([]config.EndpointConfig{{WriteKey: "w1", ReadKey: "r1"}}, store, 1000)
	client := fetcher.New(fetcher.Config{Endpoint: srv.URL, Path: "/webhook/get/"}, nil)
	res := resources.NewResources(catcher, client, dashboard.Options{}, monitoring.NewService())

	handler = NewRouter(res, "webhook", io.Discard)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/v1/health")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "ok", got["status"])
}

func TestWebhook_RoundTrip(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 2; i++ {
		resp, body := post(t, srv.URL+"/webhook/w1", sampleBody)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.JSONEq(t, `{"status":"ok"}`, string(body))
	}

	resp, body := get(t, srv.URL+"/webhook/get/r1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var record models.RawRecord
	require.NoError(t, json.Unmarshal(body, &record))
	assert.Equal(t, 2, record.Len())
	assert.Equal(t, "2022-02-14T03:42:08.865Z", record.Entries[1].PublishedAt)
}

func TestWebhook_Errors(t *testing.T) {
	srv := newTestServer(t)

	resp, body := post(t, srv.URL+"/webhook/nope", sampleBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"type":"validation"`)
	assert.Contains(t, string(body), `"request_id":"req`)

	resp, _ = post(t, srv.URL+"/webhook/w1", `{"data":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/webhook/get/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = get(t, srv.URL+"/webhook/get/r1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestDashboard_Page(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/webhook/w1", sampleBody)

	resp, body := get(t, srv.URL+"/dashboard/r1")

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), `id="last_power_status">ON</span>`)
	assert.Contains(t, string(body), `<canvas id="temp_humid_chart"></canvas>`)
	assert.Contains(t, string(body), `02/14 03:42`)
}

func TestDashboard_FetchFailureAlerts(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/dashboard/unknown")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), `alert("Failed to get data...")`)
	assert.NotContains(t, string(body), "last_power_status")
}

func TestDashboard_BadQuery(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/dashboard/r1?strict=maybe")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/dashboard/r1/charts/pwr_src_chart.png?width=-5")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboard_Chart(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/webhook/w1", sampleBody)

	resp, body := get(t, srv.URL+"/dashboard/r1/charts/pwr_diff_chart.png?width=320&height=200")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())

	resp, _ = get(t, srv.URL+"/dashboard/r1/charts/no_such_chart.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/dashboard/unknown/charts/pwr_diff_chart.png")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestDashboard_Shim(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/dashboard")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "window.location.hash")
}

func TestSwaggerAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/v1/swagger.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Contains(t, doc["paths"], "/webhook/{key}")

	resp, body = get(t, srv.URL+"/v1/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"uptime"`)
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	res := &resources.Resources{
		System:    &resources.SystemHandlers{},
		Webhook:   &resources.WebhookHandlers{},
		Dashboard: resources.NewDashboardHandlers(nil, dashboard.Options{}),
	}
	router := NewRouter(res, "webhook", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/metrics", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
