package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dataService(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/webhook/get/abc" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"published_at":"2023-05-07T14:22:09-5","data":"12.5, 70.2, 3, 100, 5, 18, 95, \"VIN\""}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExport(t *testing.T) {
	srv := dataService(t)
	out := filepath.Join(t.TempDir(), "out")
	cfg := config.DashboardConfig{Endpoint: srv.URL, Path: "/webhook/get/"}

	err := Export(context.Background(), cfg, zap.NewNop(), "https://example.test/dashboard#abc", out)

	require.NoError(t, err)
	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `id="last_power_status">ON</span>`)
	for _, id := range []string{"pwr_diff_chart", "pwr_src_chart", "temp_humid_chart"} {
		assert.FileExists(t, filepath.Join(out, id+".png"))
	}
}

func TestExport_FetchFailureWritesAlert(t *testing.T) {
	srv := dataService(t)
	out := t.TempDir()
	cfg := config.DashboardConfig{Endpoint: srv.URL, Path: "/webhook/get/"}

	err := Export(context.Background(), cfg, nil, "https://example.test/dashboard#missing", out)

	assert.ErrorIs(t, err, fetcher.ErrFetchFailed)
	index, rerr := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, rerr)
	assert.Contains(t, string(index), `alert("Failed to get data...")`)
	assert.NoFileExists(t, filepath.Join(out, "pwr_diff_chart.png"))
}
