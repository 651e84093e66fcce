package view

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func sampleRecord() *models.RawRecord {
	return &models.RawRecord{Entries: []models.Entry{
		{PublishedAt: "2023-05-07T14:22:09-5", Data: `12.5, 70.2, 3, 100, 5, 18, 95, "VIN"`},
		{PublishedAt: "2023-05-07T14:32:09-5", Data: `13, oops, 3, 100, 5, 19, 95, "VIN"`},
		{PublishedAt: "2023-05-07T14:42:09-5", Data: `13.5, 71, 3, 100, 6, 8, 95, "BAT"`},
	}}
}

func TestPage_Write(t *testing.T) {
	page := NewPage("abc")
	require.NoError(t, dashboard.NewRenderer(dashboard.Options{}).Render(sampleRecord(), page))

	var buf bytes.Buffer
	require.NoError(t, page.Write(&buf))
	html := buf.String()

	assert.Contains(t, html, `id="last_power_status">OFF</span>`)
	for _, id := range []string{"pwr_diff_chart", "pwr_src_chart", "temp_humid_chart"} {
		assert.Contains(t, html, `<canvas id="`+id+`"></canvas>`)
	}
	assert.Contains(t, html, `"Power Difference"`)
	assert.Contains(t, html, `"rgb(255, 0, 0)"`)
	assert.Contains(t, html, `[70.2,null,71]`)
	assert.Contains(t, html, `05/07 14:22`)
}

func TestWriteAlert(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAlert(&buf, "Failed to get data..."))

	assert.Contains(t, buf.String(), `alert("Failed to get data...")`)
	assert.NotContains(t, buf.String(), "new Chart")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteAlert_WriterError(t *testing.T) {
	assert.Error(t, WriteAlert(failingWriter{}, "Failed to get data..."))
}

func TestWriteShim(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteShim(&buf, "/dashboard/"))

	assert.Contains(t, buf.String(), `window.location.hash.slice(1)`)
	assert.True(t, strings.Contains(buf.String(), `"\/dashboard\/"`) || strings.Contains(buf.String(), `"/dashboard/"`))
}

func TestPNG_RendersEveryChart(t *testing.T) {
	sink := NewPNG(0, 0)
	require.NoError(t, dashboard.NewRenderer(dashboard.Options{}).Render(sampleRecord(), sink))

	assert.Equal(t, "OFF", sink.Status())
	assert.Equal(t, []string{"pwr_diff_chart", "pwr_src_chart", "temp_humid_chart"}, sink.IDs())
	for _, id := range sink.IDs() {
		img, err := sink.Image(id)
		require.NoError(t, err)
		decoded, err := png.Decode(bytes.NewReader(img))
		require.NoError(t, err, id)
		assert.Equal(t, DefaultWidth, decoded.Bounds().Dx())
		assert.Equal(t, DefaultHeight, decoded.Bounds().Dy())
	}

	_, err := sink.Image("nope")
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestPNG_EmptyAndSinglePoint(t *testing.T) {
	sink := NewPNG(400, 200)

	require.NoError(t, dashboard.NewRenderer(dashboard.Options{}).Render(&models.RawRecord{}, sink))
	require.NoError(t, sink.RenderChart("one", models.ChartConfig{
		Type: "line",
		Data: models.ChartData{
			Labels:   []string{"05/07 14:22"},
			Datasets: []models.Dataset{{Label: "x", Data: models.Series{math.NaN()}}, {Label: "y", Data: models.Series{3}}},
		},
	}))

	assert.Len(t, sink.IDs(), 4)
}

func TestParseColor(t *testing.T) {
	c, ok := parseColor("rgb(255, 0, 0)")
	require.True(t, ok)
	assert.Equal(t, drawing.Color{R: 255, A: 255}, c)

	c, ok = parseColor("#0000ff")
	require.True(t, ok)
	assert.Equal(t, uint8(255), c.B)

	for _, bad := range []string{"", "red", "rgb(1,2)", "rgb(300, 0, 0)"} {
		_, ok := parseColor(bad)
		assert.False(t, ok, bad)
	}
}

func TestLabelTicks(t *testing.T) {
	labels := make([]string, 20)
	for i := range labels {
		labels[i] = string(rune('a' + i))
	}

	ticks := labelTicks(labels)

	assert.LessOrEqual(t, len(ticks), maxTicks)
	assert.Equal(t, "a", ticks[0].Label)
	assert.Nil(t, labelTicks([]string{"only"}))
}
