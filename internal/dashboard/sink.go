package dashboard

import "github.com/kc0bfv/power-sensor-monitor/internal/models"

// Element ids of the dashboard page.
const (
	StatusElementID    = "last_power_status"
	PowerDiffChartID   = "pwr_diff_chart"
	PowerSourceChartID = "pwr_src_chart"
	TempHumidChartID   = "temp_humid_chart"
)

// Sink receives the rendered dashboard. Implementations decide what a
// status text and a chart turn into.
type Sink interface {
	SetStatusText(text string)
	RenderChart(id string, cfg models.ChartConfig) error
}

// Chart pairs a chart config with the element it is drawn into.
type Chart struct {
	ID     string
	Config models.ChartConfig
}
