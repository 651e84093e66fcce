// Package dashboard turns a sensor history into the power dashboard: one
// status text and three line charts.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/kc0bfv/power-sensor-monitor/internal/labels"
	"github.com/kc0bfv/power-sensor-monitor/internal/listx"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"go.uber.org/zap"
)

var ErrMalformedRow = errors.New("malformed row")

// Row field positions.
const (
	fieldHumidity = iota
	fieldTemperature
	fieldCount
	fieldTotal
	fieldMin
	fieldMax
	fieldBattery
	fieldPowerSource

	rowFields
)

var fieldNames = [rowFields]string{
	"humidity", "temperature", "count", "total", "min", "max", "battery", "power source",
}

// missingField fills positions a short row does not have. It coerces to NaN
// and never matches the VIN tag.
const missingField = labels.Undefined

// Chart colors.
const (
	TemperatureColor = "rgb(255, 0, 0)"
	HumidityColor    = "rgb(0, 0, 255)"
)

type Options struct {
	// Strict rejects rows and timestamps that would otherwise turn into
	// NaN values or undefined label fragments.
	Strict bool
	// StatusThreshold defaults to DefaultStatusThreshold when zero.
	StatusThreshold float64
	// Debug receives the raw record on every render. Nil discards it.
	Debug *zap.SugaredLogger
}

// Renderer holds no per-render state and is safe for concurrent use.
type Renderer struct {
	strict    bool
	threshold float64
	debug     *zap.SugaredLogger
}

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		strict:    opts.Strict,
		threshold: opts.StatusThreshold,
		debug:     opts.Debug,
	}
	if r.threshold == 0 {
		r.threshold = DefaultStatusThreshold
	}
	if r.debug == nil {
		r.debug = zap.NewNop().Sugar()
	}
	return r
}

// Build derives every series and the latest status from raw.
func (r *Renderer) Build(raw *models.RawRecord) (*models.Dashboard, error) {
	r.debug.Info(raw.Entries)

	stamps := raw.PublishedAt()
	rows := listx.Map(listx.SplitOn(",", raw.Data()), listx.TrimAll)

	d := &models.Dashboard{}
	if r.strict {
		var err error
		if d.Labels, err = labels.BuildStrict(stamps); err != nil {
			return nil, err
		}
		for i, row := range rows {
			if len(row) != rowFields {
				return nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrMalformedRow, i, len(row), rowFields)
			}
		}
	} else {
		d.Labels = labels.Build(stamps)
	}

	numeric := []struct {
		field int
		dst   *models.Series
	}{
		{fieldHumidity, &d.Humidity},
		{fieldTemperature, &d.Temperature},
		{fieldCount, &d.Count},
		{fieldTotal, &d.Total},
		{fieldMin, &d.Min},
		{fieldMax, &d.Max},
		{fieldBattery, &d.Battery},
	}
	for _, n := range numeric {
		values, err := r.numbers(listx.SelectColumnOr(n.field, rows, missingField))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRow, fieldNames[n.field], err)
		}
		*n.dst = values
	}

	d.PowerSource = listx.Map(listx.SelectColumnOr(fieldPowerSource, rows, missingField), PowerSourceIndicator)
	d.PowerDiff = listx.Absolute(listx.Difference(d.Min, d.Max))
	d.Status = PowerStatus(d.PowerDiff, r.threshold)

	return d, nil
}

func (r *Renderer) numbers(column []string) (models.Series, error) {
	if r.strict {
		return listx.ParseNumbersStrict(column)
	}
	return listx.MapNumbers(column), nil
}

// Charts builds the three chart configs, sharing d.Labels as the x axis.
func Charts(d *models.Dashboard) []Chart {
	line := func(datasets ...models.Dataset) models.ChartConfig {
		return models.ChartConfig{
			Type:    "line",
			Data:    models.ChartData{Labels: d.Labels, Datasets: datasets},
			Options: map[string]any{},
		}
	}

	return []Chart{
		{
			ID: PowerDiffChartID,
			Config: line(models.Dataset{
				Label: "Power Difference",
				Data:  d.PowerDiff,
			}),
		},
		{
			ID: PowerSourceChartID,
			Config: line(models.Dataset{
				Label: "Power Source - 1 means electricity is on to unit",
				Data:  d.PowerSource,
			}),
		},
		{
			ID: TempHumidChartID,
			Config: line(
				models.Dataset{Label: "Temperature (F)", Data: d.Temperature, BorderColor: TemperatureColor},
				models.Dataset{Label: "Humidity (%)", Data: d.Humidity, BorderColor: HumidityColor},
			),
		},
	}
}

// Render builds the dashboard and pushes it into sink: the status text
// first, then every chart. Nothing reaches the sink if building fails.
func (r *Renderer) Render(raw *models.RawRecord, sink Sink) error {
	d, err := r.Build(raw)
	if err != nil {
		return err
	}

	sink.SetStatusText(d.Status)
	for _, c := range Charts(d) {
		if err := sink.RenderChart(c.ID, c.Config); err != nil {
			return fmt.Errorf("render %s: %w", c.ID, err)
		}
	}
	return nil
}
