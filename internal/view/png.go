package view

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 360

	maxTicks = 8
)

var ErrUnknownChart = errors.New("unknown chart")

var palette = []drawing.Color{chart.ColorBlue, chart.ColorGreen, chart.ColorAlternateGray}

// PNG renders every chart to a PNG image as it arrives.
type PNG struct {
	width  int
	height int
	status string
	order  []string
	images map[string][]byte
}

func NewPNG(width, height int) *PNG {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &PNG{width: width, height: height, images: map[string][]byte{}}
}

func (p *PNG) SetStatusText(text string) {
	p.status = text
}

func (p *PNG) RenderChart(id string, cfg models.ChartConfig) error {
	ch := buildChart(cfg, p.width, p.height)

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, ok := p.images[id]; !ok {
		p.order = append(p.order, id)
	}
	p.images[id] = buf.Bytes()
	return nil
}

func (p *PNG) Status() string { return p.status }

// IDs lists rendered charts in render order.
func (p *PNG) IDs() []string { return p.order }

func (p *PNG) Image(id string) ([]byte, error) {
	img, ok := p.images[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, id)
	}
	return img, nil
}

func buildChart(cfg models.ChartConfig, width, height int) chart.Chart {
	series := []chart.Series{}
	lo, hi := math.Inf(1), math.Inf(-1)

	for i, ds := range cfg.Data.Datasets {
		xs, ys := points(ds.Data)
		if len(xs) == 0 {
			continue
		}
		// a single point has no extent, so draw it as a short flat segment
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		for _, y := range ys {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(ds.BorderColor, i),
		})
	}

	if len(series) == 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "no data",
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
			Style:   lineStyle("", len(palette)-1),
		})
		lo, hi = 0, 0
	}

	yAxis := chart.YAxis{}
	if lo == hi {
		yAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{Ticks: labelTicks(cfg.Data.Labels)},
		YAxis:      yAxis,
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// points drops NaN and infinite values, which become gaps.
func points(data models.Series) ([]float64, []float64) {
	var xs, ys []float64
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	return xs, ys
}

func labelTicks(labels []string) []chart.Tick {
	if len(labels) < 2 {
		return nil
	}
	step := (len(labels) + maxTicks - 1) / maxTicks
	ticks := []chart.Tick{}
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	return ticks
}

func lineStyle(color string, index int) chart.Style {
	c, ok := parseColor(color)
	if !ok {
		c = palette[index%len(palette)]
	}
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 2,
	}
}

// parseColor understands "rgb(r, g, b)" and "#rrggbb".
func parseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		return drawing.ColorFromHex(s[1:]), true
	}
	if !strings.HasPrefix(s, "rgb(") || !strings.HasSuffix(s, ")") {
		return drawing.Color{}, false
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"), ",")
	if len(parts) != 3 {
		return drawing.Color{}, false
	}
	var rgb [3]uint8
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return drawing.Color{}, false
		}
		rgb[i] = uint8(n)
	}
	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
}
