// FilePath: internal/models/models.dashboard.go
package models

import (
	"bytes"
	"math"
	"strconv"
)

// Series is one value per sample, aligned by index with the labels.
type Series []float64

// MarshalJSON writes NaN and infinities as null so charts show a gap.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Last returns the final value and whether there was one.
func (s Series) Last() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// Dashboard is everything derived from one RawRecord.
type Dashboard struct {
	Labels      []string `json:"labels"`
	Humidity    Series   `json:"humidity"`
	Temperature Series   `json:"temperature"`
	Count       Series   `json:"count"`
	Total       Series   `json:"total"`
	Min         Series   `json:"min"`
	Max         Series   `json:"max"`
	Battery     Series   `json:"battery"`
	PowerSource Series   `json:"power_source"`
	PowerDiff   Series   `json:"power_diff"`
	Status      string   `json:"status"`
}

// ChartConfig is a line chart description in the shape Chart.js takes.
type ChartConfig struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label       string `json:"label"`
	Data        Series `json:"data"`
	BorderColor string `json:"borderColor,omitempty"`
}
