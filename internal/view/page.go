// Package view holds the dashboard sinks: an HTML page driving Chart.js and
// server-side PNG charts.
package view

import (
	"html/template"
	"io"

	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
)

var (
	pageTmpl  = template.Must(template.New("page").Parse(tmplBase + tmplDashboard))
	alertTmpl = template.Must(template.New("alert").Parse(tmplBase + tmplAlert))
	shimTmpl  = template.Must(template.New("shim").Parse(tmplBase + tmplShim))
)

// Page collects a rendered dashboard and writes it as an HTML document.
type Page struct {
	Key      string
	StatusID string
	Status   string
	Charts   []dashboard.Chart
}

func NewPage(key string) *Page {
	return &Page{Key: key, StatusID: dashboard.StatusElementID}
}

func (p *Page) SetStatusText(text string) {
	p.Status = text
}

func (p *Page) RenderChart(id string, cfg models.ChartConfig) error {
	p.Charts = append(p.Charts, dashboard.Chart{ID: id, Config: cfg})
	return nil
}

func (p *Page) Write(w io.Writer) error {
	return pageTmpl.Execute(w, p)
}

// WriteAlert writes a page whose only behavior is showing message in a
// modal alert.
func WriteAlert(w io.Writer, message string) error {
	return alertTmpl.Execute(w, message)
}

// WriteShim writes a page that forwards its address fragment to
// base + fragment, so /dashboard#KEY lands on /dashboard/KEY.
func WriteShim(w io.Writer, base string) error {
	return shimTmpl.Execute(w, base)
}
