// FilePath: internal/monitor/monitor.go
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// EventAlerted is emitted with the alert lines whenever a run notifies.
const EventAlerted = "monitor.alerted"

const DefaultSubject = "ALERT: Power Sensor Monitor"

var ErrSourceUnavailable = errors.New("sensor history unavailable")

// Monitor periodically checks one sensor history and notifies when it
// looks unhealthy.
type Monitor struct {
	http     *resty.Client
	url      string
	subject  string
	opts     Options
	notifier Notifier
	events   *nuts.EventEmitter
	now      func() time.Time
}

// New creates a Monitor. A nil notifier falls back to LogNotifier.
func New(cfg config.MonitorConfig, notifier Notifier) *Monitor {
	client := resty.New().SetRetryCount(0)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	opts := DefaultOptions()
	if cfg.DiffThreshold > 0 {
		opts.DiffThreshold = cfg.DiffThreshold
	}
	if cfg.DiffsToCheck > 0 {
		opts.DiffsToCheck = cfg.DiffsToCheck
	}
	if cfg.MaxAge > 0 {
		opts.MaxAge = cfg.MaxAge
	}

	return &Monitor{
		http:     client,
		url:      cfg.URL,
		subject:  subject,
		opts:     opts,
		notifier: notifier,
		events:   nuts.NewEventEmitter(),
		now:      time.Now,
	}
}

// Run fetches the history once, checks it and sends at most one
// notification holding every alert. A failed fetch is reported as a
// connection failure and returned.
func (m *Monitor) Run(ctx context.Context) ([]string, error) {
	record, err := m.fetch(ctx)
	if err != nil {
		nuts.L.Errorf("[Monitor] %v", err)
		m.notify(ctx, []string{fmt.Sprintf("Connection fail: %v", err)})
		return nil, err
	}

	alerts := Check(record, m.now().UTC(), m.opts)
	if len(alerts) == 0 {
		nuts.L.Debugf("[Monitor] %s looks healthy", m.url)
		return nil, nil
	}
	m.notify(ctx, alerts)
	return alerts, nil
}

// Start runs the check every interval until ctx is done.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	nuts.L.Infof("[Monitor] Watching %s every %s", m.url, interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			nuts.L.Infof("[Monitor] Stopped")
			return
		case <-ticker.C:
			m.Run(ctx)
		}
	}
}

// OnAlert registers a callback for runs that notified.
func (m *Monitor) OnAlert(handler func(alerts []string)) {
	m.events.On(EventAlerted, nuts.NID("on_alert", 8), handler)
}

func (m *Monitor) fetch(ctx context.Context) (*models.RawRecord, error) {
	resp, err := m.http.R().SetContext(ctx).Get(m.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: HTTP Error %d", ErrSourceUnavailable, resp.StatusCode())
	}

	var record models.RawRecord
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return &record, nil
}

func (m *Monitor) notify(ctx context.Context, alerts []string) {
	if err := m.notifier.Notify(ctx, m.subject, strings.Join(alerts, "\n")); err != nil {
		nuts.L.Errorf("[Monitor] Failed to send notification: %v", err)
	}
	if err := m.events.Emit(EventAlerted, alerts); err != nil {
		nuts.L.Warnf("[Monitor] Failed to emit %s: %v", EventAlerted, err)
	}
}
