// FilePath: internal/fetcher/fetcher.go
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const (
	// FailureMessage is the one thing a user is told when data cannot be loaded.
	FailureMessage = "Failed to get data..."
	DefaultPath    = "/webhook/get/"
)

var ErrFetchFailed = errors.New("failed to fetch sensor data")

// Alerter surfaces a message to whoever asked for the dashboard.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(message string)

func (f AlerterFunc) Alert(message string) { f(message) }

// LogAlerter reports alerts in the service log.
type LogAlerter struct{}

func (LogAlerter) Alert(message string) {
	nuts.L.Errorf("[Alert] %s", message)
}

// Config holds where the data service lives.
type Config struct {
	Endpoint string
	Path     string
	// Timeout of zero leaves the request unbounded apart from its context.
	Timeout time.Duration
}

// Client loads sensor histories from the data service. Each call issues
// exactly one GET; there are no retries.
type Client struct {
	http    *resty.Client
	path    string
	alerter Alerter
}

// New creates a client. A nil alerter falls back to LogAlerter.
func New(cfg Config, alerter Alerter) *Client {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if alerter == nil {
		alerter = LogAlerter{}
	}

	return &Client{
		http:    client,
		path:    path,
		alerter: alerter,
	}
}

// WithAlerter returns a copy of the client that reports failures to alerter.
func (c *Client) WithAlerter(alerter Alerter) *Client {
	cp := *c
	cp.alerter = alerter
	return &cp
}

// URL is the address fetched for key. The key is appended verbatim.
func (c *Client) URL(key string) string {
	return c.http.BaseURL + c.path + key
}

// Fetch retrieves and decodes the record for key.
func (c *Client) Fetch(ctx context.Context, key string) (*models.RawRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.path + key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode())
	}

	var record models.RawRecord
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrFetchFailed, err)
	}
	return &record, nil
}

// Load fetches key and hands the record to onData. On failure the alerter
// is called once with FailureMessage and onData is not called. The error
// returned is the fetch error or whatever onData returned.
func (c *Client) Load(ctx context.Context, key string, onData func(*models.RawRecord) error) error {
	record, err := c.Fetch(ctx, key)
	if err != nil {
		nuts.L.Warnf("[Fetcher] %s: %v", c.URL(key), err)
		c.alerter.Alert(FailureMessage)
		return err
	}
	return onData(record)
}
