// FilePath: internal/monitor/notify.go
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	nuts "github.com/vaudience/go-nuts"
)

// Notifier delivers an alert to a person.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// LogNotifier writes alerts to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, subject, body string) error {
	nuts.L.Warnf("[Monitor] %s: %s", subject, body)
	return nil
}

// WebhookNotifier posts alerts as JSON to a chat or mail relay.
type WebhookNotifier struct {
	http *resty.Client
	url  string
}

type notification struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	client := resty.New().SetRetryCount(0)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &WebhookNotifier{http: client, url: url}
}

func (n *WebhookNotifier) Notify(ctx context.Context, subject, body string) error {
	resp, err := n.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(notification{Subject: subject, Body: body}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("notify %s: %w", n.url, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("notify %s: status %d", n.url, resp.StatusCode())
	}
	return nil
}
