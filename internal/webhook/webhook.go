// FilePath: internal/webhook/webhook.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/errors"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// EventStored is emitted with the read key after every stored sample.
const EventStored = "sample.stored"

// Service catches samples posted under a write key and serves them back
// under the matching read key.
type Service struct {
	readKeys map[string]string // write key -> read key
	known    map[string]struct{}
	store    repository.SampleStore
	histLen  int
	events   *nuts.EventEmitter
}

// New creates a Service. histLen caps every read key's history.
func New(endpoints []config.EndpointConfig, store repository.SampleStore, histLen int) *Service {
	s := &Service{
		readKeys: make(map[string]string, len(endpoints)),
		known:    make(map[string]struct{}, len(endpoints)),
		store:    store,
		histLen:  histLen,
		events:   nuts.NewEventEmitter(),
	}
	for _, ep := range endpoints {
		s.readKeys[ep.WriteKey] = ep.ReadKey
		s.known[ep.ReadKey] = struct{}{}
	}
	nuts.L.Infof("[Webhook] %d endpoint(s) configured, keeping %d samples each", len(endpoints), histLen)
	return s
}

// Validate checks if the service can store anything
func (s *Service) Validate() error {
	if s.store == nil {
		return errors.NewInternalError("missing sample store", nil)
	}
	if s.histLen <= 0 {
		return errors.NewInternalError(fmt.Sprintf("invalid history length %d", s.histLen), nil)
	}
	return nil
}

// Catch decodes a posted sample and appends it to the history of the read
// key paired with writeKey. Only published_at and data are kept.
func (s *Service) Catch(ctx context.Context, writeKey string, body []byte) (string, error) {
	readKey, ok := s.readKeys[writeKey]
	if !ok {
		return "", errors.NewValidationError("unknown write key", repository.ErrUnknownKey)
	}

	entry, err := DecodeEntry(body)
	if err != nil {
		return "", err
	}

	if err := s.store.Append(ctx, readKey, entry, s.histLen); err != nil {
		return "", err
	}

	if err := s.events.Emit(EventStored, readKey); err != nil {
		nuts.L.Warnf("[Webhook] Failed to emit %s for %s: %v", EventStored, readKey, err)
	}
	return readKey, nil
}

// History returns the stored samples of readKey, oldest first.
func (s *Service) History(ctx context.Context, readKey string) (*models.RawRecord, error) {
	if _, ok := s.known[readKey]; !ok {
		return nil, errors.NewNotFoundError("unknown read key", repository.ErrUnknownKey)
	}

	entries, err := s.store.List(ctx, readKey)
	if err != nil {
		return nil, err
	}
	return &models.RawRecord{Entries: entries}, nil
}

// OnStored registers a callback for stored samples.
func (s *Service) OnStored(handler func(readKey string)) {
	s.events.On(EventStored, nuts.NID("on_stored", 8), handler)
}

// DecodeEntry pulls published_at and data out of a posted JSON object.
// Both must be present and be strings.
func DecodeEntry(body []byte) (models.Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return models.Entry{}, errors.NewValidationError("invalid request body", err)
	}

	var entry models.Entry
	for name, dst := range map[string]*string{"published_at": &entry.PublishedAt, "data": &entry.Data} {
		raw, ok := fields[name]
		if !ok {
			return models.Entry{}, errors.NewValidationError("missing field "+name, nil)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return models.Entry{}, errors.NewValidationError("field "+name+" must be a string", nil)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return models.Entry{}, errors.NewValidationError("field "+name+" must be a string", err)
		}
	}
	return entry, nil
}
