package monitoring

import (
	"sort"
	"strings"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// EventMetric is the tally of one event name.
type EventMetric struct {
	Name     string    `json:"name"`
	Count    int64     `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// Service provides monitoring functionality
type Service struct {
	mu      sync.RWMutex
	started time.Time
	events  map[string]*EventMetric
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{
		started: time.Now(),
		events:  map[string]*EventMetric{},
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := time.Now()

	s.mu.Lock()
	m, ok := s.events[eventName]
	if !ok {
		m = &EventMetric{Name: eventName}
		s.events[eventName] = m
	}
	m.Count++
	m.LastSeen = ts
	s.mu.Unlock()

	nuts.L.Debugf("[Monitoring] Event %s recorded at %v with labels: %s", eventName, ts, formatLabels(labels))
}

// Count returns how often eventName was recorded.
func (s *Service) Count(eventName string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.events[eventName]; ok {
		return m.Count
	}
	return 0
}

// Snapshot is the metrics view served over HTTP.
type Snapshot struct {
	Uptime string        `json:"uptime"`
	Events []EventMetric `json:"events"`
}

// GetEventMetrics returns every recorded event, sorted by name.
func (s *Service) GetEventMetrics() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := Snapshot{
		Uptime: time.Since(s.started).Round(time.Second).String(),
		Events: make([]EventMetric, 0, len(s.events)),
	}
	for _, m := range s.events {
		out.Events = append(out.Events, *m)
	}
	sort.Slice(out.Events, func(i, j int) bool { return out.Events[i].Name < out.Events[j].Name })
	return out
}

func formatLabels(labels map[string]string) string {
	parts := make([]string, 0, len(labels))
	for k, v := range labels {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
