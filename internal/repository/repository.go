// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/kc0bfv/power-sensor-monitor/internal/models"
)

var (
	// ErrUnknownKey indicates a write or read key no endpoint is configured for
	ErrUnknownKey = errors.New("unknown key")
)

// SampleStore keeps the recent sample history of every read key.
type SampleStore interface {
	// Append adds entry to the history of readKey and drops everything but
	// the newest limit entries.
	Append(ctx context.Context, readKey string, entry models.Entry, limit int) error
	// List returns the history of readKey, oldest first. A key with no
	// history yields an empty slice.
	List(ctx context.Context, readKey string) ([]models.Entry, error)
}

// Cap keeps the newest limit entries.
func Cap(entries []models.Entry, limit int) []models.Entry {
	if limit > 0 && len(entries) > limit {
		return entries[len(entries)-limit:]
	}
	return entries
}
