// FilePath: internal/repository/files/files.storage.go
package files

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kc0bfv/power-sensor-monitor/internal/errors"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

const (
	defaultDirPermissions  = 0755
	defaultFilePermissions = 0644
)

// SampleRepo keeps one JSON array file per read key under a base directory.
// Histories are loaded on first use and cached afterwards.
type SampleRepo struct {
	basePath string
	mu       sync.Mutex
	cache    map[string][]models.Entry
}

var _ repository.SampleStore = (*SampleRepo)(nil)

// NewSampleRepository creates a new file backed sample store
func NewSampleRepository(basePath string) (*SampleRepo, error) {
	if err := createDirectoryIfNotExists(basePath); err != nil {
		return nil, err
	}
	return &SampleRepo{basePath: basePath, cache: map[string][]models.Entry{}}, nil
}

func (r *SampleRepo) Append(ctx context.Context, readKey string, entry models.Entry, limit int) error {
	path, err := r.filePath(readKey)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(readKey, path)
	if err != nil {
		return err
	}
	entries = repository.Cap(append(entries, entry), limit)

	data, err := json.Marshal(entries)
	if err != nil {
		return errors.NewInternalError("failed to encode samples", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, defaultFilePermissions); err != nil {
		return errors.NewStorageError("failed to write samples", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.NewStorageError("failed to replace samples file", err)
	}

	r.cache[readKey] = entries
	return nil
}

func (r *SampleRepo) List(ctx context.Context, readKey string) ([]models.Entry, error) {
	path, err := r.filePath(readKey)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(readKey, path)
	if err != nil {
		return nil, err
	}
	return append([]models.Entry{}, entries...), nil
}

// load must be called with r.mu held.
func (r *SampleRepo) load(readKey, path string) ([]models.Entry, error) {
	if entries, ok := r.cache[readKey]; ok {
		return entries, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []models.Entry{}, nil
	}
	if err != nil {
		return nil, errors.NewStorageError("failed to read samples", err)
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewStorageError("failed to decode samples file", err)
	}
	nuts.L.Debugf("[SampleRepo] Loaded %d samples from %s", len(entries), path)
	r.cache[readKey] = entries
	return entries, nil
}

func (r *SampleRepo) filePath(readKey string) (string, error) {
	if readKey == "" || readKey == "." || readKey == ".." || strings.ContainsAny(readKey, `/\`) {
		return "", errors.NewValidationError("read key is not usable as a file name", nil)
	}
	return filepath.Join(r.basePath, readKey), nil
}

func createDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		err := os.MkdirAll(path, defaultDirPermissions)
		if err != nil {
			return errors.NewInternalError("failed to create directory", err)
		}
	}
	return nil
}
