// FilePath: internal/repository/redisstore/redis.samples.go
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/errors"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// SampleRepo keeps each read key's history in a capped redis list.
type SampleRepo struct {
	client *redis.Client
	prefix string
}

var _ repository.SampleStore = (*SampleRepo)(nil)

// NewClient connects to redis and checks the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	nuts.L.Infof("[Redis] Connected to %s:%d/%d", cfg.Host, cfg.Port, cfg.DB)
	return client, nil
}

func NewSampleRepository(client *redis.Client, prefix string) *SampleRepo {
	return &SampleRepo{client: client, prefix: prefix}
}

func (r *SampleRepo) key(readKey string) string {
	return r.prefix + readKey
}

func (r *SampleRepo) Append(ctx context.Context, readKey string, entry models.Entry, limit int) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return errors.NewInternalError("failed to encode sample", err)
	}

	key := r.key(readKey)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		if limit > 0 {
			pipe.LTrim(ctx, key, int64(-limit), -1)
		}
		return nil
	})
	if err != nil {
		return errors.NewStorageError("failed to append sample", err)
	}
	return nil
}

func (r *SampleRepo) List(ctx context.Context, readKey string) ([]models.Entry, error) {
	values, err := r.client.LRange(ctx, r.key(readKey), 0, -1).Result()
	if err != nil {
		return nil, errors.NewStorageError("failed to list samples", err)
	}

	entries := make([]models.Entry, 0, len(values))
	for _, v := range values {
		var e models.Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			nuts.L.Warnf("[RedisSampleRepo] Skipping undecodable sample under %s: %v", readKey, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
