package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ngenohkevin/bookstore-admin/internal/config"
	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

// RedisClient backs the rate limiter and the short-lived report-status
// cache. Nothing stored here outlives its TTL; the gateway holds no durable
// state.
type RedisClient struct {
	Client *redis.Client
}

func NewRedis(cfg *config.Config) (*RedisClient, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,

		// Connection pool settings
		PoolSize:        10,
		MinIdleConns:    5,
		MaxRetries:      3,
		ConnMaxIdleTime: 30 * time.Minute,
		ConnMaxLifetime: time.Hour,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return &RedisClient{
		Client: client,
	}, nil
}

func (r *RedisClient) Close() error {
	if r.Client != nil {
		if err := r.Client.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
		slog.Info("Redis connection closed")
	}
	return nil
}

func (r *RedisClient) Health(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// LookupReportStatus returns a cached status snapshot when one has not yet
// expired. Cache problems behave as misses.
func (r *RedisClient) LookupReportStatus(ctx context.Context, id string) (*models.ReportStatus, bool) {
	val, err := r.Client.Get(ctx, reportStatusKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var status models.ReportStatus
	if err := json.Unmarshal([]byte(val), &status); err != nil {
		return nil, false
	}
	return &status, true
}

// StoreReportStatus caches a status snapshot for ttl. Failures are ignored;
// the cache is an optimization, never a source of truth.
func (r *RedisClient) StoreReportStatus(ctx context.Context, id string, status *models.ReportStatus, ttl time.Duration) {
	data, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := r.Client.Set(ctx, reportStatusKey(id), data, ttl).Err(); err != nil {
		slog.Warn("failed to cache report status", slog.String("report_id", id), slog.Any("error", err))
	}
}

func reportStatusKey(id string) string {
	return fmt.Sprintf("report_status:%s", id)
}
