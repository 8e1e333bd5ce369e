package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/beniamp/orders-tracking/internal/config"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	comparisonKeyPrefix = "report:comparison"
	balanceKeyPrefix    = "report:balance"
	scanBatchSize       = 100
	defaultReportTTL    = time.Minute
)

// ReportKey identifies one dashboard computation for caching.
type ReportKey struct {
	Start       string
	End         string
	Category    string
	Brand       string
	ShadowCount int
}

// ReportCache stores computed dashboard payloads. Every computation is
// reproducible from the base table, so cached entries are plain derived
// views with a short TTL.
type ReportCache interface {
	GetComparison(ctx context.Context, key ReportKey) (*domain.ComparisonReport, bool, error)
	SetComparison(ctx context.Context, key ReportKey, report *domain.ComparisonReport) error
	GetBalance(ctx context.Context, key ReportKey) (*domain.BalanceDashboard, bool, error)
	SetBalance(ctx context.Context, key ReportKey, dash *domain.BalanceDashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache builds a redis-backed cache, or the noop cache when
// caching is disabled in config.
func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

// NewNoopReportCache returns a cache that stores nothing.
func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetComparison(ctx context.Context, key ReportKey) (*domain.ComparisonReport, bool, error) {
	var report domain.ComparisonReport
	ok, err := c.get(ctx, buildKey(comparisonKeyPrefix, key), &report)
	if err != nil || !ok {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *redisReportCache) SetComparison(ctx context.Context, key ReportKey, report *domain.ComparisonReport) error {
	return c.set(ctx, buildKey(comparisonKeyPrefix, key), report)
}

func (c *redisReportCache) GetBalance(ctx context.Context, key ReportKey) (*domain.BalanceDashboard, bool, error) {
	var dash domain.BalanceDashboard
	ok, err := c.get(ctx, buildKey(balanceKeyPrefix, key), &dash)
	if err != nil || !ok {
		return nil, false, err
	}
	return &dash, true, nil
}

func (c *redisReportCache) SetBalance(ctx context.Context, key ReportKey, dash *domain.BalanceDashboard) error {
	return c.set(ctx, buildKey(balanceKeyPrefix, key), dash)
}

func (c *redisReportCache) get(ctx context.Context, key string, out any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("decode report cache: %w", err)
	}
	return true, nil
}

func (c *redisReportCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	for _, prefix := range []string{comparisonKeyPrefix, balanceKeyPrefix} {
		var cursor uint64
		for {
			keys, nextCursor, err := c.client.Scan(ctx, cursor, prefix+"*", scanBatchSize).Result()
			if err != nil {
				return fmt.Errorf("redis scan failed: %w", err)
			}

			if len(keys) > 0 {
				if err := c.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("redis delete failed: %w", err)
				}
			}

			cursor = nextCursor
			if cursor == 0 {
				break
			}
		}
	}
	return nil
}

func (n *noopReportCache) GetComparison(ctx context.Context, key ReportKey) (*domain.ComparisonReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetComparison(ctx context.Context, key ReportKey, report *domain.ComparisonReport) error {
	return nil
}

func (n *noopReportCache) GetBalance(ctx context.Context, key ReportKey) (*domain.BalanceDashboard, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetBalance(ctx context.Context, key ReportKey, dash *domain.BalanceDashboard) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildKey(prefix string, key ReportKey) string {
	parts := strings.Join([]string{
		key.Start,
		key.End,
		key.Category,
		key.Brand,
		strconv.Itoa(key.ShadowCount),
	}, "|")

	sum := sha1.Sum([]byte(parts))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
