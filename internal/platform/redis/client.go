// Package redis connects the optional Redis used for the cross-instance
// grant lock.
package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"toonpass/internal/platform/config"
)

// Client is a go-redis client whose pool stats are exported to Prometheus.
type Client struct {
	*redis.Client
}

type Option func(*options)

type options struct {
	registerer prometheus.Registerer
}

// WithMetrics registers pool collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New returns nil, nil when cfg.URL is empty; grants then lock in-process
// only.
func New(ctx context.Context, cfg config.RedisConfig, opts ...Option) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ro, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		ro.PoolSize = cfg.PoolSize
	}
	ro.MinIdleConns = cfg.MinIdleConns
	ro.DialTimeout = cfg.DialTimeout
	ro.ReadTimeout = cfg.ReadTimeout
	ro.WriteTimeout = cfg.WriteTimeout

	rdb := redis.NewClient(ro)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if o.registerer != nil {
		if err := o.registerer.Register(newPoolCollector(rdb)); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("register redis metrics: %w", err)
		}
	}
	return &Client{Client: rdb}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// poolCollector reads PoolStats at scrape time, so no polling goroutine is
// needed.
type poolCollector struct {
	stats func() *redis.PoolStats

	hits, misses, timeouts *prometheus.Desc
	total, idle, stale     *prometheus.Desc
}

func newPoolCollector(rdb *redis.Client) *poolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("toonpass_redis_pool_"+name, help, nil, nil)
	}
	return &poolCollector{
		stats:    rdb.PoolStats,
		hits:     desc("hits_total", "Connections found idle in the pool."),
		misses:   desc("misses_total", "Connections that had to be dialed."),
		timeouts: desc("timeouts_total", "Waits for a connection that timed out."),
		total:    desc("conns", "Open connections."),
		idle:     desc("idle_conns", "Idle connections."),
		stale:    desc("stale_conns_total", "Connections closed as stale."),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.hits, c.misses, c.timeouts, c.total, c.idle, c.stale} {
		ch <- d
	}
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.timeouts, prometheus.CounterValue, float64(s.Timeouts))
	ch <- prometheus.MustNewConstMetric(c.stale, prometheus.CounterValue, float64(s.StaleConns))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.TotalConns))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.IdleConns))
}
