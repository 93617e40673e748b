// internal/catalog/source.go
// Live candidate source for the upstream ticketing catalog. The client
// owns its own resilience: a circuit breaker around the HTTP call, a
// short-lived in-process cache, and an optional Redis layer shared
// across instances.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Source supplies normalized candidates for a city, optionally
// narrowed to a category set.
type Source interface {
	Events(ctx context.Context, cityID string, categoryIDs []string) ([]Event, error)
}

type ClientConfig struct {
	BaseURL     string
	Token       string
	ResultCap   int
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

type Client struct {
	baseURL   string
	token     string
	resultCap int

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]json.RawMessage]
	cache      *batchCache
	redis      *redis.Client
	redisTTL   time.Duration
}

// NewClient builds a live catalog client. redisClient may be nil; the
// in-process cache always applies.
func NewClient(cfg ClientConfig, redisClient *redis.Client) *Client {
	if cfg.ResultCap <= 0 {
		cfg.ResultCap = 500
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		resultCap:  cfg.ResultCap,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cache:      newBatchCache(ttl),
		redis:      redisClient,
		redisTTL:   ttl,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]json.RawMessage](gobreaker.Settings{
		Name:    "catalog-upstream",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("catalog: circuit %s %s -> %s", name, from, to)
		},
	})

	return c
}

func (c *Client) Events(ctx context.Context, cityID string, categoryIDs []string) ([]Event, error) {
	key := batchKey(cityID, categoryIDs)

	if events, ok := c.cache.get(key); ok {
		return events, nil
	}
	if raws, ok := c.redisGet(ctx, key); ok {
		events := DecodeEvents(raws)
		c.cache.put(key, events)
		return events, nil
	}

	raws, err := c.breaker.Execute(func() ([]json.RawMessage, error) {
		items, err := c.fetch(ctx, cityID, categoryIDs)
		if err != nil {
			return nil, err
		}
		// Category-narrowed queries sometimes come back empty for
		// valid cities; retry the broad query before giving up.
		if len(items) == 0 && len(categoryIDs) > 0 {
			return c.fetch(ctx, cityID, nil)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	events := DecodeEvents(raws)
	c.cache.put(key, events)
	c.redisPut(ctx, key, raws)
	return events, nil
}

func (c *Client) fetch(ctx context.Context, cityID string, categoryIDs []string) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("take", fmt.Sprintf("%d", c.resultCap))
	params.Set("city_ids", cityID)
	if len(categoryIDs) > 0 {
		params.Set("category_ids", strings.Join(categoryIDs, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Etkinlik-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog upstream returned status %d", resp.StatusCode)
	}

	// The upstream responds with either a bare array or {"items": [...]}.
	var wrapped struct {
		Items []json.RawMessage `json:"items"`
	}
	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Items, nil
}

func (c *Client) redisGet(ctx context.Context, key string) ([]json.RawMessage, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, "catalog:batch:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, false
	}
	return raws, true
}

func (c *Client) redisPut(ctx context.Context, key string, raws []json.RawMessage) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(raws)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, "catalog:batch:"+key, data, c.redisTTL).Err(); err != nil {
		log.Printf("catalog: redis cache write failed: %v", err)
	}
}
