// Package cache provides a Redis-backed response cache for the public browse
// routes. Entries are keyed on the request path so mutations can invalidate
// everything under a route prefix.
package cache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cache:"

// Store wraps a Redis client with the cache TTL. A nil Store (or a Store with
// a nil client) disables caching; all methods are nil-safe.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a Store. rdb may be nil, which disables caching.
func New(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Enabled reports whether the store can serve cache traffic.
func (s *Store) Enabled() bool {
	return s != nil && s.rdb != nil
}

// cachedResponse is the stored envelope: status, content type, raw body.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// key builds a stable cache key: prefix + request path + hashed query, so the
// path part stays scannable for invalidation.
func key(path, rawQuery string) string {
	sum := sha1.Sum([]byte(rawQuery))
	return fmt.Sprintf("%s%s:%x", keyPrefix, path, sum[:])
}

// bodyCaptureWriter duplicates the response body while forwarding to the client.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware returns a gin middleware caching successful GET responses.
func (s *Store) Middleware() gin.HandlerFunc {
	if !s.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		k := key(c.Request.URL.Path, c.Request.URL.RawQuery)

		if raw, err := s.rdb.Get(ctx, k).Bytes(); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		cw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Header("X-Cache", "MISS")

		c.Next()

		if cw.Status() != http.StatusOK {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			Status:      cw.Status(),
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.Bytes(),
		})
		if err != nil {
			return
		}
		if err := s.rdb.SetEx(context.Background(), k, payload, s.ttl).Err(); err != nil {
			log.Printf("cache: store failed for %s: %v", k, err)
		}
	}
}

// InvalidatePrefix drops every cached entry whose request path starts with
// pathPrefix. Best effort; failures are logged and swallowed.
func (s *Store) InvalidatePrefix(ctx context.Context, pathPrefix string) {
	if !s.Enabled() {
		return
	}

	var cursor uint64
	pattern := keyPrefix + pathPrefix + "*"
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			log.Printf("cache: scan failed for %s: %v", pattern, err)
			return
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				log.Printf("cache: delete failed: %v", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
