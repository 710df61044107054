// Package ratelimit throttles form submissions per client with a fixed
// window counter kept in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zvezde365/zvezde-api/internal/pkg/httputil"
	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
)

const keyPrefix = "zvezde:ratelimit"

// The counter is read, compared and incremented in one script so that
// concurrent requests cannot both pass on the last free slot.
const fixedWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = tonumber(redis.call("GET", key) or "0")
if current >= limit then
    return {0, current, redis.call("PTTL", key)}
end

local n = redis.call("INCR", key)
if n == 1 then
    redis.call("PEXPIRE", key, window)
end
return {1, n, redis.call("PTTL", key)}
`

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Count      int
	Limit      int
	RetryAfter time.Duration
}

// Limiter allows at most Limit requests per key per Window.
type Limiter struct {
	client redis.Scripter
	script *redis.Script
	limit  int
	window time.Duration
}

// New returns a limiter backed by client.
func New(client redis.Scripter, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		limit:  limit,
		window: window,
	}
}

// NewFromURL connects to Redis and verifies the connection.
func NewFromURL(ctx context.Context, redisURL string, limit int, window time.Duration) (*Limiter, *redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Info("rate limiter connected", "addr", opts.Addr, "limit", limit, "window", window)
	return New(client, limit, window), client, nil
}

// Allow counts one request for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := l.script.Run(ctx, l.client,
		[]string{keyPrefix + ":" + key},
		l.limit, l.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	d := Decision{Allowed: res[0] == 1, Count: int(res[1]), Limit: l.limit}
	if !d.Allowed {
		d.RetryAfter = time.Duration(res[2]) * time.Millisecond
		if d.RetryAfter <= 0 {
			d.RetryAfter = l.window
		}
	}
	return d, nil
}

// ClientKey identifies the caller by remote IP. It expects RemoteAddr to
// have been rewritten by a real-IP middleware when behind a proxy.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects requests over the limit with 429. A nil limiter
// passes everything through, and Redis failures let the request through.
func Middleware(l *Limiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := l.Allow(r.Context(), scope+":"+ClientKey(r))
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !d.Allowed {
				logger.Info("submission rate limited", "scope", scope, "count", d.Count, "limit", d.Limit)
				httputil.TooManyRequests(w, d.RetryAfter)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
