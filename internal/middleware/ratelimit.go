package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count int
	until time.Time
}

// fixedWindow counts requests per key. Expired buckets are swept lazily once
// per window.
type fixedWindow struct {
	mu        sync.Mutex
	limit     int
	per       time.Duration
	now       func() time.Time
	buckets   map[string]*bucket
	nextSweep time.Time
}

func newFixedWindow(limit int, per time.Duration) *fixedWindow {
	return &fixedWindow{
		limit:   limit,
		per:     per,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// allow records a hit for key. When the window is full it returns false and
// the whole seconds until the window resets, rounded up.
func (f *fixedWindow) allow(key string) (bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if now.After(f.nextSweep) {
		for k, b := range f.buckets {
			if now.After(b.until) {
				delete(f.buckets, k)
			}
		}
		f.nextSweep = now.Add(f.per)
	}
	b, ok := f.buckets[key]
	if !ok || now.After(b.until) {
		b = &bucket{until: now.Add(f.per)}
		f.buckets[key] = b
	}
	if b.count >= f.limit {
		return false, int(b.until.Sub(now).Seconds()) + 1
	}
	b.count++
	return true, 0
}

func (f *fixedWindow) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.buckets)
}

// RateLimit allows limit requests per client IP in each fixed window.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	return rateLimit(newFixedWindow(limit, per))
}

func rateLimit(window *fixedWindow) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retry := window.allow(clientIPForRateLimit(r))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests","code":"rate_limited"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPForRateLimit(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip != "" && net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}
