package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultClientTTL is how long an idle client's limiter is kept.
const DefaultClientTTL = 10 * time.Minute

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	// ClientTTL evicts limiters idle for longer than this. Zero uses
	// DefaultClientTTL.
	ClientTTL time.Duration
}

// DefaultRateLimitConfig returns production-ready rate limit configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             200,
		ClientTTL:         DefaultClientTTL,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen int64
}

// clientSet tracks one limiter per client key.
type clientSet struct {
	mu        sync.Mutex
	clients   map[string]*client
	cfg       RateLimitConfig
	ttl       int64
	lastSweep int64
	now       func() time.Time
}

func newClientSet(cfg RateLimitConfig) *clientSet {
	ttl := cfg.ClientTTL
	if ttl <= 0 {
		ttl = DefaultClientTTL
	}
	return &clientSet{
		clients: make(map[string]*client),
		cfg:     cfg,
		ttl:     int64(ttl),
		now:     time.Now,
	}
}

func (s *clientSet) allow(key string) bool {
	now := s.now().UnixNano()

	s.mu.Lock()
	if now-s.lastSweep > s.ttl {
		for k, cl := range s.clients {
			if now-cl.lastSeen > s.ttl {
				delete(s.clients, k)
			}
		}
		s.lastSweep = now
	}
	cl, exists := s.clients[key]
	if !exists {
		cl = &client{
			limiter: rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), s.cfg.Burst),
		}
		s.clients[key] = cl
	}
	cl.lastSeen = now
	limiter := cl.limiter
	s.mu.Unlock()

	return limiter.Allow()
}

func (s *clientSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// RateLimit creates a per-IP rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return rateLimit(newClientSet(cfg))
}

func rateLimit(set *clientSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !set.allow(c.ClientIP()) {
			tooMany(c)
			return
		}
		c.Next()
	}
}

// GlobalRateLimit creates a global rate limiting middleware.
func GlobalRateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			tooMany(c)
			return
		}
		c.Next()
	}
}

func tooMany(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error": "rate limit exceeded",
	})
}
