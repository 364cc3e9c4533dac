// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter applies a token-bucket limit per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
	message string
}

// NewRateLimiter allows roughly max requests per window per client.
func NewRateLimiter(max int, window time.Duration, message string) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   rate.Every(window / time.Duration(max)),
		burst:   max,
		message: message,
	}
}

// GlobalLimiter matches the API-wide tier: 100 requests per 15 minutes.
func GlobalLimiter() *RateLimiter {
	return NewRateLimiter(100, 15*time.Minute, "Too many requests, please try again after 15 minutes")
}

// AuthLimiter is the stricter tier for login and registration:
// 10 requests per 15 minutes.
func AuthLimiter() *RateLimiter {
	return NewRateLimiter(10, 15*time.Minute, "Too many login attempts, please try again after 15 minutes")
}

// VoteLimiter bounds cast attempts: 5 per hour.
func VoteLimiter() *RateLimiter {
	return NewRateLimiter(5, time.Hour, "Too many voting attempts, please try again later")
}

func (rl *RateLimiter) limiter(clientIP string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.clients[clientIP]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[clientIP] = l
	}
	return l
}

// Wrap applies the limit to a handler.
func (rl *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(GetClientIP(r)).Allow() {
			ErrorResponse(w, http.StatusTooManyRequests, rl.message)
			return
		}
		next(w, r)
	}
}
