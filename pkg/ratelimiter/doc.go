// Package ratelimiter throttles requests per key with token buckets from
// golang.org/x/time/rate.
//
// Each key (by default the client IP) owns an independent bucket that refills
// at Config.PerMinute tokens per minute and holds at most Config.Burst tokens.
// Idle buckets are evicted by Run so memory stays bounded.
//
//	limiter := ratelimiter.New(cfg)
//	go limiter.Run(ctx)
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByIP)).Get("/auth/{provider}/login", h)
package ratelimiter
