// Package ratelimiter implements a token bucket limiter with an in-memory
// store and an HTTP middleware.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.PerMinute(10))
//	r.With(ratelimiter.Middleware(ratelimiter.MiddlewareConfig{
//		Limiter: bucket,
//		Key:     clientip.Key,
//	})).Post("/login", ...)
//
// Denied requests never drain the bucket below zero, so a client that keeps
// hammering an endpoint recovers as soon as the next refill arrives.
package ratelimiter
