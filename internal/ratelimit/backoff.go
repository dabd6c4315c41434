// Package ratelimit supplies the jittered exponential backoff shared by
// every fetch backend's retry loop, so the 2^attempt+jitter math isn't
// hand-duplicated in each client the way the reference system repeats it
// inline inside every _fetch_with_retry method.
package ratelimit

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes the sleep duration after a failed attempt. attempt is
// 1-based: the sleep after the first failure uses exponent 1, the sleep
// after the second failure uses exponent 2, and so on, each with a full
// second of uniform jitter added on top (2^attempt + uniform(0,1) seconds).
func Backoff(attempt int) time.Duration {
	base := math.Pow(2, float64(attempt))
	jitter := rand.Float64()
	return time.Duration((base + jitter) * float64(time.Second))
}

// Sleep blocks for the backoff duration after attempt, returning early with
// ctx.Err() if the context is cancelled first.
func Sleep(ctx context.Context, attempt int) error {
	timer := time.NewTimer(Backoff(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// JitterSleep sleeps a uniform(min, max) duration, returning early with
// ctx.Err() if the context is cancelled first. The engine worker pool's
// per-task stagger uses its own sleepJitter helper, not this function.
func JitterSleep(ctx context.Context, min, max time.Duration) error {
	span := max - min
	d := min
	if span > 0 {
		d += time.Duration(rand.Float64() * float64(span))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
