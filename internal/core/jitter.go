package core

import (
	"context"
	"math/rand/v2"
	"time"

	"pz-mod-installer/internal/types"
)

var (
	DefaultRetryJitter = types.JitterRange{Min: 2, Max: 5}
	DefaultItemJitter  = types.JitterRange{Min: 1, Max: 3}
)

// SleepFunc blocks for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep is the production SleepFunc.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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

// JitterDelay draws a uniform delay from r. A degenerate or inverted range
// collapses to its lower bound.
func JitterDelay(r types.JitterRange, float func() float64) time.Duration {
	low := r.Min
	if low < 0 {
		low = 0
	}
	seconds := low
	if r.Max > low {
		if float == nil {
			float = rand.Float64
		}
		seconds = low + float()*(r.Max-low)
	}
	return time.Duration(seconds * float64(time.Second))
}
