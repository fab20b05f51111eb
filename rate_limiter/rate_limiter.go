package rate_limiter

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter bounds the number of concurrently-open source object streams
// and, optionally, the rate at which new streams are started.
type Limiter struct {
	Name string

	// underlying rate limiter
	limiter *rate.Limiter
	// semaphore to control concurrency
	sem            *semaphore.Weighted
	maxConcurrency int64
}

func New(name string, maxConcurrency int64) *Limiter {
	res := &Limiter{
		Name:           name,
		maxConcurrency: maxConcurrency,
	}
	if maxConcurrency != 0 {
		res.sem = semaphore.NewWeighted(maxConcurrency)
	}
	return res
}

// WithFillRate adds a token-bucket rate limit on top of the concurrency cap.
func (l *Limiter) WithFillRate(fillRate rate.Limit, bucketSize int) *Limiter {
	if fillRate != 0 {
		l.limiter = rate.NewLimiter(fillRate, bucketSize)
	}
	return l
}

func (l *Limiter) String() string {
	if l.limiter == nil {
		return fmt.Sprintf("MaxConcurrency: %d", l.maxConcurrency)
	}
	return fmt.Sprintf("MaxConcurrency: %d, Limit(/s): %v, Burst: %d", l.maxConcurrency, l.limiter.Limit(), l.limiter.Burst())
}

// Wait blocks until a concurrency slot (and a rate token, if configured)
// is available. Every successful Wait must be paired with a Release.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.sem != nil {
		if err := l.sem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			l.Release()
			return err
		}
	}
	return nil
}

func (l *Limiter) Release() {
	if l.sem == nil {
		return
	}
	l.sem.Release(1)
}
