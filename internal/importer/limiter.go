package importer

// limiter.go bounds how many import requests run at once.
//
// Each individual batch is strictly sequential; the limiter only caps
// distinct concurrent uploads so a burst of bulk imports cannot exhaust
// database connections or memory. When all slots are occupied, new requests
// wait up to maxWait before failing with ErrTooManyImports.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyImports is returned when all import slots are occupied and the
// wait timeout expires. Clients should retry after a short delay.
var ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

// DefaultMaxConcurrentImports is the default limit for parallel import
// requests.
const DefaultMaxConcurrentImports = 5

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// Limiter controls concurrent import processing with a semaphore.
type Limiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewLimiter creates a limiter allowing at most maxConcurrent simultaneous
// imports. Requests that cannot acquire a slot within maxWait receive
// ErrTooManyImports.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &Limiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire attempts to acquire an import slot.
// Returns nil on success, ErrTooManyImports if the wait times out.
// The caller MUST call Release when the import completes (use defer).
func (l *Limiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyImports
	}
}

// Release frees an import slot.
func (l *Limiter) Release() {
	select {
	case <-l.semaphore:
		l.mu.Lock()
		l.active--
		l.mu.Unlock()
	default:
		// Release without Acquire is a programming error; don't block.
	}
}

// Active returns the number of imports currently holding a slot.
func (l *Limiter) Active() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}
