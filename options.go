package dcpool

import "time"

// Mode selects how the cache creates handles on a miss.
type Mode int

const (
	// ModeDirect creates handles synchronously on the calling goroutine.
	// Slots start empty and fill lazily as handles are released. Use this
	// when the platform places no thread-affinity constraint on creation.
	ModeDirect Mode = iota

	// ModeWorker funnels all handle creation and destruction through a
	// dedicated worker goroutine locked to its OS thread. Use this when
	// the platform requires resources to live and die on the one thread
	// that owns them. The cache constructor pre-populates slots through
	// the worker before returning; releases that must destroy a handle
	// queue the destruction to the worker without blocking.
	ModeWorker
)

// DefaultCapacity is the number of slots a cache allocates when
// WithCapacity is not given. It is also the upper bound on how many slots
// ModeWorker pre-populates at construction.
const DefaultCapacity = 5

// Option configures a Cache during creation.
// Use functional options to customize Cache behavior.
//
// Example:
//
//	// Default: direct creation, 5 slots
//	c, err := dcpool.NewCache(alloc)
//
//	// Worker-mediated creation with a diagnostic wait timeout
//	c, err := dcpool.NewCache(alloc,
//	    dcpool.WithMode(dcpool.ModeWorker),
//	    dcpool.WithWaitTimeout(2*time.Second))
type Option func(*cacheOptions)

// cacheOptions holds optional configuration for Cache creation.
type cacheOptions struct {
	capacity    int
	mode        Mode
	worker      *Worker
	waitTimeout time.Duration
	binder      SurfaceBinder
}

// defaultCacheOptions returns the default cache options.
func defaultCacheOptions() cacheOptions {
	return cacheOptions{
		capacity: DefaultCapacity,
		mode:     ModeDirect,
	}
}

// WithCapacity sets the number of idle-handle slots.
// Capacity must be positive; NewCache panics otherwise, since a zero-size
// cache is a programming error rather than a recoverable condition.
func WithCapacity(n int) Option {
	return func(o *cacheOptions) {
		o.capacity = n
	}
}

// WithMode selects the creation mode. See Mode for the tradeoff.
func WithMode(m Mode) Option {
	return func(o *cacheOptions) {
		o.mode = m
	}
}

// WithWorker supplies an externally owned Worker for ModeWorker caches.
// The cache will not close a shared worker on Close; the caller retains
// ownership. Implies ModeWorker.
//
// Without this option a ModeWorker cache starts and owns its own worker.
func WithWorker(w *Worker) Option {
	return func(o *cacheOptions) {
		o.mode = ModeWorker
		o.worker = w
	}
}

// WithWaitTimeout bounds how long a worker-mediated creation request may
// block the caller before Acquire fails with ErrAcquireTimeout. Zero (the
// default) waits without bound.
//
// The timeout is a diagnostic watchdog against worker starvation: the
// request is not cancelled and still runs on the worker thread. Enable it
// in test and debug configurations; production deployments that trust the
// worker to stay alive may leave the wait unbounded.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *cacheOptions) {
		o.waitTimeout = d
	}
}

// WithSurfaceBinder sets the binder used by AcquireSurface.
// By default the cache uses the allocator itself when it implements
// SurfaceBinder.
func WithSurfaceBinder(b SurfaceBinder) Option {
	return func(o *cacheOptions) {
		o.binder = b
	}
}
