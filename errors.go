package dcpool

import "errors"

// Sentinel errors returned by the cache, worker, and package-level API.
var (
	// ErrClosed is returned by Acquire after the cache has been closed.
	ErrClosed = errors.New("dcpool: cache is closed")

	// ErrWorkerClosed is returned by Worker.Do after the worker has been
	// closed. A closed worker never restarts.
	ErrWorkerClosed = errors.New("dcpool: creation worker is closed")

	// ErrAcquireTimeout is returned when a worker-mediated handle request
	// does not complete within the configured wait timeout. The request
	// itself is not cancelled; it still runs on the worker thread. This is
	// a watchdog against worker starvation, not a cancellation mechanism.
	ErrAcquireTimeout = errors.New("dcpool: handle acquisition timed out")

	// ErrNoBinder is returned by AcquireSurface when neither a
	// WithSurfaceBinder option was given nor the allocator implements
	// SurfaceBinder.
	ErrNoBinder = errors.New("dcpool: no surface binder configured")

	// ErrNotInitialized is returned by the package-level acquire helpers
	// before Init has been called.
	ErrNotInitialized = errors.New("dcpool: default cache not initialized")

	// ErrAlreadyInitialized is returned by Init when a default cache
	// already exists. Call Shutdown first to replace it.
	ErrAlreadyInitialized = errors.New("dcpool: default cache already initialized")
)
