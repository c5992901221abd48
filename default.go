package dcpool

import "sync"

// defaultMu guards the process-wide default cache.
var (
	defaultMu    sync.Mutex
	defaultCache *Cache
)

// Init installs the process-wide default cache used by the package-level
// AcquireHandle and AcquireSurface helpers.
//
// Init has explicit init-once semantics: a second call without an
// intervening Shutdown returns ErrAlreadyInitialized. Applications that
// embed dcpool (and tests) should pair every Init with a Shutdown so the
// worker thread and idle handles are torn down deterministically rather
// than leaking into process exit.
func Init(alloc Allocator, opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultCache != nil {
		return ErrAlreadyInitialized
	}
	c, err := NewCache(alloc, opts...)
	if err != nil {
		return err
	}
	defaultCache = c
	return nil
}

// Shutdown closes and removes the default cache. Safe to call when no
// default cache exists.
func Shutdown() error {
	defaultMu.Lock()
	c := defaultCache
	defaultCache = nil
	defaultMu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

// Default returns the current default cache, or nil before Init.
func Default() *Cache {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultCache
}

// AcquireHandle checks out a handle from the default cache.
func AcquireHandle() (*Guard, error) {
	c := Default()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.Acquire()
}

// AcquireSurface checks out a handle from the default cache and binds a
// drawing surface to it.
func AcquireSurface() (*SurfaceScope, error) {
	c := Default()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.AcquireSurface()
}
