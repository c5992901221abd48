package dcpool

import (
	"errors"
	"sync/atomic"
	"time"
)

// Cache is a fixed-capacity, thread-safe cache of idle drawing-context
// handles.
//
// Each slot holds either one idle handle or the empty marker. All slot
// transitions are single atomic exchanges, so acquire and release never
// take a lock and never block each other: no two concurrent acquirers can
// claim the same slot's handle, because only the goroutine whose exchange
// reads a non-empty value wins it.
//
// The cache promises reuse, not ordering: a released handle becomes
// available to some future acquirer, but not necessarily the next one,
// and not in LRU or FIFO order. Under contention an acquirer may lose
// every slot race and fall through to creating a fresh handle even though
// an idle one was briefly visible.
//
// Thread safety: Cache is safe for concurrent use. The cache must outlive
// every Guard it has issued; that ownership invariant is the caller's to
// uphold.
type Cache struct {
	// slots holds idle handles, nilHandle marking empty. Fixed length,
	// scanned in index order from 0.
	slots []atomic.Uintptr

	alloc  Allocator
	binder SurfaceBinder

	// worker is non-nil in ModeWorker. ownWorker records whether Close
	// should also close it.
	worker      *Worker
	ownWorker   bool
	waitTimeout time.Duration

	closed atomic.Bool

	// Statistics (atomic for zero-allocation reads).
	hits     atomic.Uint64 // acquires satisfied from a slot
	misses   atomic.Uint64 // acquires that created a handle
	discards atomic.Uint64 // releases that overflowed and freed a handle
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	// Hits counts acquires satisfied by an idle slot handle.
	Hits uint64

	// Misses counts acquires that had to create a new handle.
	Misses uint64

	// Discards counts handles freed because every slot was occupied at
	// release time.
	Discards uint64
}

// NewCache creates a handle cache backed by the given allocator.
//
// Capacity defaults to DefaultCapacity and must be positive; a
// non-positive capacity or a nil allocator panics, since both are
// programming errors rather than recoverable runtime conditions.
//
// In ModeWorker the constructor starts (or adopts, see WithWorker) the
// creation worker and synchronously pre-populates up to
// min(capacity, DefaultCapacity) slots through it before returning; a
// pre-population failure tears down anything already created and is
// returned as an error. In ModeDirect slots start empty and fill lazily.
func NewCache(alloc Allocator, opts ...Option) (*Cache, error) {
	if alloc == nil {
		panic("dcpool: NewCache with nil allocator")
	}

	o := defaultCacheOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		panic("dcpool: cache capacity must be positive")
	}

	c := &Cache{
		slots:       make([]atomic.Uintptr, o.capacity),
		alloc:       alloc,
		binder:      o.binder,
		waitTimeout: o.waitTimeout,
	}
	if c.binder == nil {
		// The allocator doubles as the binder when it can.
		if b, ok := alloc.(SurfaceBinder); ok {
			c.binder = b
		}
	}

	if o.mode == ModeWorker {
		c.worker = o.worker
		if c.worker == nil {
			c.worker = NewWorker()
			c.ownWorker = true
		}
		if err := c.prepopulate(min(o.capacity, DefaultCapacity)); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

// prepopulate fills the first n slots with freshly created handles, each
// created synchronously on the worker thread.
func (c *Cache) prepopulate(n int) error {
	for i := 0; i < n; i++ {
		h, err := c.create()
		if err != nil {
			return err
		}
		c.slots[i].Store(uintptr(h))
	}
	Logger().Debug("cache pre-populated", "slots", n)
	return nil
}

// Acquire checks out one handle, reusing an idle slot handle when
// possible and creating a new one otherwise.
//
// The slot array is scanned in fixed index order; the first slot whose
// atomic exchange yields a non-empty handle wins. If every slot reads
// empty, a handle is created: directly in ModeDirect, via the worker
// hand-off in ModeWorker (the only path on which Acquire can block).
// Creation failures from the allocator are returned as-is and never
// retried.
//
// The returned Guard owns the handle until its Release.
func (c *Cache) Acquire() (*Guard, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	for i := range c.slots {
		if h := Handle(c.slots[i].Swap(uintptr(nilHandle))); h != nilHandle {
			c.hits.Add(1)
			return &Guard{cache: c, handle: h}, nil
		}
	}

	c.misses.Add(1)
	h, err := c.create()
	if err != nil {
		return nil, err
	}
	return &Guard{cache: c, handle: h}, nil
}

// AcquireSurface checks out a handle and binds a drawing surface to it.
// The returned scope owns both; its Close disposes the surface first and
// only then returns the handle to the cache.
func (c *Cache) AcquireSurface() (*SurfaceScope, error) {
	if c.binder == nil {
		return nil, ErrNoBinder
	}
	g, err := c.Acquire()
	if err != nil {
		return nil, err
	}
	s, err := c.binder.Bind(g.Handle())
	if err != nil {
		g.Release()
		return nil, err
	}
	return &SurfaceScope{surface: s, guard: g}, nil
}

// createResult carries a worker-created handle back to the waiter.
type createResult struct {
	h   Handle
	err error
}

// create allocates one new handle, honoring the cache's creation mode.
func (c *Cache) create() (Handle, error) {
	if c.worker == nil {
		return c.alloc.CreateCompatible()
	}

	// The result channel is buffered so the worker never blocks on a
	// waiter that has timed out and walked away.
	res := make(chan createResult, 1)
	err := c.worker.Do(func() {
		h, err := c.alloc.CreateCompatible()
		res <- createResult{h: h, err: err}
	}, c.waitTimeout)
	if err != nil {
		if errors.Is(err, ErrAcquireTimeout) {
			// The request still runs to completion on the worker thread.
			// Reclaim its handle once it lands so nothing leaks.
			go func() {
				if r := <-res; r.h != nilHandle {
					c.release(r.h)
				}
			}()
		}
		return nilHandle, err
	}
	r := <-res
	return r.h, r.err
}

// release returns a checked-out handle to the cache. Called only by Guard.
//
// The scan is a ring-style cascading exchange: each slot's current value
// is swapped with the handle in hand, and the previous value becomes the
// new handle in hand. Reading an empty previous value means the release
// found a home. If the scan ends still holding a non-empty handle, every
// slot was occupied and exactly one handle is freed, not necessarily the
// one just released. Release never blocks.
func (c *Cache) release(h Handle) {
	if h == nilHandle {
		return
	}

	if !c.closed.Load() {
		for i := range c.slots {
			prev := Handle(c.slots[i].Swap(uintptr(h)))
			if prev == nilHandle {
				// Close may have drained the slots between the closed
				// check and this park; pull the handle back out so it is
				// not stranded in a cache nothing will tear down again.
				if c.closed.Load() {
					if late := Handle(c.slots[i].Swap(uintptr(nilHandle))); late != nilHandle {
						c.discards.Add(1)
						c.freeAsync(late)
					}
				}
				return
			}
			h = prev
		}
	}

	// Cache full (or already closed): discard the leftover handle.
	c.discards.Add(1)
	c.freeAsync(h)
}

// free destroys one handle via the allocator on the calling goroutine,
// logging rather than propagating failures: release has no error path.
func (c *Cache) free(h Handle) error {
	if err := c.alloc.Free(h); err != nil {
		Logger().Warn("handle free failed", "handle", uintptr(h), "err", err)
		return err
	}
	return nil
}

// freeAsync destroys a handle without blocking the caller. In ModeWorker
// destruction is queued to the worker thread, mirroring creation: on
// thread-affine platforms a handle must die on the thread that created
// it. Falls back to a direct free once the worker is closed.
func (c *Cache) freeAsync(h Handle) {
	if c.worker != nil && c.worker.submit(func() { _ = c.free(h) }) == nil {
		return
	}
	_ = c.free(h)
}

// freeSync destroys a handle on the worker thread and waits for it, so
// teardown can report allocator failures. Used by Close.
func (c *Cache) freeSync(h Handle) error {
	if c.worker != nil {
		var ferr error
		if c.worker.Do(func() { ferr = c.free(h) }, 0) == nil {
			return ferr
		}
	}
	return c.free(h)
}

// Close tears the cache down: every idle slot handle is freed exactly
// once and, if the cache owns its worker, the worker is closed.
//
// Close is idempotent. Acquire after Close returns ErrClosed; a Guard
// released after Close frees its handle directly instead of re-populating
// a drained slot. Guards must not outlive the cache itself.
func (c *Cache) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	var errs []error
	for i := range c.slots {
		if h := Handle(c.slots[i].Swap(uintptr(nilHandle))); h != nilHandle {
			if err := c.freeSync(h); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if c.ownWorker {
		c.worker.Close()
	}
	return errors.Join(errs...)
}

// Capacity returns the number of slots.
func (c *Cache) Capacity() int {
	return len(c.slots)
}

// Len returns the number of currently occupied slots. The value is a
// snapshot and may be stale by the time it is observed.
func (c *Cache) Len() int {
	n := 0
	for i := range c.slots {
		if Handle(c.slots[i].Load()) != nilHandle {
			n++
		}
	}
	return n
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Discards: c.discards.Load(),
	}
}
