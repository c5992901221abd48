// Package dcpool provides a small, thread-safe, fixed-capacity cache of
// opaque, expensive-to-create drawing-context handles.
//
// # Overview
//
// Allocating a platform drawing context on every render operation is
// wasteful; dcpool keeps a bounded set of idle handles and hands them out
// through scope guards that return them automatically. All cache
// operations are lock-free: each slot transition is a single atomic
// exchange, so acquire and release never block one another.
//
// # Quick Start
//
//	alloc := render.NewContextAllocator(render.NullDeviceHandle{}, 800, 600)
//	cache, err := dcpool.NewCache(alloc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
//	g, err := cache.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Release()
//	draw(g.Handle())
//
// # Creation Modes
//
// ModeDirect creates handles on the calling goroutine. ModeWorker funnels
// all creation through one goroutine locked to its OS thread, for
// platforms that require a resource to be created on the thread that will
// own it for its entire lifetime; callers block on a hand-off with an
// optional diagnostic timeout (see WithWaitTimeout).
//
// # Ordering
//
// The cache guarantees reuse, not order: a released handle becomes
// available to some future acquirer, with no LRU/FIFO promise and no
// fairness guarantee under contention. This keeps every operation a plain
// slot scan with one atomic exchange per slot.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Cache, Guard, SurfaceScope, Worker, Allocator
//   - Backend: render (pixmap-backed context allocator over gpucontext)
package dcpool
