package dcpool

// Guard represents temporary ownership of one checked-out handle.
//
// Guards are produced only by Cache.Acquire; while a guard is live its
// handle is absent from every cache slot. The guard must return the
// handle exactly once: never zero times (leak) and never twice
// (double release). Release is a no-op after the first call, so the
// canonical pattern is safe on every early-return path:
//
//	g, err := cache.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer g.Release()
//	draw(g.Handle())
//
// A Guard is valid only for the duration of the enclosing scope: do not
// store it in long-lived structures, and do not let it outlive the cache
// that issued it. Guards are not safe for concurrent use; each guard
// belongs to the goroutine that acquired it.
type Guard struct {
	cache  *Cache
	handle Handle
}

// Handle returns the checked-out handle. After Release it returns the
// zero Handle.
func (g *Guard) Handle() Handle {
	return g.handle
}

// Release returns the handle to the owning cache. Only the first call
// has any effect.
func (g *Guard) Release() {
	if g.handle == nilHandle {
		return
	}
	h := g.handle
	g.handle = nilHandle
	g.cache.release(h)
}

// SurfaceScope composes a Guard with a drawing surface bound to its
// handle. Produced only by Cache.AcquireSurface.
//
// Close disposes the surface first and the handle guard second: the
// handle must stay valid until the surface built on it is gone.
type SurfaceScope struct {
	surface Surface
	guard   *Guard
}

// Surface returns the bound drawing surface.
func (s *SurfaceScope) Surface() Surface {
	return s.surface
}

// Handle returns the underlying checked-out handle.
func (s *SurfaceScope) Handle() Handle {
	return s.guard.Handle()
}

// Close releases the surface, then returns the handle to the cache.
// Only the first call has any effect; the returned error comes from the
// surface's own Close.
func (s *SurfaceScope) Close() error {
	if s.surface == nil {
		return nil
	}
	err := s.surface.Close()
	s.surface = nil
	s.guard.Release()
	return err
}
