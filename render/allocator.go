// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"image"
	"sync"

	"github.com/gogpu/dcpool"
	"github.com/gogpu/gputypes"
)

// ErrUnknownHandle is returned by Free and Bind for a handle this
// allocator did not issue, or one it has already freed.
var ErrUnknownHandle = errors.New("render: unknown context handle")

// contextState is the per-handle backing store: the pixel memory a handle
// "owns" for its whole lifetime. Bound surfaces draw into it and detach;
// the state itself lives until Free.
type contextState struct {
	img *image.RGBA
}

// ContextAllocator issues drawing-context handles backed by CPU pixmaps
// whose format is compatible with the host device's surface format.
//
// It implements both dcpool.Allocator and dcpool.SurfaceBinder, so a
// cache built on it can hand out bound surfaces directly:
//
//	alloc := render.NewContextAllocator(render.NullDeviceHandle{}, 800, 600)
//	cache, err := dcpool.NewCache(alloc)
//	// ...
//	scope, err := cache.AcquireSurface()
//	defer scope.Close()
//
// Handle values are opaque monotonically assigned identifiers; zero is
// never issued.
//
// Thread safety: ContextAllocator is safe for concurrent use. The handle
// registry is mutex-guarded; the cache's guard discipline ensures at most
// one goroutine draws through a given handle at a time.
type ContextAllocator struct {
	provider DeviceHandle
	width    int
	height   int
	format   gputypes.TextureFormat

	mu       sync.Mutex
	next     uintptr
	contexts map[dcpool.Handle]*contextState
}

// NewContextAllocator creates an allocator for width x height drawing
// contexts compatible with the provider's surface format. Pass
// NullDeviceHandle for CPU-only operation; the format then defaults to
// RGBA8.
func NewContextAllocator(provider DeviceHandle, width, height int) *ContextAllocator {
	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return &ContextAllocator{
		provider: provider,
		width:    width,
		height:   height,
		format:   format,
		contexts: make(map[dcpool.Handle]*contextState),
	}
}

// CreateCompatible allocates one drawing context and returns its handle.
func (a *ContextAllocator) CreateCompatible() (dcpool.Handle, error) {
	st := &contextState{
		img: image.NewRGBA(image.Rect(0, 0, a.width, a.height)),
	}

	a.mu.Lock()
	a.next++
	h := dcpool.Handle(a.next)
	a.contexts[h] = st
	a.mu.Unlock()

	dcpool.Logger().Debug("context allocated",
		"handle", uintptr(h), "width", a.width, "height", a.height)
	return h, nil
}

// Free releases a handle's backing store. Each handle must be freed
// exactly once; freeing an unknown or already-freed handle returns
// ErrUnknownHandle.
func (a *ContextAllocator) Free(h dcpool.Handle) error {
	a.mu.Lock()
	_, ok := a.contexts[h]
	if ok {
		delete(a.contexts, h)
	}
	a.mu.Unlock()

	if !ok {
		return ErrUnknownHandle
	}
	return nil
}

// Bind constructs a drawing surface over the handle's backing store.
// Each call returns a fresh surface; closing it detaches from the
// backing store without invalidating the handle.
func (a *ContextAllocator) Bind(h dcpool.Handle) (dcpool.Surface, error) {
	a.mu.Lock()
	st, ok := a.contexts[h]
	a.mu.Unlock()

	if !ok {
		return nil, ErrUnknownHandle
	}
	return newPixmapSurface(st.img, a.format), nil
}

// Format returns the surface format handles are created with.
func (a *ContextAllocator) Format() gputypes.TextureFormat {
	return a.format
}

// Live returns the number of handles created and not yet freed.
func (a *ContextAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.contexts)
}

// Ensure ContextAllocator satisfies both cache-facing interfaces.
var (
	_ dcpool.Allocator     = (*ContextAllocator)(nil)
	_ dcpool.SurfaceBinder = (*ContextAllocator)(nil)
)
