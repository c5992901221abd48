package dcpool

// Handle is an opaque platform drawing-context handle.
//
// Handles are issued by an Allocator and are only meaningful to the
// allocator that created them. The zero value is reserved as the "no
// handle" sentinel and is never a valid handle; cache slots use it as
// the empty marker.
type Handle uintptr

// nilHandle marks an empty cache slot.
const nilHandle Handle = 0

// Allocator creates and destroys drawing-context handles.
//
// Implementations wrap the platform's allocation primitives. Creation may
// be expensive; that is the whole reason the cache exists. In ModeWorker
// the cache guarantees CreateCompatible is only ever invoked on the
// worker's OS thread, for platforms that tie resource ownership to the
// creating thread.
type Allocator interface {
	// CreateCompatible allocates one new reusable drawing-context handle
	// compatible with the allocator's configured platform context.
	CreateCompatible() (Handle, error)

	// Free releases a handle back to the platform. It must be called
	// exactly once per created handle; freeing twice or freeing a handle
	// the allocator did not issue is a protocol violation.
	Free(Handle) error
}

// Surface is the drawing object constructed on top of a checked-out handle.
//
// The cache itself never draws; it only manages handle lifetime. Surface is
// intentionally minimal so that backends can expose arbitrarily rich
// drawing APIs on their concrete types.
type Surface interface {
	// Flush ensures all pending drawing operations are complete.
	Flush() error

	// Close releases resources associated with the surface. Close does
	// not free the underlying handle; that is the guard's job.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// SurfaceBinder constructs a drawing surface bound to a handle.
//
// Allocators that can also bind surfaces should implement SurfaceBinder;
// NewCache picks it up automatically unless WithSurfaceBinder overrides it.
type SurfaceBinder interface {
	Bind(Handle) (Surface, error)
}
