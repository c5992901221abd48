package dcpool

import (
	"errors"
	"testing"
)

func TestDefaultCacheLifecycle(t *testing.T) {
	t.Cleanup(func() { _ = Shutdown() })

	if Default() != nil {
		t.Fatal("Default() should be nil before Init")
	}
	if _, err := AcquireHandle(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("AcquireHandle() before Init = %v, want ErrNotInitialized", err)
	}
	if _, err := AcquireSurface(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("AcquireSurface() before Init = %v, want ErrNotInitialized", err)
	}

	alloc := newTestAllocator()
	if err := Init(alloc, WithCapacity(2)); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	if Default() == nil {
		t.Fatal("Default() is nil after Init")
	}

	g, err := AcquireHandle()
	if err != nil {
		t.Fatalf("AcquireHandle() = %v", err)
	}
	g.Release()

	if err := Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	if Default() != nil {
		t.Error("Default() should be nil after Shutdown")
	}
	if alloc.Live() != 0 {
		t.Errorf("live = %d, want 0 after Shutdown", alloc.Live())
	}
}

func TestInitTwice(t *testing.T) {
	t.Cleanup(func() { _ = Shutdown() })

	if err := Init(newTestAllocator()); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	if err := Init(newTestAllocator()); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second Init() = %v, want ErrAlreadyInitialized", err)
	}

	// After Shutdown, Init works again.
	if err := Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	if err := Init(newTestAllocator()); err != nil {
		t.Fatalf("Init() after Shutdown = %v", err)
	}
}

func TestShutdownWithoutInit(t *testing.T) {
	if err := Shutdown(); err != nil {
		t.Errorf("Shutdown() without Init = %v, want nil", err)
	}
}
