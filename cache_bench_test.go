package dcpool

import "testing"

func BenchmarkAcquireReleaseHit(b *testing.B) {
	c, err := NewCache(newTestAllocator(), WithCapacity(4))
	if err != nil {
		b.Fatalf("NewCache() = %v", err)
	}
	defer c.Close()

	// Warm one slot so the loop measures the hit path.
	g, _ := c.Acquire()
	g.Release()

	b.ReportAllocs()
	for b.Loop() {
		g, err := c.Acquire()
		if err != nil {
			b.Fatal(err)
		}
		g.Release()
	}
}

func BenchmarkAcquireReleaseParallel(b *testing.B) {
	c, err := NewCache(newTestAllocator(), WithCapacity(16))
	if err != nil {
		b.Fatalf("NewCache() = %v", err)
	}
	defer c.Close()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			g, err := c.Acquire()
			if err != nil {
				b.Error(err)
				return
			}
			g.Release()
		}
	})
}

func BenchmarkWorkerDo(b *testing.B) {
	w := NewWorker()
	defer w.Close()

	b.ReportAllocs()
	for b.Loop() {
		if err := w.Do(func() {}, 0); err != nil {
			b.Fatal(err)
		}
	}
}
