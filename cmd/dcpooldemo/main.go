// Command dcpooldemo exercises the dcpool handle cache from concurrent
// goroutines and writes the last drawn surface to a PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/gogpu/dcpool"
	"github.com/gogpu/dcpool/render"
)

func main() {
	var (
		width    = flag.Int("width", 512, "context width")
		height   = flag.Int("height", 512, "context height")
		workers  = flag.Int("workers", 8, "concurrent drawing goroutines")
		rounds   = flag.Int("rounds", 50, "acquire/draw/release rounds per goroutine")
		capacity = flag.Int("capacity", dcpool.DefaultCapacity, "cache capacity")
		output   = flag.String("output", "demo.png", "output file")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		dcpool.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	alloc := render.NewContextAllocator(render.NullDeviceHandle{}, *width, *height)
	cache, err := dcpool.NewCache(alloc,
		dcpool.WithCapacity(*capacity),
		dcpool.WithMode(dcpool.ModeWorker),
		dcpool.WithWaitTimeout(5*time.Second))
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}
	defer cache.Close()

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for r := 0; r < *rounds; r++ {
				if err := drawRound(cache, rng, *width, *height); err != nil {
					log.Printf("draw round failed: %v", err)
					return
				}
			}
		}(int64(w))
	}
	wg.Wait()

	if err := saveSnapshot(cache, *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	stats := cache.Stats()
	log.Printf("Demo saved to %s (%dx%d)", *output, *width, *height)
	log.Printf("Cache stats: hits=%d misses=%d discards=%d idle=%d live=%d",
		stats.Hits, stats.Misses, stats.Discards, cache.Len(), alloc.Live())
}

// drawRound acquires a surface, scribbles on it, and releases it.
func drawRound(cache *dcpool.Cache, rng *rand.Rand, w, h int) error {
	scope, err := cache.AcquireSurface()
	if err != nil {
		return err
	}
	defer scope.Close()

	s := scope.Surface().(*render.PixmapSurface)
	s.Clear(color.RGBA{R: 24, G: 24, B: 32, A: 255})
	for i := 0; i < 200; i++ {
		s.SetPixel(rng.Intn(w), rng.Intn(h), color.RGBA{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
			A: 255,
		})
	}
	return s.Flush()
}

// saveSnapshot acquires one more surface and writes its contents out.
func saveSnapshot(cache *dcpool.Cache, path string) error {
	scope, err := cache.AcquireSurface()
	if err != nil {
		return err
	}
	defer scope.Close()

	s := scope.Surface().(*render.PixmapSurface)
	var img image.Image = s.Image()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
