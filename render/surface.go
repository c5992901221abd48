// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// PixmapSurface is a CPU-backed drawing surface over an *image.RGBA,
// bound to one drawing-context handle for the handle's lifetime.
//
// The surface supports direct pixel access and basic compositing. It is
// not safe for concurrent use; the scope guard discipline already ensures
// one goroutine at a time holds the bound handle.
type PixmapSurface struct {
	img    *image.RGBA
	format gputypes.TextureFormat
}

// newPixmapSurface wraps the backing image of one handle. The image is
// owned by the allocator and outlives the surface; Close only detaches.
func newPixmapSurface(img *image.RGBA, format gputypes.TextureFormat) *PixmapSurface {
	return &PixmapSurface{
		img:    img,
		format: format,
	}
}

// Width returns the surface width in pixels.
func (s *PixmapSurface) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the surface height in pixels.
func (s *PixmapSurface) Height() int {
	return s.img.Bounds().Dy()
}

// Format returns the pixel format of the surface.
func (s *PixmapSurface) Format() gputypes.TextureFormat {
	return s.format
}

// Pixels returns direct access to the pixel data.
// For RGBA format, each pixel is 4 bytes: R, G, B, A.
func (s *PixmapSurface) Pixels() []byte {
	return s.img.Pix
}

// Stride returns the number of bytes per row.
func (s *PixmapSurface) Stride() int {
	return s.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the surface.
func (s *PixmapSurface) Image() *image.RGBA {
	return s.img
}

// Clear fills the entire surface with the given color.
func (s *PixmapSurface) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	// Convert from 16-bit to 8-bit (mask ensures value fits in uint8)
	//nolint:gosec // G115: mask ensures no overflow
	rgba := color.RGBA{
		R: uint8((r >> 8) & 0xFF),
		G: uint8((g >> 8) & 0xFF),
		B: uint8((b >> 8) & 0xFF),
		A: uint8((a >> 8) & 0xFF),
	}

	bounds := s.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s.img.SetRGBA(x, y, rgba)
		}
	}
}

// SetPixel sets a single pixel at the given coordinates.
func (s *PixmapSurface) SetPixel(x, y int, c color.Color) {
	s.img.Set(x, y, c)
}

// GetPixel returns the color at the given coordinates.
func (s *PixmapSurface) GetPixel(x, y int) color.Color {
	return s.img.At(x, y)
}

// DrawImage draws img scaled into the destination rectangle using
// bilinear filtering with source-over compositing.
func (s *PixmapSurface) DrawImage(img image.Image, dst image.Rectangle) {
	xdraw.ApproxBiLinear.Scale(s.img, dst, img, img.Bounds(), xdraw.Over, nil)
}

// Flush ensures all pending drawing operations are complete.
// Pixmap surfaces draw synchronously, so this is a no-op.
func (s *PixmapSurface) Flush() error {
	return nil
}

// Close detaches the surface from its backing image. The backing image
// belongs to the handle and stays valid until the allocator frees it.
// After Close, the surface must not be used.
// Close is idempotent; multiple calls are safe.
func (s *PixmapSurface) Close() error {
	s.img = nil
	return nil
}
