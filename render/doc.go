// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the platform backend for dcpool.
//
// This package defines the integration layer between the handle cache and
// the host's graphics stack. ContextAllocator implements dcpool.Allocator
// and dcpool.SurfaceBinder on top of CPU-backed pixmap surfaces whose
// pixel format is chosen to be compatible with the host's device.
//
// # Key Principle
//
// The allocator RECEIVES a device from the host application, it does NOT
// create its own. A host with a real GPU device passes its provider; a
// pure-CPU host passes NullDeviceHandle.
//
// # Core Types
//
//   - DeviceHandle: Provides device access from the host application
//   - ContextAllocator: Creates, frees, and binds drawing-context handles
//   - PixmapSurface: CPU-backed *image.RGBA drawing surface
package render
