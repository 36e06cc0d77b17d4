// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/triangle/internal/gpu"
)

// Errors returned by renderers. Device errors are the ones of the GPU layer
// and can be matched with errors.Is.
var (
	ErrNoGPU          = gpu.ErrNoGPU
	ErrProviderNotHAL = gpu.ErrProviderNotHAL
	ErrInvalidSurface = gpu.ErrInvalidSurface
	ErrNotInitialized = gpu.ErrNotInitialized

	// ErrClosed is returned when a closed renderer is used.
	ErrClosed = errors.New("render: renderer is closed")

	// ErrUnknownBackend is returned by NewRenderer for an unregistered name.
	ErrUnknownBackend = errors.New("render: unknown backend")
)
