// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/triangle"
)

// Factory creates a renderer for scene.
// Implementations should return descriptive errors, wrapping ErrNoGPU when
// the hardware is missing.
type Factory func(scene *triangle.Scene, opts ...Option) (Renderer, error)

// Backend names registered by this package.
const (
	BackendGPU      = "gpu"
	BackendSoftware = "software"
)

// globalRegistry is the default registry.
var globalRegistry = newRegistry()

// registry maps backend names to factories.
type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func newRegistry() *registry {
	r := &registry{factories: make(map[string]Factory)}
	r.register(BackendGPU, newGPUBackend)
	r.register(BackendSoftware, newSoftwareBackend)
	return r
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	return globalRegistry.names()
}

// NewRenderer creates a renderer with the named backend. An unregistered
// name returns an error wrapping ErrUnknownBackend. There is no fallback:
// a missing GPU is reported, not replaced by the software renderer.
func NewRenderer(name string, scene *triangle.Scene, opts ...Option) (Renderer, error) {
	return globalRegistry.create(name, scene, opts...)
}

func (r *registry) register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry) create(name string, scene *triangle.Scene, opts ...Option) (Renderer, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, r.names())
	}
	return factory(scene, opts...)
}

func newGPUBackend(scene *triangle.Scene, opts ...Option) (Renderer, error) {
	r := NewGPURenderer(scene, opts...)
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func newSoftwareBackend(scene *triangle.Scene, opts ...Option) (Renderer, error) {
	return NewSoftwareRenderer(scene, opts...), nil
}
