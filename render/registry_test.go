// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/triangle"
)

func TestBackends(t *testing.T) {
	names := Backends()
	for _, want := range []string{BackendGPU, BackendSoftware} {
		if !slices.Contains(names, want) {
			t.Errorf("Backends() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Backends() = %v, want sorted", names)
	}
}

func TestNewRendererUnknown(t *testing.T) {
	_, err := NewRenderer("metal2000", nil)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend", err)
	}
}

func TestNewRendererSoftware(t *testing.T) {
	scene := triangle.NewScene(triangle.VariantColor)
	r, err := NewRenderer(BackendSoftware, scene)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Close()

	if r.Scene() != scene {
		t.Error("renderer does not use the given scene")
	}
	if c, ok := r.(CapableRenderer); !ok || c.Capabilities().IsGPU {
		t.Error("software renderer should report IsGPU = false")
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := newRegistry()
	called := false
	reg.register("custom", func(scene *triangle.Scene, opts ...Option) (Renderer, error) {
		called = true
		return NewSoftwareRenderer(scene, opts...), nil
	})

	r, err := reg.create("custom", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	defer r.Close()
	if !called {
		t.Error("custom factory not called")
	}
	if !slices.Contains(reg.names(), "custom") {
		t.Errorf("names() = %v, missing custom", reg.names())
	}
}
