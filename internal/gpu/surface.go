package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DefaultSurfaceFormat is used when a host does not report its preferred
// surface format.
const DefaultSurfaceFormat = gputypes.TextureFormatBGRA8Unorm

// SurfaceBinding is the presentable target of one frame.
type SurfaceBinding struct {
	View   hal.TextureView
	Format gputypes.TextureFormat
	Width  uint32
	Height uint32
}

// SurfaceBinder tracks the surface the next frame draws into.
//
// Hosts rebind every frame because swapchain views rotate. The binder
// remembers the previous format so the caller can rebuild the pipeline when
// it changes.
type SurfaceBinder struct {
	current       SurfaceBinding
	bound         bool
	formatChanged bool
}

// Bind sets the target of the next frame. An undefined format falls back to
// DefaultSurfaceFormat. It returns an error wrapping ErrInvalidSurface if
// view is nil or the extent is empty; the previous binding is kept.
func (b *SurfaceBinder) Bind(view hal.TextureView, format gputypes.TextureFormat, width, height uint32) error {
	if view == nil {
		return fmt.Errorf("%w: nil texture view", ErrInvalidSurface)
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSurface, width, height)
	}
	if format == gputypes.TextureFormatUndefined {
		format = DefaultSurfaceFormat
	}

	b.formatChanged = b.bound && b.current.Format != format
	if b.formatChanged {
		slogger().Debug("gpu: surface format changed", "from", b.current.Format, "to", format)
	}
	b.current = SurfaceBinding{View: view, Format: format, Width: width, Height: height}
	b.bound = true
	return nil
}

// Binding returns the current binding and whether one exists.
func (b *SurfaceBinder) Binding() (SurfaceBinding, bool) {
	return b.current, b.bound
}

// FormatChanged reports whether the last Bind changed the surface format.
func (b *SurfaceBinder) FormatChanged() bool {
	return b.formatChanged
}

// Unbind forgets the current surface.
func (b *SurfaceBinder) Unbind() {
	b.current = SurfaceBinding{}
	b.bound = false
	b.formatChanged = false
}
