package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the required BytesPerRow alignment of texture to
// buffer copies.
const copyPitchAlignment = 256

// OffscreenTarget is a single-sample BGRA8Unorm texture the triangle can be
// drawn into and copied out of.
type OffscreenTarget struct {
	device hal.Device
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// NewOffscreenTarget creates a width x height render target.
func NewOffscreenTarget(device hal.Device, width, height uint32) (*OffscreenTarget, error) {
	t := &OffscreenTarget{device: device}
	if err := t.ensure(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// ensure creates or recreates the texture if the requested dimensions
// differ from the current size.
func (t *OffscreenTarget) ensure(w, h uint32) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: offscreen %dx%d", ErrInvalidSurface, w, h)
	}
	if t.width == w && t.height == h && t.tex != nil {
		return nil
	}
	t.Destroy()

	tex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "triangle_offscreen",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	t.tex = tex

	view, err := t.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "triangle_offscreen_view",
	})
	if err != nil {
		t.Destroy()
		return fmt.Errorf("create offscreen view: %w", err)
	}
	t.view = view
	t.width = w
	t.height = h
	return nil
}

// Resize changes the target size. It is a no-op if the size is unchanged.
func (t *OffscreenTarget) Resize(width, height uint32) error {
	return t.ensure(width, height)
}

// Binding returns the target as a surface binding.
func (t *OffscreenTarget) Binding() SurfaceBinding {
	return SurfaceBinding{View: t.view, Format: t.Format(), Width: t.width, Height: t.height}
}

// Format returns the texture format.
func (t *OffscreenTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Size returns the texture dimensions.
func (t *OffscreenTarget) Size() (uint32, uint32) {
	return t.width, t.height
}

// Destroy releases the texture and its view.
func (t *OffscreenTarget) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width, t.height = 0, 0
}

// alignedBytesPerRow returns the padded row pitch of a staging copy.
func alignedBytesPerRow(width uint32) uint32 {
	return (width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// stagingSize returns the staging buffer size for the target.
func (t *OffscreenTarget) stagingSize() uint64 {
	return uint64(alignedBytesPerRow(t.width)) * uint64(t.height)
}

// encodeCopy records the transition and copy of the target into staging.
// The texture is transitioned back to a render attachment afterwards.
func (t *OffscreenTarget) encodeCopy(encoder hal.CommandEncoder, staging hal.Buffer) {
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(t.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow(t.width), RowsPerImage: t.height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
}

// unpackRows strips row padding from a staging readback and swizzles BGRA
// to RGBA. The result has width*height*4 bytes.
func unpackRows(readback []byte, width, height uint32) []byte {
	tight := int(width) * 4
	pitch := int(alignedBytesPerRow(width))
	out := make([]byte, tight*int(height))
	for row := 0; row < int(height); row++ {
		src := readback[row*pitch : row*pitch+tight]
		dst := out[row*tight : (row+1)*tight]
		for i := 0; i < tight; i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}
	return out
}
