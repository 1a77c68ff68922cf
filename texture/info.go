package texture

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Info is a full texture description: the Spec plus sample count and
// mipmap state.
type Info struct {
	Spec

	// SampleCount is the number of samples per pixel. Zero is treated as 1.
	SampleCount uint32

	// Mipmapped reports whether a full mip chain is allocated.
	Mipmapped bool
}

// Samples returns the sample count, treating zero as single-sampled.
func (i Info) Samples() uint32 {
	if i.SampleCount == 0 {
		return 1
	}
	return i.SampleCount
}

// IsCompatible reports whether a texture built to i can serve requested.
// Sample count and mipmap state must match exactly; the rest is decided by
// Spec.IsCompatible.
func (i Info) IsCompatible(requested Info) bool {
	return i.Samples() == requested.Samples() &&
		i.Mipmapped == requested.Mipmapped &&
		i.Spec.IsCompatible(requested.Spec)
}

// MipLevelCount returns the number of mip levels for a w×h texture.
func (i Info) MipLevelCount(w, h uint32) uint32 {
	if !i.Mipmapped {
		return 1
	}
	levels := uint32(1)
	for m := max(w, h); m > 1; m >>= 1 {
		levels++
	}
	return levels
}

// HALDescriptor renders the description as a hal texture descriptor of the
// given dimensions.
func (i Info) HALDescriptor(label string, w, h uint32) *hal.TextureDescriptor {
	desc := &hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: i.MipLevelCount(w, h),
		SampleCount:   i.Samples(),
		Dimension:     gputypes.TextureDimension2D,
		Format:        i.Format,
		Usage:         i.Usage,
	}
	if vf := i.GetViewFormat(); vf != i.Format {
		desc.ViewFormats = []gputypes.TextureFormat{vf}
	}
	return desc
}
