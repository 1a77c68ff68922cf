package caps

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpures/texture"
)

// DepthStencilFlags select the aspects a depth/stencil attachment needs.
type DepthStencilFlags uint8

// Depth/stencil aspects.
const (
	DepthStencilDepth DepthStencilFlags = 1 << iota
	DepthStencilStencil

	DepthStencilBoth = DepthStencilDepth | DepthStencilStencil
)

// The returned infos below are invalid (zero Format) when the device cannot
// serve the request; callers check Info.IsValid.

// DefaultSampledTextureInfo returns the description of a new sampled
// texture holding pixels of ct. When renderable is set the texture can also
// be rendered to.
func (c *Caps) DefaultSampledTextureInfo(ct ColorType, mipmapped, renderable bool) texture.Info {
	f := c.DefaultFormatForColorType(ct)
	if f == gputypes.TextureFormatUndefined {
		return texture.Info{}
	}
	fi := c.formatInfo(f)
	if !fi.Flags.Has(FormatTexturable) {
		return texture.Info{}
	}

	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst | gputypes.TextureUsageCopySrc
	if renderable {
		if !fi.Flags.Has(FormatRenderable) {
			return texture.Info{}
		}
		usage |= gputypes.TextureUsageRenderAttachment
	}

	return texture.Info{
		Spec: texture.Spec{
			Format: f,
			Usage:  usage,
			Aspect: texture.AspectAll,
		},
		SampleCount: 1,
		Mipmapped:   mipmapped,
	}
}

// DefaultMSAATextureInfo returns the description of the multisampled color
// attachment that resolves into singleSampled.
func (c *Caps) DefaultMSAATextureInfo(singleSampled texture.Info) texture.Info {
	if !singleSampled.IsValid() {
		return texture.Info{}
	}
	if c.MaxRenderTargetSampleCount(singleSampled.Format) < 2 {
		return texture.Info{}
	}
	return texture.Info{
		Spec: texture.Spec{
			Format:     singleSampled.Format,
			ViewFormat: singleSampled.ViewFormat,
			Usage:      gputypes.TextureUsageRenderAttachment,
			Aspect:     texture.AspectAll,
		},
		SampleCount: c.maxSampleCount,
	}
}

// DefaultDepthStencilTextureInfo returns the description of a depth/stencil
// attachment with the requested aspects at sampleCount.
func (c *Caps) DefaultDepthStencilTextureInfo(flags DepthStencilFlags, sampleCount uint32) texture.Info {
	var f gputypes.TextureFormat
	switch flags {
	case DepthStencilDepth:
		f = gputypes.TextureFormatDepth16Unorm
	case DepthStencilStencil:
		f = gputypes.TextureFormatStencil8
	case DepthStencilBoth:
		f = gputypes.TextureFormatDepth24PlusStencil8
	default:
		return texture.Info{}
	}

	info := texture.Info{
		Spec: texture.Spec{
			Format: f,
			Usage:  gputypes.TextureUsageRenderAttachment,
			Aspect: texture.AspectAll,
		},
		SampleCount: sampleCount,
	}
	if !c.IsRenderable(info) {
		return texture.Info{}
	}
	return info
}

// DefaultStorageTextureInfo returns the description of a storage texture
// holding pixels of ct.
func (c *Caps) DefaultStorageTextureInfo(ct ColorType) texture.Info {
	f := c.DefaultFormatForColorType(ct)
	if f == gputypes.TextureFormatUndefined || !c.formatInfo(f).Flags.Has(FormatStorage) {
		return texture.Info{}
	}
	return texture.Info{
		Spec: texture.Spec{
			Format: f,
			Usage: gputypes.TextureUsageStorageBinding |
				gputypes.TextureUsageTextureBinding |
				gputypes.TextureUsageCopySrc,
			Aspect: texture.AspectAll,
		},
		SampleCount: 1,
	}
}
