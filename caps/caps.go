package caps

import (
	"log/slog"
	"math/bits"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpures/texture"
)

// Caps is the frozen capability table of one device.
//
// A Caps is built once and never modified afterwards, so it can be shared
// read-only between goroutines without locking.
type Caps struct {
	formatInfos       [FormatCount]FormatInfo
	colorTypeToFormat [colorTypeCount]gputypes.TextureFormat
	features          gputypes.Features
	maxSampleCount    uint32
}

// featureGate turns a capability on when the device reports a feature.
type featureGate struct {
	format  gputypes.TextureFormat
	feature gputypes.Feature
	flags   FormatFlags
}

var featureGates = []featureGate{
	{gputypes.TextureFormatBGRA8Unorm, gputypes.FeatureBGRA8UnormStorage, FormatStorage},
	{gputypes.TextureFormatRG11B10Ufloat, gputypes.FeatureRG11B10UfloatRenderable, FormatRenderable | FormatMSAA},
	{gputypes.TextureFormatR32Float, gputypes.FeatureFloat32Filterable, FormatFilterable},
	{gputypes.TextureFormatRGBA32Float, gputypes.FeatureFloat32Filterable, FormatFilterable},
	{gputypes.TextureFormatDepth32FloatStencil8, gputypes.FeatureDepth32FloatStencil8, FormatTexturable | FormatRenderable | FormatMSAA},
	{gputypes.TextureFormatR16Unorm, gputypes.FeatureTextureAdapterSpecificFormatFeatures, FormatTexturable | FormatRenderable | FormatMSAA | FormatFilterable},
	{gputypes.TextureFormatRG16Unorm, gputypes.FeatureTextureAdapterSpecificFormatFeatures, FormatTexturable | FormatRenderable | FormatMSAA | FormatFilterable},
	{gputypes.TextureFormatRGBA16Unorm, gputypes.FeatureTextureAdapterSpecificFormatFeatures, FormatTexturable | FormatRenderable | FormatMSAA | FormatFilterable},
}

// New builds the capability table for a device exposing features.
func New(features gputypes.Features, opts ...Option) *Caps {
	return build(features, nil, opts)
}

// NewFromAdapter builds the capability table from an enumerated adapter.
// The adapter's feature set gates optional capabilities, and every format's
// flags are intersected with what the adapter reports for it.
func NewFromAdapter(a hal.ExposedAdapter, opts ...Option) *Caps {
	return build(a.Features, a.Adapter, opts)
}

func build(features gputypes.Features, adapter hal.Adapter, opts []Option) *Caps {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Caps{
		features:       features,
		maxSampleCount: clampSampleCount(o.maxSampleCount),
	}
	if c.maxSampleCount != o.maxSampleCount {
		o.logger.Debug("caps: sample count ceiling clamped",
			"requested", o.maxSampleCount, "ceiling", c.maxSampleCount)
	}

	for i, f := range formats {
		c.formatInfos[i] = baseline(f)
	}

	for _, g := range featureGates {
		if !features.Contains(g.feature) {
			o.logger.Debug("caps: feature-gated capability omitted",
				"format", g.format, "feature", g.feature)
			continue
		}
		c.formatInfos[FormatIndex(g.format)].Flags |= g.flags
	}

	if adapter != nil {
		for i := range c.formatInfos {
			fi := &c.formatInfos[i]
			before := fi.Flags
			fi.Flags &= adapterFlags(adapter.TextureFormatCapabilities(fi.Format).Flags)
			if fi.Flags != before {
				o.logger.Debug("caps: adapter restricts format",
					"format", fi.Format, "flags", fi.Flags)
			}
		}
	}

	if c.maxSampleCount < 2 {
		for i := range c.formatInfos {
			c.formatInfos[i].Flags &^= FormatMSAA
		}
	}

	c.bindColorTypes()

	o.logger.Debug("caps: format table built",
		"formats", FormatCount, "features", uint64(features), "maxSamples", c.maxSampleCount)
	return c
}

// clampSampleCount rounds n down to a power of two within
// MaxSupportedSampleCount.
func clampSampleCount(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	n = min(n, MaxSupportedSampleCount)
	return 1 << (bits.Len32(n) - 1)
}

func isPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

// adapterFlags maps hal capability flags onto the format flags they allow.
// Filterability is not reported by hal and is left as is.
func adapterFlags(hf hal.TextureFormatCapabilityFlags) FormatFlags {
	allowed := FormatFilterable
	if hf&hal.TextureFormatCapabilitySampled != 0 {
		allowed |= FormatTexturable
	}
	if hf&hal.TextureFormatCapabilityRenderAttachment != 0 {
		allowed |= FormatRenderable
	}
	if hf&hal.TextureFormatCapabilityStorage != 0 {
		allowed |= FormatStorage
	}
	if hf&hal.TextureFormatCapabilityMultisample != 0 {
		allowed |= FormatMSAA
	}
	return allowed
}

// bindColorTypes picks the default format of every color type: the first
// format in table order that can render it, else the first that can upload
// it and be sampled (Gray8 lands on R8Unorm this way).
func (c *Caps) bindColorTypes() {
	for ct := ColorTypeUnknown + 1; ct < colorTypeCount; ct++ {
		c.colorTypeToFormat[ct] = gputypes.TextureFormatUndefined
		fallback := gputypes.TextureFormatUndefined
		for i := range c.formatInfos {
			fi := &c.formatInfos[i]
			cti := fi.colorTypeInfo(ct)
			if cti == nil {
				continue
			}
			if cti.Flags.Has(ColorTypeRenderable) && fi.Flags.Has(FormatRenderable) {
				c.colorTypeToFormat[ct] = fi.Format
				break
			}
			if fallback == gputypes.TextureFormatUndefined &&
				cti.Flags.Has(ColorTypeUploadable) && fi.Flags.Has(FormatTexturable) {
				fallback = fi.Format
			}
		}
		if c.colorTypeToFormat[ct] == gputypes.TextureFormatUndefined {
			c.colorTypeToFormat[ct] = fallback
		}
	}
}

// Features returns the device features the table was built against.
func (c *Caps) Features() gputypes.Features {
	return c.features
}

// MaxSampleCount returns the multisample ceiling.
func (c *Caps) MaxSampleCount() uint32 {
	return c.maxSampleCount
}

// FormatInfo returns a copy of the capability record of f. It panics if f
// is not a supported format.
func (c *Caps) FormatInfo(f gputypes.TextureFormat) FormatInfo {
	fi := *c.formatInfo(f)
	fi.ColorTypeInfos = slices.Clone(fi.ColorTypeInfos)
	return fi
}

func (c *Caps) formatInfo(f gputypes.TextureFormat) *FormatInfo {
	return &c.formatInfos[FormatIndex(f)]
}

// MaxRenderTargetSampleCount returns 0 if f is not renderable, 1 if it is
// renderable but not multisample-capable, and the multisample ceiling
// otherwise.
func (c *Caps) MaxRenderTargetSampleCount(f gputypes.TextureFormat) uint32 {
	fi := c.formatInfo(f)
	switch {
	case !fi.Flags.Has(FormatRenderable):
		return 0
	case !fi.Flags.Has(FormatMSAA):
		return 1
	default:
		return c.maxSampleCount
	}
}

// IsTexturable reports whether a texture described by info can be sampled.
func (c *Caps) IsTexturable(info texture.Info) bool {
	if !info.IsValid() || info.Samples() > 1 || !info.Usage.Contains(gputypes.TextureUsageTextureBinding) {
		return false
	}
	return c.formatInfo(info.Format).Flags.Has(FormatTexturable)
}

// IsRenderable reports whether a texture described by info can be a render
// attachment at its sample count. Sample counts must be powers of two.
func (c *Caps) IsRenderable(info texture.Info) bool {
	if !info.IsValid() || !info.Usage.Contains(gputypes.TextureUsageRenderAttachment) {
		return false
	}
	if !isPowerOfTwo(info.Samples()) {
		return false
	}
	return info.Samples() <= c.MaxRenderTargetSampleCount(info.Format)
}

// IsStorage reports whether a texture described by info can be bound as a
// storage texture.
func (c *Caps) IsStorage(info texture.Info) bool {
	if !info.IsValid() || info.Samples() > 1 || !info.Usage.Contains(gputypes.TextureUsageStorageBinding) {
		return false
	}
	return c.formatInfo(info.Format).Flags.Has(FormatStorage)
}

// DefaultFormatForColorType returns the format used for new textures of ct,
// or TextureFormatUndefined when no supported format can serve it.
// Callers must check for Undefined; no substitute format is chosen.
func (c *Caps) DefaultFormatForColorType(ct ColorType) gputypes.TextureFormat {
	if ct >= colorTypeCount {
		return gputypes.TextureFormatUndefined
	}
	return c.colorTypeToFormat[ct]
}

// AreColorTypeAndFormatCompatible reports whether f has a binding for ct.
func (c *Caps) AreColorTypeAndFormatCompatible(ct ColorType, f gputypes.TextureFormat) bool {
	if !IsSupportedFormat(f) {
		return false
	}
	return c.formatInfo(f).colorTypeInfo(ct) != nil
}

// ReadSwizzle returns the swizzle applied when sampling a texture of format
// f as color type ct.
func (c *Caps) ReadSwizzle(ct ColorType, f gputypes.TextureFormat) (texture.Swizzle, bool) {
	if !IsSupportedFormat(f) {
		return texture.SwizzleRGBA, false
	}
	cti := c.formatInfo(f).colorTypeInfo(ct)
	if cti == nil {
		return texture.SwizzleRGBA, false
	}
	return cti.ReadSwizzle, true
}

// WriteSwizzle returns the swizzle applied when rendering color type ct into
// a texture of format f.
func (c *Caps) WriteSwizzle(ct ColorType, f gputypes.TextureFormat) (texture.Swizzle, bool) {
	if !IsSupportedFormat(f) {
		return texture.SwizzleRGBA, false
	}
	cti := c.formatInfo(f).colorTypeInfo(ct)
	if cti == nil {
		return texture.SwizzleRGBA, false
	}
	return cti.WriteSwizzle, true
}

// LogValue implements slog.LogValuer.
func (c *Caps) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("formats", FormatCount),
		slog.Uint64("features", uint64(c.features)),
		slog.Uint64("maxSamples", uint64(c.maxSampleCount)),
	)
}
