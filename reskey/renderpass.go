package reskey

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpures/caps"
	"github.com/gogpu/gpures/texture"
)

// Render-pass sub-key layout, low bit first:
//
//	bits  0..10  color format index
//	bits 11..14  color sample count
//	bits 15..25  depth/stencil format index, NoAttachmentIndex if absent
//	bits 26..29  depth/stencil sample count, 0 if absent
//	bit  30      resolve attachment is loaded rather than cleared
var (
	rpColorFormat  = field{name: "color format index", shift: 0, width: 11}
	rpColorSamples = field{name: "color sample count", shift: 11, width: 4}
	rpDSFormat     = field{name: "depth/stencil format index", shift: 15, width: 11}
	rpDSSamples    = field{name: "depth/stencil sample count", shift: 26, width: 4}
	rpLoadResolve  = field{name: "resolve load flag", shift: 30, width: 1}
)

const (
	renderPassKeyBits = 11 + 4 + 11 + 4 + 1

	// NoAttachmentIndex is the format index meaning "no attachment".
	NoAttachmentIndex = 1<<11 - 1
)

// The packed sub-key must fit one word, and every real format index must
// stay below the sentinel.
const (
	_ = uint32(32 - renderPassKeyBits)
	_ = uint32(NoAttachmentIndex - caps.FormatCount - 1)
)

// RenderPassFields are the render-pass properties folded into pipeline
// keys.
type RenderPassFields struct {
	ColorFormatIndex        uint16
	ColorSamples            uint8
	DepthStencilFormatIndex uint16
	DepthStencilSamples     uint8
	LoadResolve             bool
}

// HasDepthStencil reports whether a depth/stencil attachment is present.
func (f RenderPassFields) HasDepthStencil() bool {
	return f.DepthStencilFormatIndex != NoAttachmentIndex
}

// Pack encodes the fields into one word. Any field outside its bit budget,
// a missing color attachment, or a depth/stencil sample count that does not
// match the color sample count panics.
func (f RenderPassFields) Pack() uint32 {
	if f.ColorFormatIndex == NoAttachmentIndex {
		panic("reskey: render pass without a color attachment")
	}
	if f.HasDepthStencil() {
		if f.DepthStencilSamples != f.ColorSamples {
			panic(fmt.Sprintf("reskey: depth/stencil sample count %d != color sample count %d",
				f.DepthStencilSamples, f.ColorSamples))
		}
	} else if f.DepthStencilSamples != 0 {
		panic("reskey: sample count set for a missing depth/stencil attachment")
	}

	return rpColorFormat.put(uint32(f.ColorFormatIndex)) |
		rpColorSamples.put(uint32(f.ColorSamples)) |
		rpDSFormat.put(uint32(f.DepthStencilFormatIndex)) |
		rpDSSamples.put(uint32(f.DepthStencilSamples)) |
		rpLoadResolve.putBool(f.LoadResolve)
}

// UnpackRenderPassFields is the inverse of Pack.
func UnpackRenderPassFields(word uint32) RenderPassFields {
	return RenderPassFields{
		ColorFormatIndex:        uint16(rpColorFormat.get(word)),
		ColorSamples:            uint8(rpColorSamples.get(word)),
		DepthStencilFormatIndex: uint16(rpDSFormat.get(word)),
		DepthStencilSamples:     uint8(rpDSSamples.get(word)),
		LoadResolve:             rpLoadResolve.get(word) != 0,
	}
}

// AttachmentDesc describes one render-pass attachment.
type AttachmentDesc struct {
	Info    texture.Info
	LoadOp  gputypes.LoadOp
	StoreOp gputypes.StoreOp
}

// IsValid reports whether the attachment is present.
func (a AttachmentDesc) IsValid() bool {
	return a.Info.IsValid()
}

// RenderPassDesc describes the attachments of a render pass.
type RenderPassDesc struct {
	ColorAttachment        AttachmentDesc
	ColorResolveAttachment AttachmentDesc
	DepthStencilAttachment AttachmentDesc

	ClearColor   gputypes.Color
	ClearDepth   float32
	ClearStencil uint32

	// WriteSwizzle is applied to shader output before it is stored. The
	// zero value is RGBA.
	WriteSwizzle texture.Swizzle
}

// SampleCount returns the color attachment's sample count.
func (rp RenderPassDesc) SampleCount() uint32 {
	return rp.ColorAttachment.Info.Samples()
}

// RequiresMSAA reports whether the pass renders multisampled.
func (rp RenderPassDesc) RequiresMSAA() bool {
	return rp.SampleCount() > 1
}

// Defaults of decoded render passes for fields that are not folded into
// keys.
const (
	DecodedClearDepth   float32 = 1.0
	DecodedClearStencil uint32  = 0
)

// DecodedClearColor is the clear color of decoded render passes.
var DecodedClearColor = gputypes.Color{}

// MakeRenderPassFields extracts the keyed fields of rp. The color attachment
// must be present and renderable at its sample count on c.
func MakeRenderPassFields(c *caps.Caps, rp RenderPassDesc) RenderPassFields {
	if !rp.ColorAttachment.IsValid() {
		panic("reskey: render pass without a color attachment")
	}

	colorFormat := rp.ColorAttachment.Info.GetViewFormat()
	samples := rp.SampleCount()
	if limit := c.MaxRenderTargetSampleCount(colorFormat); samples > limit {
		panic(fmt.Sprintf("reskey: %v cannot render at %d samples (max %d)", colorFormat, samples, limit))
	}

	f := RenderPassFields{
		ColorFormatIndex:        uint16(caps.FormatIndex(colorFormat)),
		ColorSamples:            narrowSamples(samples),
		DepthStencilFormatIndex: NoAttachmentIndex,
		LoadResolve: rp.ColorResolveAttachment.IsValid() &&
			rp.ColorResolveAttachment.LoadOp == gputypes.LoadOpLoad,
	}
	if ds := rp.DepthStencilAttachment; ds.IsValid() {
		f.DepthStencilFormatIndex = uint16(caps.FormatIndex(ds.Info.GetViewFormat()))
		f.DepthStencilSamples = narrowSamples(ds.Info.Samples())
	}
	return f
}

// narrowSamples converts a sample count for a 4-bit field; put rejects
// anything the field cannot hold.
func narrowSamples(n uint32) uint8 {
	if n > 0xFF {
		panic(fmt.Sprintf("reskey: sample count %d overflows 4 bits", n))
	}
	return uint8(n)
}

// RenderPassFromFields rebuilds a render pass from keyed fields.
//
// Only the keyed fields are recovered exactly. The rest are filled with
// fixed defaults: color is cleared to DecodedClearColor and stored (or
// discarded after resolve when multisampled), a resolve attachment exists
// when the pass is multisampled or the resolve is loaded, depth/stencil is
// cleared to DecodedClearDepth/DecodedClearStencil and discarded, every
// attachment has render-attachment usage and AspectAll, and the write
// swizzle is RGBA.
func RenderPassFromFields(c *caps.Caps, f RenderPassFields) (RenderPassDesc, error) {
	colorFormat, err := decodeFormat(c, f.ColorFormatIndex, f.ColorSamples)
	if err != nil {
		return RenderPassDesc{}, err
	}

	rp := RenderPassDesc{
		ClearColor:   DecodedClearColor,
		ClearDepth:   DecodedClearDepth,
		ClearStencil: DecodedClearStencil,
		WriteSwizzle: texture.SwizzleRGBA,
	}
	rp.ColorAttachment = AttachmentDesc{
		Info:    attachmentInfo(colorFormat, uint32(f.ColorSamples)),
		LoadOp:  gputypes.LoadOpClear,
		StoreOp: gputypes.StoreOpStore,
	}

	if rp.RequiresMSAA() || f.LoadResolve {
		if rp.RequiresMSAA() {
			rp.ColorAttachment.StoreOp = gputypes.StoreOpDiscard
		}
		loadOp := gputypes.LoadOpClear
		if f.LoadResolve {
			loadOp = gputypes.LoadOpLoad
		}
		rp.ColorResolveAttachment = AttachmentDesc{
			Info:    attachmentInfo(colorFormat, 1),
			LoadOp:  loadOp,
			StoreOp: gputypes.StoreOpStore,
		}
	}

	if f.HasDepthStencil() {
		dsFormat, err := decodeFormat(c, f.DepthStencilFormatIndex, f.DepthStencilSamples)
		if err != nil {
			return RenderPassDesc{}, err
		}
		rp.DepthStencilAttachment = AttachmentDesc{
			Info:    attachmentInfo(dsFormat, uint32(f.DepthStencilSamples)),
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpDiscard,
		}
	}
	return rp, nil
}

func decodeFormat(c *caps.Caps, idx uint16, samples uint8) (gputypes.TextureFormat, error) {
	if int(idx) >= caps.FormatCount {
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: format index %d", ErrCorruptKey, idx)
	}
	f := caps.FormatFromIndex(int(idx))
	if samples == 0 || uint32(samples) > c.MaxRenderTargetSampleCount(f) {
		return gputypes.TextureFormatUndefined,
			fmt.Errorf("%w: %v cannot render at %d samples", ErrCorruptKey, f, samples)
	}
	return f, nil
}

func attachmentInfo(f gputypes.TextureFormat, samples uint32) texture.Info {
	return texture.Info{
		Spec: texture.Spec{
			Format: f,
			Usage:  gputypes.TextureUsageRenderAttachment,
			Aspect: texture.AspectAll,
		},
		SampleCount: samples,
	}
}

// MakeRenderPassKey returns the one-word key of a render pass's
// attachment layout.
func MakeRenderPassKey(c *caps.Caps, rp RenderPassDesc) ResourceKey {
	return NewBuilder(DomainRenderPass, 1, ShareableYes).
		Add(MakeRenderPassFields(c, rp).Pack()).
		Finish()
}

// ExtractRenderPassDesc decodes a key made by MakeRenderPassKey.
func ExtractRenderPassDesc(c *caps.Caps, key ResourceKey) (RenderPassDesc, error) {
	if err := checkKey(key, DomainRenderPass, 1); err != nil {
		return RenderPassDesc{}, err
	}
	return RenderPassFromFields(c, UnpackRenderPassFields(key.Word(0)))
}
