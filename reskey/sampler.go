package reskey

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpures/texture"
)

// Sampler LOD clamps. They are not configurable and therefore not keyed.
const (
	SamplerLodMinClamp float32 = 0
	SamplerLodMaxClamp float32 = 32
)

// SamplerDesc describes an immutable sampler.
type SamplerDesc struct {
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
	Compare      gputypes.CompareFunction

	// Anisotropy is the filtering level, 0 and 1 meaning off.
	Anisotropy uint16

	// Chroma is the YCbCr conversion applied when sampling planar
	// textures.
	Chroma texture.ChromaDescriptor
}

// Sampler span layout. Word 0, low bit first:
//
//	bits  0..5   address modes U, V, W (2 bits each)
//	bits  6..11  mag, min, mipmap filter (2 bits each)
//	bits 12..15  compare function
//	bits 16..20  anisotropy
//	bits 21..23  chroma model
//	bit  24      chroma range
//	bits 25..26  x and y chroma offsets
//	bit  27      linear chroma filter
//	bit  28      forced explicit reconstruction
//	bit  29      chroma keyed by external format
//
// followed by the chroma format word, or the two external format words.
var (
	smpAddressU = field{name: "address mode U", shift: 0, width: 2}
	smpAddressV = field{name: "address mode V", shift: 2, width: 2}
	smpAddressW = field{name: "address mode W", shift: 4, width: 2}
	smpMag      = field{name: "mag filter", shift: 6, width: 2}
	smpMin      = field{name: "min filter", shift: 8, width: 2}
	smpMip      = field{name: "mipmap filter", shift: 10, width: 2}
	smpCompare  = field{name: "compare function", shift: 12, width: 4}
	smpAniso    = field{name: "anisotropy", shift: 16, width: 5}
	smpModel    = field{name: "chroma model", shift: 21, width: 3}
	smpRange    = field{name: "chroma range", shift: 24, width: 1}
	smpXOffset  = field{name: "x chroma offset", shift: 25, width: 1}
	smpYOffset  = field{name: "y chroma offset", shift: 26, width: 1}
	smpLinear   = field{name: "linear chroma filter", shift: 27, width: 1}
	smpExplicit = field{name: "explicit reconstruction", shift: 28, width: 1}
	smpExternal = field{name: "external format flag", shift: 29, width: 1}
)

// AsSpan serializes the descriptor: one word, plus one word for a
// concrete chroma format or two for an external one. Equal descriptors
// produce equal spans.
func (d SamplerDesc) AsSpan() []uint32 {
	w := smpAddressU.put(uint32(d.AddressModeU)) |
		smpAddressV.put(uint32(d.AddressModeV)) |
		smpAddressW.put(uint32(d.AddressModeW)) |
		smpMag.put(uint32(d.MagFilter)) |
		smpMin.put(uint32(d.MinFilter)) |
		smpMip.put(uint32(d.MipmapFilter)) |
		smpCompare.put(uint32(d.Compare)) |
		smpAniso.put(uint32(d.Anisotropy))

	ch := d.Chroma
	if !ch.IsValid() {
		return []uint32{w}
	}
	w |= smpModel.put(uint32(ch.Model)) |
		smpRange.put(uint32(ch.Range)) |
		smpXOffset.put(uint32(ch.XChromaOffset)) |
		smpYOffset.put(uint32(ch.YChromaOffset)) |
		smpLinear.putBool(ch.LinearChromaFilter) |
		smpExplicit.putBool(ch.ForceExplicitReconstruction) |
		smpExternal.putBool(ch.UsesExternalFormat())
	if ch.UsesExternalFormat() {
		return []uint32{w, uint32(ch.ExternalFormat), uint32(ch.ExternalFormat >> 32)}
	}
	return []uint32{w, ch.Format}
}

// HALDescriptor renders the descriptor for hal.Device.CreateSampler.
// The chroma conversion has no hal counterpart and is applied by the
// shader collaborator.
func (d SamplerDesc) HALDescriptor(label string) *hal.SamplerDescriptor {
	aniso := d.Anisotropy
	if aniso == 0 {
		aniso = 1
	}
	return &hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: d.AddressModeU,
		AddressModeV: d.AddressModeV,
		AddressModeW: d.AddressModeW,
		MagFilter:    d.MagFilter,
		MinFilter:    d.MinFilter,
		MipmapFilter: d.MipmapFilter,
		LodMinClamp:  SamplerLodMinClamp,
		LodMaxClamp:  SamplerLodMaxClamp,
		Compare:      d.Compare,
		Anisotropy:   aniso,
	}
}

// String returns a short description for logs.
func (d SamplerDesc) String() string {
	return fmt.Sprintf("sampler(addr=%d/%d/%d filter=%d/%d/%d cmp=%d aniso=%d)",
		d.AddressModeU, d.AddressModeV, d.AddressModeW,
		d.MagFilter, d.MinFilter, d.MipmapFilter, d.Compare, d.Anisotropy)
}

// MakeSamplerKey returns the key of d. The key holds exactly d.AsSpan().
func MakeSamplerKey(d SamplerDesc) ResourceKey {
	span := d.AsSpan()
	b := NewBuilder(DomainSampler, len(span), ShareableYes)
	for _, w := range span {
		b.Add(w)
	}
	return b.Finish()
}
