package reskey

import (
	"fmt"

	"github.com/gogpu/gpures/texture"
)

// Texture key layout:
//
//	word 0  width
//	word 1  height
//	word 2  format (low 16 bits), view format (high 16 bits)
//	word 3  log2 sample count (3 bits), mipmapped (1 bit), usage (28 bits)
//	word 4  chroma format, when the chroma descriptor names one
//	word 4-5  external chroma format lo/hi, when it names an external one
//
// Only the chroma format takes part in texture identity. The conversion
// parameters (model, range, offsets, filtering) are sampler state and are
// keyed by SamplerDesc.
var (
	texFormat     = field{name: "texture format", shift: 0, width: 16}
	texViewFormat = field{name: "texture view format", shift: 16, width: 16}
	texSamples    = field{name: "log2 sample count", shift: 0, width: 3}
	texMipmapped  = field{name: "mipmapped flag", shift: 3, width: 1}
	texUsage      = field{name: "texture usage", shift: 4, width: 28}
)

const textureBaseWords = 4

// TextureKeyWordCount returns the exact number of words MakeTextureKey
// writes for info.
func TextureKeyWordCount(info texture.Info) int {
	switch {
	case info.Chroma.UsesExternalFormat():
		return textureBaseWords + 2
	case info.Chroma.IsValid():
		return textureBaseWords + 1
	default:
		return textureBaseWords
	}
}

// MakeTextureKey returns the key of a w×h texture described by info.
// Textures that may only have one owner at a time use ShareableNo.
func MakeTextureKey(w, h uint32, info texture.Info, shareable Shareable) ResourceKey {
	if !info.IsValid() {
		panic("reskey: texture key for an invalid texture info")
	}
	samples, ok := log2(info.Samples())
	if !ok {
		panic(fmt.Sprintf("reskey: sample count %d is not a power of two", info.Samples()))
	}
	if uint64(info.Usage) > uint64(texUsage.max()) {
		panic(fmt.Sprintf("reskey: texture usage %#x overflows %d bits", uint64(info.Usage), texUsage.width))
	}

	b := NewBuilder(DomainTexture, TextureKeyWordCount(info), shareable).
		Add(w).
		Add(h).
		Add(texFormat.put(uint32(info.Format)) | texViewFormat.put(uint32(info.GetViewFormat()))).
		Add(texSamples.put(samples) | texMipmapped.putBool(info.Mipmapped) | texUsage.put(uint32(info.Usage)))

	switch {
	case info.Chroma.UsesExternalFormat():
		b.Add(uint32(info.Chroma.ExternalFormat)).Add(uint32(info.Chroma.ExternalFormat >> 32))
	case info.Chroma.IsValid():
		b.Add(info.Chroma.Format)
	}
	return b.Finish()
}
