package caps

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpures/texture"
)

// FormatFlags are the capabilities of a native format.
type FormatFlags uint8

// Format capability flags.
const (
	// FormatTexturable: the format can be sampled in shaders.
	FormatTexturable FormatFlags = 1 << iota

	// FormatRenderable: the format can be a render attachment.
	FormatRenderable

	// FormatStorage: the format can be bound as a storage texture.
	FormatStorage

	// FormatMSAA: the format can be multisampled.
	FormatMSAA

	// FormatFilterable: the format supports linear filtering.
	FormatFilterable
)

// Has reports whether all of flag are set.
func (f FormatFlags) Has(flag FormatFlags) bool {
	return f&flag == flag
}

var formatFlagNames = [...]string{"Texturable", "Renderable", "Storage", "MSAA", "Filterable"}

// String returns the set flags joined by "|", or "None".
func (f FormatFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for i, name := range formatFlagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// ColorTypeFlags describe what a format can do for one color type.
type ColorTypeFlags uint8

// Color type flags.
const (
	// ColorTypeUploadable: pixels of the color type can be written to the format.
	ColorTypeUploadable ColorTypeFlags = 1 << iota

	// ColorTypeRenderable: the format can be rendered to as the color type.
	ColorTypeRenderable
)

// Has reports whether all of flag are set.
func (f ColorTypeFlags) Has(flag ColorTypeFlags) bool {
	return f&flag == flag
}

// ColorTypeInfo binds a color type to a format.
type ColorTypeInfo struct {
	ColorType    ColorType
	ReadSwizzle  texture.Swizzle
	WriteSwizzle texture.Swizzle
	Flags        ColorTypeFlags
}

// FormatInfo is the capability record of one native format.
// A format may carry no color types; depth/stencil formats are only used
// as attachments.
type FormatInfo struct {
	Format         gputypes.TextureFormat
	Flags          FormatFlags
	ColorTypeInfos []ColorTypeInfo
}

// colorTypeInfo returns the binding for ct, or nil.
func (fi *FormatInfo) colorTypeInfo(ct ColorType) *ColorTypeInfo {
	for i := range fi.ColorTypeInfos {
		if fi.ColorTypeInfos[i].ColorType == ct {
			return &fi.ColorTypeInfos[i]
		}
	}
	return nil
}

// formats is the ordered list of supported native formats. The position of
// a format is its index; the order must not change within a process.
var formats = [...]gputypes.TextureFormat{
	gputypes.TextureFormatR8Unorm,
	gputypes.TextureFormatRG8Unorm,
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatR16Float,
	gputypes.TextureFormatRG16Float,
	gputypes.TextureFormatRGBA16Float,
	gputypes.TextureFormatR32Float,
	gputypes.TextureFormatRGBA32Float,
	gputypes.TextureFormatRGB10A2Unorm,
	gputypes.TextureFormatRG11B10Ufloat,
	gputypes.TextureFormatR16Unorm,
	gputypes.TextureFormatRG16Unorm,
	gputypes.TextureFormatRGBA16Unorm,
	gputypes.TextureFormatStencil8,
	gputypes.TextureFormatDepth16Unorm,
	gputypes.TextureFormatDepth32Float,
	gputypes.TextureFormatDepth24PlusStencil8,
	gputypes.TextureFormatDepth32FloatStencil8,
}

// FormatCount is the number of supported native formats.
const FormatCount = len(formats)

// Formats returns a copy of the ordered format list.
func Formats() []gputypes.TextureFormat {
	out := make([]gputypes.TextureFormat, FormatCount)
	copy(out, formats[:])
	return out
}

// IsSupportedFormat reports whether f is in the format list.
func IsSupportedFormat(f gputypes.TextureFormat) bool {
	return lookupFormat(f) >= 0
}

// FormatIndex returns the stable index of f.
//
// It panics if f is not a supported format: the caller and the format list
// are out of sync.
func FormatIndex(f gputypes.TextureFormat) int {
	idx := lookupFormat(f)
	if idx < 0 {
		panic(fmt.Sprintf("caps: format %v is not in the supported format list", f))
	}
	return idx
}

// FormatFromIndex is the inverse of FormatIndex. It panics on an index out
// of range.
func FormatFromIndex(idx int) gputypes.TextureFormat {
	if idx < 0 || idx >= FormatCount {
		panic(fmt.Sprintf("caps: format index %d out of range [0, %d)", idx, FormatCount))
	}
	return formats[idx]
}

// lookupFormat scans the short format list; -1 when absent.
func lookupFormat(f gputypes.TextureFormat) int {
	if f == gputypes.TextureFormatUndefined {
		return -1
	}
	for i, ff := range formats {
		if ff == f {
			return i
		}
	}
	return -1
}

// baseline returns the WebGPU core capabilities of f before any feature or
// adapter query. Feature-gated capabilities are left off here and turned on
// in New.
func baseline(f gputypes.TextureFormat) FormatInfo {
	const (
		color     = FormatTexturable | FormatRenderable | FormatMSAA | FormatFilterable
		colorRW   = color | FormatStorage
		depthOnly = FormatTexturable | FormatRenderable | FormatMSAA
	)
	upRender := ColorTypeUploadable | ColorTypeRenderable

	fi := FormatInfo{Format: f}
	switch f {
	case gputypes.TextureFormatR8Unorm:
		fi.Flags = color
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeR8Unorm, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
			{ColorType: ColorTypeAlpha8, ReadSwizzle: texture.Swizzle000R, WriteSwizzle: texture.SwizzleA000, Flags: upRender},
			{ColorType: ColorTypeGray8, ReadSwizzle: texture.SwizzleRRR1, WriteSwizzle: texture.SwizzleRGBA, Flags: ColorTypeUploadable},
		}
	case gputypes.TextureFormatRG8Unorm:
		fi.Flags = color
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeR8G8Unorm, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatRGBA8Unorm:
		fi.Flags = colorRW
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeRGBA8888, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
			{ColorType: ColorTypeRGB888x, ReadSwizzle: texture.SwizzleRGB1, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatRGBA8UnormSrgb:
		fi.Flags = color
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeSRGBA8888, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatBGRA8Unorm:
		fi.Flags = color
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeBGRA8888, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
			{ColorType: ColorTypeRGBA8888, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: ColorTypeRenderable},
		}
	case gputypes.TextureFormatBGRA8UnormSrgb:
		fi.Flags = color
	case gputypes.TextureFormatR16Float:
		fi.Flags = color
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeAlphaF16, ReadSwizzle: texture.Swizzle000R, WriteSwizzle: texture.SwizzleA000, Flags: upRender},
		}
	case gputypes.TextureFormatRG16Float:
		fi.Flags = color
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeR16G16Float, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatRGBA16Float:
		fi.Flags = colorRW
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeRGBAF16, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatR32Float:
		fi.Flags = FormatTexturable | FormatRenderable | FormatMSAA | FormatStorage
	case gputypes.TextureFormatRGBA32Float:
		fi.Flags = FormatTexturable | FormatRenderable | FormatStorage
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeRGBAF32, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatRGB10A2Unorm:
		fi.Flags = color
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeRGBA1010102, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
			{ColorType: ColorTypeRGB101010x, ReadSwizzle: texture.SwizzleRGB1, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatRG11B10Ufloat:
		fi.Flags = FormatTexturable | FormatFilterable
	case gputypes.TextureFormatR16Unorm:
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeA16Unorm, ReadSwizzle: texture.Swizzle000R, WriteSwizzle: texture.SwizzleA000, Flags: upRender},
		}
	case gputypes.TextureFormatRG16Unorm:
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeR16G16Unorm, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatRGBA16Unorm:
		fi.ColorTypeInfos = []ColorTypeInfo{
			{ColorType: ColorTypeR16G16B16A16Unorm, ReadSwizzle: texture.SwizzleRGBA, WriteSwizzle: texture.SwizzleRGBA, Flags: upRender},
		}
	case gputypes.TextureFormatStencil8:
		fi.Flags = FormatRenderable | FormatMSAA
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatDepth24PlusStencil8:
		fi.Flags = depthOnly
	case gputypes.TextureFormatDepth32FloatStencil8:
		// Feature-gated, see New.
	}
	return fi
}
