package caps

// ColorType is the client-side pixel layout a texture is read and written
// in. Several color types can be served by one native format through a
// swizzle (for example Alpha8 and Gray8 on R8Unorm).
type ColorType uint8

// Color types.
const (
	ColorTypeUnknown ColorType = iota
	ColorTypeAlpha8
	ColorTypeGray8
	ColorTypeR8Unorm
	ColorTypeR8G8Unorm
	ColorTypeRGBA8888
	ColorTypeRGB888x
	ColorTypeSRGBA8888
	ColorTypeBGRA8888
	ColorTypeRGBA1010102
	ColorTypeRGB101010x
	ColorTypeAlphaF16
	ColorTypeR16G16Float
	ColorTypeRGBAF16
	ColorTypeRGBAF32
	ColorTypeA16Unorm
	ColorTypeR16G16Unorm
	ColorTypeR16G16B16A16Unorm

	colorTypeCount
)

var colorTypeNames = [colorTypeCount]string{
	ColorTypeUnknown:           "Unknown",
	ColorTypeAlpha8:            "Alpha8",
	ColorTypeGray8:             "Gray8",
	ColorTypeR8Unorm:           "R8Unorm",
	ColorTypeR8G8Unorm:         "R8G8Unorm",
	ColorTypeRGBA8888:          "RGBA8888",
	ColorTypeRGB888x:           "RGB888x",
	ColorTypeSRGBA8888:         "SRGBA8888",
	ColorTypeBGRA8888:          "BGRA8888",
	ColorTypeRGBA1010102:       "RGBA1010102",
	ColorTypeRGB101010x:        "RGB101010x",
	ColorTypeAlphaF16:          "AlphaF16",
	ColorTypeR16G16Float:       "R16G16Float",
	ColorTypeRGBAF16:           "RGBAF16",
	ColorTypeRGBAF32:           "RGBAF32",
	ColorTypeA16Unorm:          "A16Unorm",
	ColorTypeR16G16Unorm:       "R16G16Unorm",
	ColorTypeR16G16B16A16Unorm: "R16G16B16A16Unorm",
}

// String returns the color type name.
func (ct ColorType) String() string {
	if ct < colorTypeCount {
		return colorTypeNames[ct]
	}
	return "Invalid"
}
