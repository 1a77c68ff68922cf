package texture

import "fmt"

// Channel selects the source of one output channel of a Swizzle.
type Channel uint8

// Swizzle channels.
const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
	ChannelZero
	ChannelOne
)

const channelChars = "rgba01"

// Swizzle reorders the four color channels when a texture is read or
// written. Each output channel is a 4-bit Channel, red in the low nibble,
// stored relative to the identity so that the zero Swizzle is "rgba".
type Swizzle uint16

// identitySwizzle is the raw channel packing of "rgba".
const identitySwizzle = uint16(ChannelR) | uint16(ChannelG)<<4 | uint16(ChannelB)<<8 | uint16(ChannelA)<<12

// Common swizzles.
var (
	SwizzleRGBA = MustParseSwizzle("rgba")
	SwizzleRGB1 = MustParseSwizzle("rgb1")
	SwizzleBGRA = MustParseSwizzle("bgra")
	SwizzleRRRA = MustParseSwizzle("rrra")
	SwizzleRRR1 = MustParseSwizzle("rrr1")
	Swizzle000R = MustParseSwizzle("000r")
	SwizzleA000 = MustParseSwizzle("a000")
)

// NewSwizzle builds a swizzle from four channels.
func NewSwizzle(r, g, b, a Channel) Swizzle {
	return Swizzle((uint16(r) | uint16(g)<<4 | uint16(b)<<8 | uint16(a)<<12) ^ identitySwizzle)
}

// ParseSwizzle parses a four character string over "rgba01".
func ParseSwizzle(s string) (Swizzle, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("texture: swizzle %q must have 4 channels", s)
	}
	var ch [4]Channel
	for i := 0; i < 4; i++ {
		c := -1
		for j := 0; j < len(channelChars); j++ {
			if s[i] == channelChars[j] {
				c = j
				break
			}
		}
		if c < 0 {
			return 0, fmt.Errorf("texture: invalid swizzle channel %q in %q", s[i], s)
		}
		ch[i] = Channel(c)
	}
	return NewSwizzle(ch[0], ch[1], ch[2], ch[3]), nil
}

// MustParseSwizzle is like ParseSwizzle but panics on error.
func MustParseSwizzle(s string) Swizzle {
	sw, err := ParseSwizzle(s)
	if err != nil {
		panic(err)
	}
	return sw
}

// Channel returns the source of output channel i (0..3).
func (s Swizzle) Channel(i int) Channel {
	return Channel((uint16(s) ^ identitySwizzle) >> (4 * uint(i)) & 0xF)
}

// AsKey returns the packed swizzle for use in resource keys.
func (s Swizzle) AsKey() uint32 {
	return uint32(s)
}

// String returns the four character form, e.g. "rgba".
func (s Swizzle) String() string {
	var b [4]byte
	for i := range b {
		c := s.Channel(i)
		if int(c) >= len(channelChars) {
			return fmt.Sprintf("Swizzle(%#04x)", uint16(s))
		}
		b[i] = channelChars[c]
	}
	return string(b[:])
}
