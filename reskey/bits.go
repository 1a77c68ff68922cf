package reskey

import "fmt"

// field is a statically sized bit range of a packed word.
type field struct {
	name  string
	shift uint
	width uint
}

func (f field) max() uint32 {
	return 1<<f.width - 1
}

// put returns v placed in the field. A value wider than the field is a
// programming error and panics; nothing is ever truncated.
func (f field) put(v uint32) uint32 {
	if v > f.max() {
		panic(fmt.Sprintf("reskey: %s value %d overflows %d bits", f.name, v, f.width))
	}
	return v << f.shift
}

func (f field) get(word uint32) uint32 {
	return word >> f.shift & f.max()
}

// putBool packs a flag into a 1-bit field.
func (f field) putBool(v bool) uint32 {
	if v {
		return f.put(1)
	}
	return 0
}

// log2 returns the base-2 logarithm of a power of two.
func log2(v uint32) (uint32, bool) {
	if v == 0 || v&(v-1) != 0 {
		return 0, false
	}
	var n uint32
	for v > 1 {
		v >>= 1
		n++
	}
	return n, true
}
