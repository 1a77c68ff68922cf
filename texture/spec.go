package texture

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Aspect selects which plane of a texture a Spec refers to.
type Aspect uint8

// Texture aspects.
const (
	// AspectAll covers every plane. A texture built for AspectAll can serve a
	// request for any single plane.
	AspectAll Aspect = iota

	// AspectPlane0 is the first plane of a multi-planar format (luma).
	AspectPlane0

	// AspectPlane1 is the second plane of a multi-planar format.
	AspectPlane1

	// AspectPlane2 is the third plane of a multi-planar format.
	AspectPlane2
)

// String returns the aspect name.
func (a Aspect) String() string {
	switch a {
	case AspectAll:
		return "All"
	case AspectPlane0:
		return "Plane0"
	case AspectPlane1:
		return "Plane1"
	case AspectPlane2:
		return "Plane2"
	default:
		return "Unknown"
	}
}

// Spec is the identity of a texture independent of the backend.
//
// Spec is a comparable value; == compares every field.
type Spec struct {
	// Format is the native format of the texture storage.
	Format gputypes.TextureFormat

	// ViewFormat is the format views are created with.
	// TextureFormatUndefined means "same as Format".
	ViewFormat gputypes.TextureFormat

	// Usage is the set of usages the texture supports.
	Usage gputypes.TextureUsage

	// Aspect selects a plane, or all of them.
	Aspect Aspect

	// Slice is the array layer the spec refers to.
	Slice uint32

	// Chroma is the optional YCbCr sampling descriptor.
	Chroma ChromaDescriptor
}

// IsValid reports whether the spec names a format.
func (s Spec) IsValid() bool {
	return s.Format != gputypes.TextureFormatUndefined
}

// GetViewFormat returns the view format, falling back to Format when the
// view format is unset.
func (s Spec) GetViewFormat() gputypes.TextureFormat {
	if s.ViewFormat != gputypes.TextureFormatUndefined {
		return s.ViewFormat
	}
	return s.Format
}

// IsCompatible reports whether a texture already built to s can serve a
// request described by requested.
//
// The check is not symmetric: s must support every usage of requested, and
// an AspectAll texture serves any plane request but not the reverse.
func (s Spec) IsCompatible(requested Spec) bool {
	return s.GetViewFormat() == requested.GetViewFormat() &&
		requested.Usage&s.Usage == requested.Usage &&
		(s.Aspect == requested.Aspect || s.Aspect == AspectAll) &&
		s.Chroma.Equivalent(requested.Chroma)
}

// String returns a short description for logs.
func (s Spec) String() string {
	return fmt.Sprintf("Spec{format=%v view=%v usage=%#x aspect=%v slice=%d}",
		s.Format, s.GetViewFormat(), uint64(s.Usage), s.Aspect, s.Slice)
}
