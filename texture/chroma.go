package texture

// ChromaModel is the YCbCr to RGB conversion model.
type ChromaModel uint8

// Conversion models.
const (
	ChromaModelRGBIdentity ChromaModel = iota
	ChromaModelYCbCrIdentity
	ChromaModelYCbCr709
	ChromaModelYCbCr601
	ChromaModelYCbCr2020
)

// ChromaRange is the encoded value range of a YCbCr texture.
type ChromaRange uint8

// Value ranges.
const (
	ChromaRangeFull ChromaRange = iota
	ChromaRangeNarrow
)

// ChromaLocation is the sample position of downsampled chroma.
type ChromaLocation uint8

// Chroma sample locations.
const (
	ChromaLocationCositedEven ChromaLocation = iota
	ChromaLocationMidpoint
)

// ChromaDescriptor describes how a chroma-subsampled texture is converted
// when sampled. The zero value is the "no conversion" default.
//
// A descriptor carries either a concrete numeric format (Format) or an
// externally-opaque format id (ExternalFormat) that only the platform can
// interpret. When both are set ExternalFormat wins.
type ChromaDescriptor struct {
	// Format is a concrete numeric format of the planar texture.
	Format uint32

	// ExternalFormat is an opaque platform format id.
	ExternalFormat uint64

	Model         ChromaModel
	Range         ChromaRange
	XChromaOffset ChromaLocation
	YChromaOffset ChromaLocation

	// LinearChromaFilter selects linear filtering of the chroma planes.
	LinearChromaFilter bool

	ForceExplicitReconstruction bool
}

// IsValid reports whether the descriptor is semantically non-default, i.e.
// it names a concrete or an external format.
func (d ChromaDescriptor) IsValid() bool {
	return d.Format != 0 || d.ExternalFormat != 0
}

// UsesExternalFormat reports whether the descriptor is keyed by an external
// format id.
func (d ChromaDescriptor) UsesExternalFormat() bool {
	return d.ExternalFormat != 0
}

// Equivalent reports whether two descriptors describe the same conversion.
// Two default descriptors are equivalent regardless of leftover fields.
func (d ChromaDescriptor) Equivalent(other ChromaDescriptor) bool {
	if !d.IsValid() && !other.IsValid() {
		return true
	}
	return d == other
}
