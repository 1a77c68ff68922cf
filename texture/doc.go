// Package texture defines the backend-neutral identity of a GPU texture.
//
// A [Spec] names the native format, the format views are created with, the
// usage bits, the plane aspect, the array slice and an optional chroma
// (YCbCr) sampling descriptor. An [Info] adds the sample count and mipmap
// state. Both are plain comparable values: Go's == is identity, and
// [Spec.IsCompatible] answers whether an existing texture can serve a new
// request without building another one.
//
// # Compatibility
//
// IsCompatible is deliberately not symmetric. The receiver describes the
// texture that already exists; the argument describes the request. The
// existing usage must be a superset of the requested usage:
//
//	existing := texture.Spec{Format: f, Usage: sampled | render}
//	request := texture.Spec{Format: f, Usage: sampled}
//	existing.IsCompatible(request) // true
//	request.IsCompatible(existing) // false
//
// # View format
//
// Identity comparisons must go through [Spec.GetViewFormat], which falls back
// to Format when ViewFormat is unset.
package texture
