// Package caps holds the per-device capability table of native pixel
// formats.
//
// Supported formats form a short, explicitly ordered list. A format's
// position in that list is its index, which stays stable for the lifetime
// of the process and keeps packed resource keys narrow (see package reskey).
// Asking for an index or capability record of a format outside the list is
// a programming error and panics.
//
// A [Caps] is built once from the device's feature flags, optionally
// refined by a hal adapter's per-format capabilities, and is immutable
// afterwards:
//
//	c := caps.New(adapter.Features)
//	// or
//	c := caps.NewFromAdapter(exposedAdapter)
//
//	if c.MaxRenderTargetSampleCount(gputypes.TextureFormatBGRA8Unorm) >= 4 {
//	    // 4x MSAA is available
//	}
//
// Capabilities that depend on optional features (BGRA8Unorm storage,
// RG11B10Ufloat rendering, float32 filtering, depth32float-stencil8) are
// simply absent when the feature is missing.
package caps
