// Package reskey builds the cache keys that identify GPU objects.
//
// A ResourceKey is a domain tag, a shareable mode and a fixed number of
// 32-bit words. Keys are built once through a Builder that is told the word
// count up front and are compared by value, so they can be used directly as
// map keys.
//
// The package provides codecs for the built-in domains:
//
//   - graphics pipelines: render step, paint params, packed render-pass
//     fields and write swizzle (MakeGraphicsPipelineKey, ExtractGraphicsDescs)
//   - render passes (MakeRenderPassKey, ExtractRenderPassDesc)
//   - textures (MakeTextureKey)
//   - samplers (MakeSamplerKey)
//
// Every packed field has a fixed bit width. A value that does not fit is a
// programming error and panics; nothing is truncated. Keys are process-local
// and their layout carries no stability guarantee across versions.
package reskey
