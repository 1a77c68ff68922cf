// Package gpures identifies, describes and memoizes GPU resources.
//
// # Overview
//
// gpures turns texture, sampler and pipeline descriptions into compact,
// collision-free cache keys and builds each distinct object once. It sits
// between a renderer and a WebGPU HAL device (github.com/gogpu/wgpu/hal):
//
//	capability discovery  ->  caps.Caps (built once, read-only)
//	texture.Info / SamplerDesc / pipeline desc
//	                      ->  reskey.ResourceKey
//	                      ->  cache.ResourceCache  ->  hal.Device
//
// # Quick Start
//
//	c := caps.NewFromAdapter(exposed)
//	p, err := gpures.NewResourceProvider(device, c,
//	    gpures.WithPipelineFactory(factory))
//	if err != nil {
//	    return err
//	}
//	defer p.Release()
//
//	info := c.DefaultSampledTextureInfo(caps.ColorTypeRGBA8888, false, true)
//	tex, err := p.FindOrCreateTexture(512, 512, info, reskey.ShareableYes)
//
// # Packages
//
//   - texture: backend-neutral texture identity and the compatibility
//     predicate
//   - caps: the per-device format capability table
//   - reskey: fixed-length resource keys and their codecs
//   - cache: key to object memoization
//
// # Thread Safety
//
// A caps.Caps is immutable and may be shared between goroutines. Key
// construction is pure. ResourceProvider and the caches it owns are not
// safe for concurrent use.
//
// # Logging
//
// gpures is silent by default. Use SetLogger to route diagnostics to a
// log/slog logger.
package gpures
