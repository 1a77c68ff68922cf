// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpures

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpures/cache"
	"github.com/gogpu/gpures/caps"
	"github.com/gogpu/gpures/reskey"
	"github.com/gogpu/gpures/texture"
)

// Errors returned by ResourceProvider.
var (
	// ErrNilDevice is returned when no HAL device is available.
	ErrNilDevice = errors.New("gpures: nil device")

	// ErrUnsupportedTexture is returned when the device cannot create a
	// texture with the requested format, usage and sample count.
	ErrUnsupportedTexture = errors.New("gpures: unsupported texture")

	// ErrNoPipelineFactory is returned when a pipeline is requested from a
	// provider created without a PipelineFactory.
	ErrNoPipelineFactory = errors.New("gpures: no pipeline factory")

	// ErrReleased is returned by providers after Release.
	ErrReleased = errors.New("gpures: provider released")
)

// PipelineFactory compiles graphics pipelines. Shader generation and
// pipeline layout live outside gpures; the provider only decides when a
// pipeline has to be built.
type PipelineFactory interface {
	CreateGraphicsPipeline(device hal.Device, desc reskey.GraphicsPipelineDesc, rp reskey.RenderPassDesc) (hal.RenderPipeline, error)
}

// PipelineFactoryFunc adapts a function to PipelineFactory.
type PipelineFactoryFunc func(device hal.Device, desc reskey.GraphicsPipelineDesc, rp reskey.RenderPassDesc) (hal.RenderPipeline, error)

// CreateGraphicsPipeline calls f.
func (f PipelineFactoryFunc) CreateGraphicsPipeline(device hal.Device, desc reskey.GraphicsPipelineDesc, rp reskey.RenderPassDesc) (hal.RenderPipeline, error) {
	return f(device, desc, rp)
}

// ResourceProvider finds or creates the GPU objects of one device.
//
// Every object is built at most once per key. Objects stay cached until
// they are evicted with TrimTextures or the provider is released.
//
// ResourceProvider is not safe for concurrent use.
type ResourceProvider struct {
	device  hal.Device
	caps    *caps.Caps
	factory PipelineFactory
	logger  *slog.Logger
	label   string

	textures  *cache.ResourceCache[hal.Texture]
	samplers  *cache.ResourceCache[hal.Sampler]
	pipelines *cache.ResourceCache[hal.RenderPipeline]

	released bool
}

// NewResourceProvider creates a provider building objects on device, checked
// against the capability table c.
func NewResourceProvider(device hal.Device, c *caps.Caps, opts ...Option) (*ResourceProvider, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if c == nil {
		return nil, errors.New("gpures: nil capability table")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newProvider(device, c, o), nil
}

func newProvider(device hal.Device, c *caps.Caps, o providerOptions) *ResourceProvider {
	logOpt := cache.WithLogger(o.logger)
	p := &ResourceProvider{
		device:    device,
		caps:      c,
		factory:   o.factory,
		logger:    o.logger,
		label:     o.label,
		textures:  cache.New[hal.Texture](logOpt),
		samplers:  cache.New[hal.Sampler](logOpt),
		pipelines: cache.New[hal.RenderPipeline](logOpt),
	}
	o.logger.Info("gpures: resource provider created", "label", o.label, "caps", c)
	return p
}

// halProvider is implemented by hosts that expose their HAL objects
// next to the gpucontext type tokens.
type halProvider interface {
	HalDevice() any
}

type halAdapterProvider interface {
	HalAdapter() any
}

// NewResourceProviderFromContext creates a provider on the device shared by
// a host application. features are the features the device was opened with.
//
// The device must be a hal.Device, either directly or through a HalDevice
// method on the provider. When the adapter is available as a hal.Adapter the
// capability table is narrowed by its per-format capabilities.
func NewResourceProviderFromContext(dp gpucontext.DeviceProvider, features gputypes.Features, opts ...Option) (*ResourceProvider, error) {
	if dp == nil {
		return nil, ErrNilDevice
	}
	device, ok := dp.Device().(hal.Device)
	if !ok {
		if hp, isHal := dp.(halProvider); isHal {
			device, ok = hp.HalDevice().(hal.Device)
		}
	}
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider does not expose a hal.Device", ErrNilDevice)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	capsOpts := append([]caps.Option{caps.WithLogger(o.logger)}, o.capsOptions...)

	var c *caps.Caps
	if adapter := contextAdapter(dp); adapter != nil {
		c = caps.NewFromAdapter(hal.ExposedAdapter{Adapter: adapter, Features: features}, capsOpts...)
	} else {
		c = caps.New(features, capsOpts...)
	}

	info := dp.AdapterInfo()
	o.logger.Debug("gpures: device from context",
		"adapter", info.Name,
		"type", info.Type.String(),
		"surface", dp.SurfaceFormat())
	return newProvider(device, c, o), nil
}

func contextAdapter(dp gpucontext.DeviceProvider) hal.Adapter {
	if a, ok := dp.Adapter().(hal.Adapter); ok && a != nil {
		return a
	}
	if hp, ok := dp.(halAdapterProvider); ok {
		if a, ok := hp.HalAdapter().(hal.Adapter); ok && a != nil {
			return a
		}
	}
	return nil
}

// Caps returns the provider's capability table.
func (p *ResourceProvider) Caps() *caps.Caps {
	return p.caps
}

// Device returns the HAL device objects are built on.
func (p *ResourceProvider) Device() hal.Device {
	return p.device
}

// FindOrCreateTexture returns a w×h texture described by info, building it
// on the first request for its key.
//
// The texture must be supported by the capability table for every usage it
// requests; otherwise ErrUnsupportedTexture is returned and nothing is
// built.
func (p *ResourceProvider) FindOrCreateTexture(w, h uint32, info texture.Info, shareable reskey.Shareable) (hal.Texture, error) {
	if p.released {
		return nil, ErrReleased
	}
	if err := p.checkTexture(w, h, info); err != nil {
		return nil, err
	}

	key := reskey.MakeTextureKey(w, h, info, shareable)
	return p.textures.GetOrBuild(key, func() (hal.Texture, error) {
		return p.device.CreateTexture(info.HALDescriptor(p.label+" texture", w, h))
	})
}

func (p *ResourceProvider) checkTexture(w, h uint32, info texture.Info) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: empty %dx%d texture", ErrUnsupportedTexture, w, h)
	}
	if !info.IsValid() || !caps.IsSupportedFormat(info.Format) {
		return fmt.Errorf("%w: format %v", ErrUnsupportedTexture, info.Format)
	}
	if info.Usage == 0 {
		return fmt.Errorf("%w: no usage", ErrUnsupportedTexture)
	}

	checks := []struct {
		usage gputypes.TextureUsage
		ok    func(texture.Info) bool
	}{
		{gputypes.TextureUsageTextureBinding, p.caps.IsTexturable},
		{gputypes.TextureUsageRenderAttachment, p.caps.IsRenderable},
		{gputypes.TextureUsageStorageBinding, p.caps.IsStorage},
	}
	for _, c := range checks {
		if info.Usage.Contains(c.usage) && !c.ok(info) {
			return fmt.Errorf("%w: %v with %d samples cannot be used as %v",
				ErrUnsupportedTexture, info.Format, info.Samples(), c.usage)
		}
	}
	return nil
}

// FindOrCreateSampler returns the sampler described by desc. Equal
// descriptors share one sampler.
func (p *ResourceProvider) FindOrCreateSampler(desc reskey.SamplerDesc) (hal.Sampler, error) {
	if p.released {
		return nil, ErrReleased
	}
	key := reskey.MakeSamplerKey(desc)
	return p.samplers.GetOrBuild(key, func() (hal.Sampler, error) {
		return p.device.CreateSampler(desc.HALDescriptor(p.label + " sampler"))
	})
}

// FindOrCreateGraphicsPipeline returns the pipeline running desc in render
// passes laid out like rp.
func (p *ResourceProvider) FindOrCreateGraphicsPipeline(desc reskey.GraphicsPipelineDesc, rp reskey.RenderPassDesc) (hal.RenderPipeline, error) {
	if p.released {
		return nil, ErrReleased
	}
	if p.factory == nil {
		return nil, ErrNoPipelineFactory
	}
	key := reskey.MakeGraphicsPipelineKey(p.caps, desc, rp)
	return p.pipelines.GetOrBuild(key, func() (hal.RenderPipeline, error) {
		return p.factory.CreateGraphicsPipeline(p.device, desc, rp)
	})
}

// CreatePipelineFromKey returns the pipeline identified by a key produced by
// reskey.MakeGraphicsPipelineKey, building it from the decoded descriptions
// when it is not cached. Fields that are not part of the key are built
// with the defaults documented on reskey.RenderPassFromFields.
func (p *ResourceProvider) CreatePipelineFromKey(key reskey.ResourceKey) (hal.RenderPipeline, error) {
	if p.released {
		return nil, ErrReleased
	}
	if p.factory == nil {
		return nil, ErrNoPipelineFactory
	}
	if p.pipelines.Contains(key) {
		return p.pipelines.GetOrBuild(key, nil)
	}

	desc, rp, err := reskey.ExtractGraphicsDescs(p.caps, key)
	if err != nil {
		return nil, fmt.Errorf("gpures: decode pipeline key: %w", err)
	}
	return p.pipelines.GetOrBuild(key, func() (hal.RenderPipeline, error) {
		return p.factory.CreateGraphicsPipeline(p.device, desc, rp)
	})
}

// TrimTextures destroys least recently used textures until at most limit
// remain, and returns how many were destroyed.
func (p *ResourceProvider) TrimTextures(limit int) int {
	limit = max(limit, 0)
	n := 0
	for p.textures.Len() > limit {
		key, _ := p.textures.Oldest()
		tex, _ := p.textures.Remove(key)
		p.device.DestroyTexture(tex)
		n++
	}
	if n > 0 {
		p.logger.Debug("gpures: textures trimmed", "destroyed", n, "remaining", p.textures.Len())
	}
	return n
}

// Stats reports the state of the provider's caches.
type Stats struct {
	Textures  cache.Stats
	Samplers  cache.Stats
	Pipelines cache.Stats
}

// Stats returns a snapshot of the provider's cache statistics.
func (p *ResourceProvider) Stats() Stats {
	return Stats{
		Textures:  p.textures.Stats(),
		Samplers:  p.samplers.Stats(),
		Pipelines: p.pipelines.Stats(),
	}
}

// Release destroys every cached object. The provider cannot be used
// afterwards; the device itself is owned by the caller and is not
// destroyed.
func (p *ResourceProvider) Release() {
	if p.released {
		return
	}
	p.released = true

	p.pipelines.Range(func(_ reskey.ResourceKey, rp hal.RenderPipeline) bool {
		p.device.DestroyRenderPipeline(rp)
		return true
	})
	p.samplers.Range(func(_ reskey.ResourceKey, s hal.Sampler) bool {
		p.device.DestroySampler(s)
		return true
	})
	p.textures.Range(func(_ reskey.ResourceKey, t hal.Texture) bool {
		p.device.DestroyTexture(t)
		return true
	})

	p.logger.Info("gpures: resource provider released",
		"label", p.label,
		"textures", p.textures.Len(),
		"samplers", p.samplers.Len(),
		"pipelines", p.pipelines.Len())

	p.pipelines.Clear()
	p.samplers.Clear()
	p.textures.Clear()
}
