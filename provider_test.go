// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpures

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gpures/caps"
	"github.com/gogpu/gpures/reskey"
	"github.com/gogpu/gpures/texture"
)

// testTexture and testSampler carry an id so that distinct objects never
// share an address.
type testTexture struct {
	noop.Texture
	id int
}

type testSampler struct {
	noop.Resource
	id int
}

type testPipeline struct {
	noop.Resource
	desc reskey.GraphicsPipelineDesc
	rp   reskey.RenderPassDesc
}

// countingDevice records object creation and destruction.
type countingDevice struct {
	*noop.Device

	texturesCreated    int
	samplersCreated    int
	texturesDestroyed  int
	samplersDestroyed  int
	pipelinesDestroyed int

	lastTexture *hal.TextureDescriptor
	lastSampler *hal.SamplerDescriptor
	textureErr  error
}

func newCountingDevice() *countingDevice {
	return &countingDevice{Device: &noop.Device{}}
}

func (d *countingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.textureErr != nil {
		return nil, d.textureErr
	}
	d.texturesCreated++
	d.lastTexture = desc
	return &testTexture{id: d.texturesCreated}, nil
}

func (d *countingDevice) DestroyTexture(hal.Texture) { d.texturesDestroyed++ }

func (d *countingDevice) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	d.samplersCreated++
	d.lastSampler = desc
	return &testSampler{id: d.samplersCreated}, nil
}

func (d *countingDevice) DestroySampler(hal.Sampler) { d.samplersDestroyed++ }

func (d *countingDevice) DestroyRenderPipeline(hal.RenderPipeline) { d.pipelinesDestroyed++ }

// countingFactory builds test pipelines and counts the builds.
type countingFactory struct {
	builds int
}

func (f *countingFactory) CreateGraphicsPipeline(_ hal.Device, desc reskey.GraphicsPipelineDesc, rp reskey.RenderPassDesc) (hal.RenderPipeline, error) {
	f.builds++
	return &testPipeline{desc: desc, rp: rp}, nil
}

func featuresOf(fs ...gputypes.Feature) gputypes.Features {
	var features gputypes.Features
	for _, f := range fs {
		features.Insert(f)
	}
	return features
}

func newTestProvider(t *testing.T, opts ...Option) (*ResourceProvider, *countingDevice) {
	t.Helper()
	dev := newCountingDevice()
	p, err := NewResourceProvider(dev, caps.New(0), opts...)
	if err != nil {
		t.Fatalf("NewResourceProvider: %v", err)
	}
	return p, dev
}

func sampledRGBA() texture.Info {
	return texture.Info{
		Spec: texture.Spec{
			Format: gputypes.TextureFormatRGBA8Unorm,
			Usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		},
		SampleCount: 1,
	}
}

func msaaTarget() reskey.RenderPassDesc {
	attachment := func(samples uint32) texture.Info {
		return texture.Info{
			Spec: texture.Spec{
				Format: gputypes.TextureFormatBGRA8Unorm,
				Usage:  gputypes.TextureUsageRenderAttachment,
			},
			SampleCount: samples,
		}
	}
	return reskey.RenderPassDesc{
		ColorAttachment: reskey.AttachmentDesc{
			Info:    attachment(4),
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpDiscard,
		},
		ColorResolveAttachment: reskey.AttachmentDesc{
			Info:    attachment(1),
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
		},
		ClearColor:   gputypes.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
		WriteSwizzle: texture.SwizzleRGBA,
	}
}

func TestNewResourceProviderNilArgs(t *testing.T) {
	if _, err := NewResourceProvider(nil, caps.New(0)); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device: err = %v, want %v", err, ErrNilDevice)
	}
	if _, err := NewResourceProvider(newCountingDevice(), nil); err == nil {
		t.Error("nil caps: expected error")
	}
}

func TestFindOrCreateTextureBuildsOnce(t *testing.T) {
	p, dev := newTestProvider(t)

	a, err := p.FindOrCreateTexture(256, 128, sampledRGBA(), reskey.ShareableYes)
	if err != nil {
		t.Fatalf("FindOrCreateTexture: %v", err)
	}
	b, err := p.FindOrCreateTexture(256, 128, sampledRGBA(), reskey.ShareableYes)
	if err != nil {
		t.Fatalf("FindOrCreateTexture: %v", err)
	}
	if a != b {
		t.Error("same request returned different textures")
	}
	if dev.texturesCreated != 1 {
		t.Errorf("CreateTexture called %d times, want 1", dev.texturesCreated)
	}

	c, err := p.FindOrCreateTexture(256, 256, sampledRGBA(), reskey.ShareableYes)
	if err != nil {
		t.Fatalf("FindOrCreateTexture: %v", err)
	}
	if c == a {
		t.Error("different size returned the cached texture")
	}
	if dev.texturesCreated != 2 {
		t.Errorf("CreateTexture called %d times, want 2", dev.texturesCreated)
	}

	d := dev.lastTexture
	if d.Size.Width != 256 || d.Size.Height != 256 || d.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("descriptor = %+v", d)
	}
	if d.Usage != sampledRGBA().Usage || d.SampleCount != 1 || d.MipLevelCount != 1 {
		t.Errorf("descriptor usage/samples/mips = %v/%d/%d", d.Usage, d.SampleCount, d.MipLevelCount)
	}
}

func TestFindOrCreateTextureShareableIsPartOfIdentity(t *testing.T) {
	p, dev := newTestProvider(t)
	_, _ = p.FindOrCreateTexture(8, 8, sampledRGBA(), reskey.ShareableYes)
	_, _ = p.FindOrCreateTexture(8, 8, sampledRGBA(), reskey.ShareableNo)
	if dev.texturesCreated != 2 {
		t.Errorf("CreateTexture called %d times, want 2", dev.texturesCreated)
	}
}

func TestFindOrCreateTextureRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		w, h   uint32
		mutate func(*texture.Info)
	}{
		{"empty", 0, 16, nil},
		{"no format", 16, 16, func(i *texture.Info) { i.Format = gputypes.TextureFormatUndefined }},
		{"unknown format", 16, 16, func(i *texture.Info) { i.Format = gputypes.TextureFormatASTC4x4Unorm }},
		{"no usage", 16, 16, func(i *texture.Info) { i.Usage = 0 }},
		{"multisampled binding", 16, 16, func(i *texture.Info) { i.SampleCount = 4 }},
		{"storage without feature", 16, 16, func(i *texture.Info) {
			i.Format = gputypes.TextureFormatBGRA8Unorm
			i.Usage = gputypes.TextureUsageStorageBinding
		}},
		{"non power of two samples", 64, 64, func(i *texture.Info) {
			i.Usage = gputypes.TextureUsageRenderAttachment
			i.SampleCount = 3
		}},
		{"unrenderable", 16, 16, func(i *texture.Info) {
			i.Format = gputypes.TextureFormatRG11B10Ufloat
			i.Usage = gputypes.TextureUsageRenderAttachment
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, dev := newTestProvider(t)
			info := sampledRGBA()
			if tt.mutate != nil {
				tt.mutate(&info)
			}
			_, err := p.FindOrCreateTexture(tt.w, tt.h, info, reskey.ShareableYes)
			if !errors.Is(err, ErrUnsupportedTexture) {
				t.Errorf("err = %v, want %v", err, ErrUnsupportedTexture)
			}
			if dev.texturesCreated != 0 {
				t.Error("unsupported texture was built")
			}
		})
	}
}

func TestFindOrCreateTextureFeatureGated(t *testing.T) {
	dev := newCountingDevice()
	p, err := NewResourceProvider(dev, caps.New(featuresOf(gputypes.FeatureBGRA8UnormStorage)))
	if err != nil {
		t.Fatal(err)
	}
	info := texture.Info{
		Spec: texture.Spec{
			Format: gputypes.TextureFormatBGRA8Unorm,
			Usage:  gputypes.TextureUsageStorageBinding,
		},
	}
	if _, err := p.FindOrCreateTexture(4, 4, info, reskey.ShareableNo); err != nil {
		t.Errorf("storage BGRA8 with feature: %v", err)
	}
}

func TestFindOrCreateTextureBuildError(t *testing.T) {
	p, dev := newTestProvider(t)
	errOOM := errors.New("out of memory")
	dev.textureErr = errOOM

	if _, err := p.FindOrCreateTexture(8, 8, sampledRGBA(), reskey.ShareableYes); !errors.Is(err, errOOM) {
		t.Fatalf("err = %v, want %v", err, errOOM)
	}

	dev.textureErr = nil
	if _, err := p.FindOrCreateTexture(8, 8, sampledRGBA(), reskey.ShareableYes); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if dev.texturesCreated != 1 {
		t.Errorf("CreateTexture succeeded %d times, want 1", dev.texturesCreated)
	}
}

func TestFindOrCreateSampler(t *testing.T) {
	p, dev := newTestProvider(t, WithLabel("ui"))
	desc := reskey.SamplerDesc{
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
	}

	a, err := p.FindOrCreateSampler(desc)
	if err != nil {
		t.Fatalf("FindOrCreateSampler: %v", err)
	}
	same := desc
	b, err := p.FindOrCreateSampler(same)
	if err != nil {
		t.Fatalf("FindOrCreateSampler: %v", err)
	}
	if a != b {
		t.Error("equal descriptors returned different samplers")
	}
	if dev.samplersCreated != 1 {
		t.Errorf("CreateSampler called %d times, want 1", dev.samplersCreated)
	}
	if dev.lastSampler.Label != "ui sampler" {
		t.Errorf("Label = %q, want %q", dev.lastSampler.Label, "ui sampler")
	}

	desc.MagFilter = gputypes.FilterModeNearest
	if _, err := p.FindOrCreateSampler(desc); err != nil {
		t.Fatal(err)
	}
	if dev.samplersCreated != 2 {
		t.Errorf("CreateSampler called %d times, want 2", dev.samplersCreated)
	}
	if s := p.Stats().Samplers; s.Hits != 1 || s.Builds != 2 {
		t.Errorf("sampler stats = %+v, want 1 hit and 2 builds", s)
	}
}

func TestFindOrCreateGraphicsPipeline(t *testing.T) {
	f := &countingFactory{}
	p, _ := newTestProvider(t, WithPipelineFactory(f))
	desc := reskey.GraphicsPipelineDesc{RenderStepID: 3, PaintParamsID: 5}

	a, err := p.FindOrCreateGraphicsPipeline(desc, msaaTarget())
	if err != nil {
		t.Fatalf("FindOrCreateGraphicsPipeline: %v", err)
	}

	// A different clear color does not need a different pipeline.
	rp := msaaTarget()
	rp.ClearColor = gputypes.Color{}
	b, err := p.FindOrCreateGraphicsPipeline(desc, rp)
	if err != nil {
		t.Fatalf("FindOrCreateGraphicsPipeline: %v", err)
	}
	if a != b || f.builds != 1 {
		t.Errorf("builds = %d, same pipeline = %v; want 1 build, same pipeline", f.builds, a == b)
	}

	desc.PaintParamsID = reskey.InvalidPaintParamsID
	if _, err := p.FindOrCreateGraphicsPipeline(desc, rp); err != nil {
		t.Fatal(err)
	}
	if f.builds != 2 {
		t.Errorf("builds = %d, want 2", f.builds)
	}
}

func TestPipelineWithoutFactory(t *testing.T) {
	p, _ := newTestProvider(t)
	_, err := p.FindOrCreateGraphicsPipeline(reskey.GraphicsPipelineDesc{}, msaaTarget())
	if !errors.Is(err, ErrNoPipelineFactory) {
		t.Errorf("err = %v, want %v", err, ErrNoPipelineFactory)
	}
	_, err = p.CreatePipelineFromKey(reskey.MakeGraphicsPipelineKey(p.Caps(), reskey.GraphicsPipelineDesc{}, msaaTarget()))
	if !errors.Is(err, ErrNoPipelineFactory) {
		t.Errorf("err = %v, want %v", err, ErrNoPipelineFactory)
	}
}

func TestCreatePipelineFromKey(t *testing.T) {
	f := &countingFactory{}
	p, _ := newTestProvider(t, WithPipelineFactory(f))
	desc := reskey.GraphicsPipelineDesc{RenderStepID: 11, PaintParamsID: 22}
	key := reskey.MakeGraphicsPipelineKey(p.Caps(), desc, msaaTarget())

	got, err := p.CreatePipelineFromKey(key)
	if err != nil {
		t.Fatalf("CreatePipelineFromKey: %v", err)
	}
	tp := got.(*testPipeline)
	if tp.desc != desc {
		t.Errorf("factory got desc %+v, want %+v", tp.desc, desc)
	}
	if !tp.rp.RequiresMSAA() || tp.rp.ColorAttachment.Info.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("factory got render pass %+v", tp.rp)
	}
	if tp.rp.ClearColor != reskey.DecodedClearColor {
		t.Errorf("decoded ClearColor = %v, want %v", tp.rp.ClearColor, reskey.DecodedClearColor)
	}

	// The same key, built directly, hits the cache.
	again, err := p.FindOrCreateGraphicsPipeline(desc, msaaTarget())
	if err != nil {
		t.Fatal(err)
	}
	if again != got || f.builds != 1 {
		t.Errorf("builds = %d, want 1", f.builds)
	}

	if _, err := p.CreatePipelineFromKey(reskey.MakeSamplerKey(reskey.SamplerDesc{})); !errors.Is(err, reskey.ErrWrongDomain) {
		t.Errorf("err = %v, want %v", err, reskey.ErrWrongDomain)
	}
}

func TestTrimTextures(t *testing.T) {
	p, dev := newTestProvider(t)
	for w := uint32(1); w <= 4; w++ {
		if _, err := p.FindOrCreateTexture(w, 1, sampledRGBA(), reskey.ShareableYes); err != nil {
			t.Fatal(err)
		}
	}
	// Touch the first texture so the second is the oldest.
	if _, err := p.FindOrCreateTexture(1, 1, sampledRGBA(), reskey.ShareableYes); err != nil {
		t.Fatal(err)
	}

	if n := p.TrimTextures(2); n != 2 {
		t.Errorf("TrimTextures(2) = %d, want 2", n)
	}
	if dev.texturesDestroyed != 2 {
		t.Errorf("DestroyTexture called %d times, want 2", dev.texturesDestroyed)
	}

	created := dev.texturesCreated
	_, _ = p.FindOrCreateTexture(1, 1, sampledRGBA(), reskey.ShareableYes)
	if dev.texturesCreated != created {
		t.Error("recently used texture was trimmed")
	}
	_, _ = p.FindOrCreateTexture(2, 1, sampledRGBA(), reskey.ShareableYes)
	if dev.texturesCreated != created+1 {
		t.Error("least recently used texture survived the trim")
	}
}

func TestRelease(t *testing.T) {
	f := &countingFactory{}
	p, dev := newTestProvider(t, WithPipelineFactory(f))

	_, _ = p.FindOrCreateTexture(8, 8, sampledRGBA(), reskey.ShareableYes)
	_, _ = p.FindOrCreateSampler(reskey.SamplerDesc{})
	_, _ = p.FindOrCreateGraphicsPipeline(reskey.GraphicsPipelineDesc{}, msaaTarget())

	p.Release()
	p.Release()

	if dev.texturesDestroyed != 1 || dev.samplersDestroyed != 1 || dev.pipelinesDestroyed != 1 {
		t.Errorf("destroyed textures/samplers/pipelines = %d/%d/%d, want 1/1/1",
			dev.texturesDestroyed, dev.samplersDestroyed, dev.pipelinesDestroyed)
	}
	if s := p.Stats(); s.Textures.Len != 0 || s.Samplers.Len != 0 || s.Pipelines.Len != 0 {
		t.Errorf("caches not empty after Release: %+v", s)
	}
	if _, err := p.FindOrCreateTexture(8, 8, sampledRGBA(), reskey.ShareableYes); !errors.Is(err, ErrReleased) {
		t.Errorf("err = %v, want %v", err, ErrReleased)
	}
}

// contextProvider is a gpucontext.DeviceProvider backed by HAL objects.
type contextProvider struct {
	device  gpucontext.Device
	adapter gpucontext.Adapter
}

func (c contextProvider) Device() gpucontext.Device   { return c.device }
func (c contextProvider) Queue() gpucontext.Queue     { return nil }
func (c contextProvider) Adapter() gpucontext.Adapter { return c.adapter }
func (c contextProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}
func (c contextProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

// wrappedProvider exposes its device only through HalDevice.
type wrappedProvider struct {
	contextProvider
	halDevice hal.Device
}

func (w wrappedProvider) HalDevice() any { return w.halDevice }

func TestNewResourceProviderFromContext(t *testing.T) {
	dev := newCountingDevice()
	features := featuresOf(gputypes.FeatureFloat32Filterable)

	p, err := NewResourceProviderFromContext(contextProvider{device: dev, adapter: &noop.Adapter{}}, features,
		WithCapsOptions(caps.WithMaxSampleCount(8)))
	if err != nil {
		t.Fatalf("NewResourceProviderFromContext: %v", err)
	}
	if p.Device() != hal.Device(dev) {
		t.Error("provider does not use the context device")
	}
	if p.Caps().Features() != features {
		t.Errorf("Features() = %v, want %v", p.Caps().Features(), features)
	}
	if got := p.Caps().MaxSampleCount(); got != 8 {
		t.Errorf("MaxSampleCount() = %d, want 8", got)
	}
	if !p.Caps().FormatInfo(gputypes.TextureFormatR32Float).Flags.Has(caps.FormatFilterable) {
		t.Error("feature-gated filterability missing")
	}
}

func TestNewResourceProviderFromContextHalDevice(t *testing.T) {
	dev := newCountingDevice()
	p, err := NewResourceProviderFromContext(wrappedProvider{halDevice: dev}, 0)
	if err != nil {
		t.Fatalf("NewResourceProviderFromContext: %v", err)
	}
	if p.Device() != hal.Device(dev) {
		t.Error("provider does not use the HalDevice")
	}
}

func TestNewResourceProviderFromContextWithoutHAL(t *testing.T) {
	_, err := NewResourceProviderFromContext(contextProvider{device: struct{}{}}, 0)
	if !errors.Is(err, ErrNilDevice) {
		t.Errorf("err = %v, want %v", err, ErrNilDevice)
	}
	if _, err := NewResourceProviderFromContext(nil, 0); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil provider: err = %v, want %v", err, ErrNilDevice)
	}
}
