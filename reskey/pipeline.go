package reskey

import (
	"github.com/gogpu/gpures/caps"
	"github.com/gogpu/gpures/texture"
)

// InvalidPaintParamsID marks a render step that performs no shading.
const InvalidPaintParamsID = ^uint32(0)

// GraphicsPipelineDesc identifies the shader side of a graphics pipeline.
// Both ids are opaque to this package.
type GraphicsPipelineDesc struct {
	RenderStepID  uint32
	PaintParamsID uint32
}

// HasPaintParams reports whether the pipeline shades its coverage.
func (d GraphicsPipelineDesc) HasPaintParams() bool {
	return d.PaintParamsID != InvalidPaintParamsID
}

// graphicsPipelineKeyWords is the fixed length of pipeline keys: render
// step, paint params, render-pass sub-key and write swizzle.
const graphicsPipelineKeyWords = 4

// MakeGraphicsPipelineKey returns the key of the pipeline that runs desc
// inside a render pass laid out like rp. The key is a pure function of its
// inputs.
func MakeGraphicsPipelineKey(c *caps.Caps, desc GraphicsPipelineDesc, rp RenderPassDesc) ResourceKey {
	return NewBuilder(DomainGraphicsPipeline, graphicsPipelineKeyWords, ShareableYes).
		Add(desc.RenderStepID).
		Add(desc.PaintParamsID).
		Add(MakeRenderPassFields(c, rp).Pack()).
		Add(rp.WriteSwizzle.AsKey()).
		Finish()
}

// ExtractGraphicsDescs decodes a key made by MakeGraphicsPipelineKey.
//
// The pipeline ids, the render-pass fields and the write swizzle are
// recovered exactly. The render pass is otherwise filled with the defaults
// documented on RenderPassFromFields, so re-encoding the result reproduces
// the key.
func ExtractGraphicsDescs(c *caps.Caps, key ResourceKey) (GraphicsPipelineDesc, RenderPassDesc, error) {
	if err := checkKey(key, DomainGraphicsPipeline, graphicsPipelineKeyWords); err != nil {
		return GraphicsPipelineDesc{}, RenderPassDesc{}, err
	}

	rp, err := RenderPassFromFields(c, UnpackRenderPassFields(key.Word(2)))
	if err != nil {
		return GraphicsPipelineDesc{}, RenderPassDesc{}, err
	}
	sw := key.Word(3)
	if sw > 0xFFFF {
		return GraphicsPipelineDesc{}, RenderPassDesc{}, ErrCorruptKey
	}
	rp.WriteSwizzle = texture.Swizzle(sw)

	desc := GraphicsPipelineDesc{
		RenderStepID:  key.Word(0),
		PaintParamsID: key.Word(1),
	}
	return desc, rp, nil
}
