package vkg

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestGraphicsPipelineConfigDefaults(t *testing.T) {
	g := defaultGraphicsPipelineConfig(nil)
	g.ShaderStages = []vk.PipelineShaderStageCreateInfo{{Stage: vk.ShaderStageVertexBit}}

	info, err := g.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 640, Height: 480})
	if err != nil {
		t.Fatal(err)
	}
	if info.PRasterizationState.CullMode != vk.CullModeFlags(vk.CullModeBackBit) {
		t.Error("default cull mode should be back")
	}
	if info.PDepthStencilState.DepthTestEnable != vk.True || info.PDepthStencilState.DepthWriteEnable != vk.True {
		t.Error("depth testing and writing should default on")
	}
	vp := info.PViewportState.PViewports[0]
	if vp.Width != 640 || vp.Height != 480 || vp.MaxDepth != 1 {
		t.Errorf("viewport = %+v", vp)
	}
	if info.PColorBlendState.AttachmentCount != 1 || info.PColorBlendState.PAttachments[0].BlendEnable != vk.False {
		t.Error("default blend should be a single opaque attachment")
	}
}

func TestGraphicsPipelineConfigSetters(t *testing.T) {
	g := defaultGraphicsPipelineConfig(nil).
		SetCullMode(vk.CullModeNone).
		SetFrontFace(vk.FrontFaceClockwise).
		SetDepth(true, false)
	g.ShaderStages = []vk.PipelineShaderStageCreateInfo{{Stage: vk.ShaderStageVertexBit}}

	configured := false
	g.Configure = func(info *vk.GraphicsPipelineCreateInfo) {
		configured = true
		info.Subpass = 0
	}

	info, err := g.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 1, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !configured {
		t.Error("Configure was not called")
	}
	if info.PRasterizationState.CullMode != vk.CullModeFlags(vk.CullModeNone) {
		t.Error("cull mode not applied")
	}
	if info.PRasterizationState.FrontFace != vk.FrontFaceClockwise {
		t.Error("front face not applied")
	}
	if info.PDepthStencilState.DepthWriteEnable != vk.False {
		t.Error("depth write should be disabled")
	}
}

func TestGraphicsPipelineConfigNeedsShaders(t *testing.T) {
	g := defaultGraphicsPipelineConfig(nil)
	if _, err := g.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 1, Height: 1}); err == nil {
		t.Error("expected an error without shader stages")
	}
}
