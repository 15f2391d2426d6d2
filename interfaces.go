package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// IDestructable is anything owning Vulkan objects which must be released.
type IDestructable interface {
	Destroy()
}

// ByteSourcer is host side data which can be copied into a buffer.
type ByteSourcer interface {
	Bytes() []byte
}

// IndexSourcer is host side index data.
type IndexSourcer interface {
	ByteSourcer
	IndexType() vk.IndexType
}

// VertexDescriptor describes how vertex data is laid out for a pipeline.
type VertexDescriptor interface {
	GetBindingDescription() vk.VertexInputBindingDescription
	GetAttributeDescriptions() []vk.VertexInputAttributeDescription
}

// VertexSourcer is host side vertex data along with its layout.
type VertexSourcer interface {
	ByteSourcer
	VertexDescriptor
}

// IGraphicsPipelineConfig produces the create info for a graphics pipeline.
// GraphicsApp keeps the configs rather than the pipelines so that pipelines
// can be rebuilt when the swapchain changes.
type IGraphicsPipelineConfig interface {
	VKGraphicsPipelineCreateInfo(extent vk.Extent2D) (vk.GraphicsPipelineCreateInfo, error)
	Destroy()
}
