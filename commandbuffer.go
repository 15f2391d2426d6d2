package vkg

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffers describe a sequence of commands that will be executed
// upon being sent to a device queue. Not all available vulkan commands
// are wrapped by this package, callers may use the native vulkan command
// APIs through VK.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// ResetAndRelease will reset this commandbuffer and release the associated resources
func (c *CommandBuffer) ResetAndRelease() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit)))
}

func (c *CommandBuffer) Reset() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

// VK is a utility function for accessing the native vulkan command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// BeginOneTime begins capturing work for a command buffer which will only be
// submitted once.
func (c *CommandBuffer) BeginOneTime() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// CmdBeginRenderPass begins renderpass on framebuffer, covering extent and
// clearing each attachment with the matching clear value.
func (c *CommandBuffer) CmdBeginRenderPass(renderPass vk.RenderPass, framebuffer vk.Framebuffer, extent vk.Extent2D, clearValues []vk.ClearValue) {
	info := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  renderPass,
		Framebuffer: framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(c.VKCommandBuffer, &info, vk.SubpassContentsInline)
}

func (c *CommandBuffer) CmdEndRenderPass() {
	vk.CmdEndRenderPass(c.VKCommandBuffer)
}

func (c *CommandBuffer) CmdBindGraphicsPipeline(p vk.Pipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointGraphics, p)
}

// CmdBindVertexBuffers binds buffers to consecutive bindings starting at 0
func (c *CommandBuffer) CmdBindVertexBuffers(buffers ...*BufferResource) {
	b := make([]vk.Buffer, len(buffers))
	offsets := make([]vk.DeviceSize, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKBuffer
	}
	vk.CmdBindVertexBuffers(c.VKCommandBuffer, 0, uint32(len(b)), b, offsets)
}

func (c *CommandBuffer) CmdBindIndexBuffer(buffer *BufferResource, indexType vk.IndexType) {
	vk.CmdBindIndexBuffer(c.VKCommandBuffer, buffer.VKBuffer, 0, indexType)
}

// CmdPushConstants pushes size bytes starting at data
func (c *CommandBuffer) CmdPushConstants(layout *PipelineLayout, stages vk.ShaderStageFlagBits, offset uint32, size uint32, data unsafe.Pointer) {
	vk.CmdPushConstants(c.VKCommandBuffer, layout.VKPipelineLayout, vk.ShaderStageFlags(stages), offset, size, data)
}

func (c *CommandBuffer) CmdDrawIndexed(indexCount int) {
	vk.CmdDrawIndexed(c.VKCommandBuffer, uint32(indexCount), 1, 0, 0, 0)
}

func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, descriptorSets ...*DescriptorSet) {
	sets := make([]vk.DescriptorSet, len(descriptorSets))
	for i := range descriptorSets {
		sets[i] = descriptorSets[i].VKDescriptorSet
	}

	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(descriptorSets)), sets, 0, nil)
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return vk.Error(vk.EndCommandBuffer(c.VKCommandBuffer))
}
