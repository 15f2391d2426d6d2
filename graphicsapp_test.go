package vkg

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestFrameSubmitInfo(t *testing.T) {
	var wait, done vk.Semaphore

	info := frameSubmitInfo(wait, []vk.Semaphore{done}, &CommandBuffer{})
	if info.WaitSemaphoreCount != 1 || len(info.PWaitSemaphores) != 1 || len(info.PWaitDstStageMask) != 1 {
		t.Fatalf("wait = %d %d %d", info.WaitSemaphoreCount, len(info.PWaitSemaphores), len(info.PWaitDstStageMask))
	}
	if info.PWaitDstStageMask[0] != vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit) {
		t.Errorf("wait stage = %v", info.PWaitDstStageMask[0])
	}
	if info.SignalSemaphoreCount != 1 || info.CommandBufferCount != 1 || len(info.PCommandBuffers) != 1 {
		t.Errorf("signal %d buffers %d", info.SignalSemaphoreCount, info.CommandBufferCount)
	}

	// releasing an acquired image only consumes the wait
	info = frameSubmitInfo(wait, nil)
	if info.WaitSemaphoreCount != 1 {
		t.Errorf("release waits on %d semaphores", info.WaitSemaphoreCount)
	}
	if info.SignalSemaphoreCount != 0 || info.PSignalSemaphores != nil {
		t.Errorf("release signals %d semaphores", info.SignalSemaphoreCount)
	}
	if info.CommandBufferCount != 0 || info.PCommandBuffers != nil {
		t.Errorf("release submits %d buffers", info.CommandBufferCount)
	}
}
