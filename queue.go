package vkg

import (
	"fmt"
	"sync"

	vk "github.com/vulkan-go/vulkan"
)

// Queue is a device queue. Vulkan requires host access to a queue to be
// externally synchronized, so every submission goes through mu. The same
// Queue value is shared by every goroutine using the queue.
type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue

	mu sync.Mutex
}

func (q *Queue) WaitIdle() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return vk.Error(vk.QueueWaitIdle(q.VKQueue))
}

// Submit submits the submit infos, signaling fence (which may be nil) when
// the work completes.
func (q *Queue) Submit(submitInfo []vk.SubmitInfo, fence vk.Fence) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return vk.Error(vk.QueueSubmit(q.VKQueue, uint32(len(submitInfo)), submitInfo, fence))
}

// SubmitWithFence submits the command buffers as a single batch
func (q *Queue) SubmitWithFence(fence *Fence, buffers ...*CommandBuffer) error {
	b := vkCommandBuffers(buffers)

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(b)),
		PCommandBuffers:    b,
	}

	var f vk.Fence = vk.NullFence
	if fence != nil {
		f = fence.VKFence
	}
	return q.Submit([]vk.SubmitInfo{submitInfo}, f)
}

// Present queues an image for presentation and returns the raw result so
// callers can react to out of date or suboptimal swapchains.
func (q *Queue) Present(presentInfo *vk.PresentInfo) vk.Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	return vk.QueuePresent(q.VKQueue, presentInfo)
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device.String(), q.QueueFamily.String())
}
