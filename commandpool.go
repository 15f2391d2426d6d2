package vkg

import (
	"fmt"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// CommandPool allocates command buffers for one queue family. A pool and the
// buffers allocated from it must only be used by one goroutine at a time.
type CommandPool struct {
	Device        *Device
	QueueFamily   *QueueFamily
	VKCommandPool vk.CommandPool
}

func (c *CommandPool) Destroy() {
	vk.DestroyCommandPool(c.Device.VKDevice, c.VKCommandPool, nil)
}

func (c *CommandPool) AllocateBuffers(count int, level vk.CommandBufferLevel) ([]*CommandBuffer, error) {
	commandBufferAllocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.VKCommandPool,
		Level:              level,
		CommandBufferCount: uint32(count),
	}

	cmdBuffers := make([]vk.CommandBuffer, count)

	err := vk.Error(vk.AllocateCommandBuffers(c.Device.VKDevice, &commandBufferAllocateInfo, cmdBuffers))
	if err != nil {
		return nil, err
	}

	ret := make([]*CommandBuffer, count)
	for i := range ret {
		ret[i] = &CommandBuffer{VKCommandBuffer: cmdBuffers[i]}
	}

	return ret, nil
}

func (c *CommandPool) AllocateBuffer(level vk.CommandBufferLevel) (*CommandBuffer, error) {
	ret, err := c.AllocateBuffers(1, level)
	if err != nil {
		return nil, err
	}
	return ret[0], nil
}

func vkCommandBuffers(bs []*CommandBuffer) []vk.CommandBuffer {
	b := make([]vk.CommandBuffer, len(bs))
	for i := range bs {
		b[i] = bs[i].VKCommandBuffer
	}
	return b
}

func (c *CommandPool) FreeBuffers(bs []*CommandBuffer) {
	if len(bs) == 0 {
		return
	}
	vk.FreeCommandBuffers(c.Device.VKDevice, c.VKCommandPool, uint32(len(bs)), vkCommandBuffers(bs))
}

func (c *CommandPool) FreeBuffer(b *CommandBuffer) {
	c.FreeBuffers([]*CommandBuffer{b})
}

func (d *Device) CreateCommandPool(q *QueueFamily) (*CommandPool, error) {
	commandPoolCreateInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit | vk.CommandPoolCreateTransientBit),
		QueueFamilyIndex: uint32(q.Index),
	}

	var commandPool vk.CommandPool
	err := vk.Error(vk.CreateCommandPool(d.VKDevice, &commandPoolCreateInfo, nil, &commandPool))
	if err != nil {
		return nil, err
	}

	return &CommandPool{Device: d, QueueFamily: q, VKCommandPool: commandPool}, nil
}

// OneTimeSubmitTimeout bounds how long RunOneTime waits for its work
var OneTimeSubmitTimeout = 30 * time.Second

// RunOneTime records a one time command buffer from pool with record,
// submits it to queue and waits on a fence for it to complete. Only the
// fence is waited on, so other goroutines may keep using the queue.
func (d *Device) RunOneTime(pool *CommandPool, queue *Queue, record func(cb *CommandBuffer) error) error {
	cb, err := pool.AllocateBuffer(vk.CommandBufferLevelPrimary)
	if err != nil {
		return fmt.Errorf("allocating one time command buffer: %w", err)
	}
	defer pool.FreeBuffer(cb)

	if err := cb.BeginOneTime(); err != nil {
		return err
	}
	if err := record(cb); err != nil {
		cb.End()
		return err
	}
	if err := cb.End(); err != nil {
		return err
	}

	f, err := d.CreateFence()
	if err != nil {
		return err
	}
	defer f.Destroy()

	if err := queue.SubmitWithFence(f, cb); err != nil {
		return fmt.Errorf("submitting one time command buffer: %w", err)
	}
	return d.WaitForFences(OneTimeSubmitTimeout, f)
}
