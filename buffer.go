package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// Buffer are used to map hunks of data that are then bound to resources used by the pipeline
// and command buffers to render data.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
	Usage    vk.BufferUsageFlagBits
}

func (d *Device) CreateBufferWithOptions(sizeInBytes uint64, usage vk.BufferUsageFlagBits, sharing vk.SharingMode) (*Buffer, error) {
	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: sharing,
	}

	var buffer vk.Buffer
	err := vk.Error(vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer))
	if err != nil {
		return nil, err
	}

	return &Buffer{VKBuffer: buffer, Device: d, Size: sizeInBytes, Usage: usage}, nil
}

// VKMemoryRequirements returns the dereferenced memory requirements of the buffer
func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &memoryRequirements)
	memoryRequirements.Deref()
	return memoryRequirements
}

func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return vk.Error(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)))
}

func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
	b.VKBuffer = vk.NullBuffer
}

func (b *Buffer) String() string {
	return usageToString(b.Usage)
}

func usageToString(usage vk.BufferUsageFlagBits) string {
	names := []struct {
		bit  vk.BufferUsageFlagBits
		name string
	}{
		{vk.BufferUsageTransferSrcBit, "transfer-src"},
		{vk.BufferUsageTransferDstBit, "transfer-dst"},
		{vk.BufferUsageUniformBufferBit, "uniform"},
		{vk.BufferUsageStorageBufferBit, "storage"},
		{vk.BufferUsageIndexBufferBit, "index"},
		{vk.BufferUsageVertexBufferBit, "vertex"},
	}
	s := ""
	for _, n := range names {
		if usage&n.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}
