package vkg

import (
	"fmt"

	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

// Device is a logical device created from a PhysicalDevice, most of the
// Vulkan API hangs off of it.
type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

// WaitIdle waits for every queue of the device. Callers must make sure no
// other goroutine is submitting to a queue at the same time.
func (d *Device) WaitIdle() error {
	return vk.Error(vk.DeviceWaitIdle(d.VKDevice))
}

// GetQueue returns the first queue of the given family.
func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{QueueFamily: qf, Device: d, VKQueue: vkq}
}

// Allocate allocates a single block of device memory from the first memory
// type matching memoryTypeBits and memoryProperties.
func (d *Device) Allocate(sizeInBytes uint64, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlagBits) (*DeviceMemory, error) {
	memoryType, err := d.PhysicalDevice.FindMemoryType(memoryTypeBits, memoryProperties)
	if err != nil {
		return nil, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(sizeInBytes),
		MemoryTypeIndex: memoryType,
	}

	var deviceMemory vk.DeviceMemory
	err = vk.Error(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory))
	if err != nil {
		return nil, fmt.Errorf("allocating %s of device memory: %w", units.BytesSize(float64(sizeInBytes)), err)
	}

	Logger().Debug("allocated device memory", "size", units.BytesSize(float64(sizeInBytes)), "type", memoryType)

	return &DeviceMemory{Size: sizeInBytes, Device: d, VKDeviceMemory: deviceMemory}, nil
}
