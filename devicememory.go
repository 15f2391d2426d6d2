package vkg

import (
	"fmt"
	"sync"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory maps to Vulkan DeviceMemory and can either be memory on the host or on the device.
// Host visible memory may be mapped once, the mapping is shared by every
// resource sub-allocated from it.
type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64

	mu  sync.Mutex
	Ptr unsafe.Pointer
}

// IsMapped returns true if the device memory is currently mapped
func (d *DeviceMemory) IsMapped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Ptr != nil
}

// Destroy unmaps and frees this memory
func (d *DeviceMemory) Destroy() {
	d.Unmap()
	vk.FreeMemory(d.Device.VKDevice, d.VKDeviceMemory, nil)
}

// Map maps the entirety of this memory. Mapping memory which is already
// mapped returns the existing mapping.
func (d *DeviceMemory) Map() (unsafe.Pointer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Ptr != nil {
		return d.Ptr, nil
	}
	var res unsafe.Pointer
	err := vk.Error(vk.MapMemory(d.Device.VKDevice, d.VKDeviceMemory, 0, vk.DeviceSize(d.Size), 0, &res))
	if err != nil {
		return nil, fmt.Errorf("mapping device memory: %w", err)
	}
	d.Ptr = res
	return res, nil
}

// Bytes returns size bytes of the mapping starting at offset. The memory must
// be mapped.
func (d *DeviceMemory) Bytes(offset, size uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Ptr == nil {
		return nil, fmt.Errorf("device memory is not mapped")
	}
	if offset+size > d.Size {
		return nil, fmt.Errorf("range [%d, %d) outside of %d bytes of device memory", offset, offset+size, d.Size)
	}
	return unsafe.Slice((*byte)(unsafe.Add(d.Ptr, offset)), size), nil
}

// Unmap this memory, it is a no-op if the memory is not mapped
func (d *DeviceMemory) Unmap() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Ptr == nil {
		return
	}
	vk.UnmapMemory(d.Device.VKDevice, d.VKDeviceMemory)
	d.Ptr = nil
}
