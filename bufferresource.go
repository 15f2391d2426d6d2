package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// BufferResource is a buffer based resource, for example a vertex buffer,
// index buffer or UBO, sub-allocated from a BufferResourcePool.
type BufferResource struct {
	Buffer
	ResourcePool    *BufferResourcePool
	Allocation      *Allocation
	StagingResource *BufferResource
}

// VKMappedMemoryRange is the range of pool memory backing this buffer
func (r *BufferResource) VKMappedMemoryRange() vk.MappedMemoryRange {
	return vk.MappedMemoryRange{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: r.ResourcePool.Memory.VKDeviceMemory,
		Offset: vk.DeviceSize(r.Allocation.Offset),
		Size:   vk.DeviceSize(r.Allocation.Size),
	}
}

// RequiresStaging indicates the buffer lives in memory the host cannot map,
// so it must be filled from a staging buffer.
func (r *BufferResource) RequiresStaging() bool {
	return r.ResourcePool.NeedsStaging
}

func (r *BufferResource) String() string {
	return fmt.Sprintf("%s %s", r.Buffer.String(), r.Allocation)
}

// AllocateStagingResource allocates a buffer from the manager's staging pool
// large enough to stage this resource. It is released by FreeStagingResource
// or Free.
func (r *BufferResource) AllocateStagingResource() error {
	if !r.ResourcePool.NeedsStaging {
		return fmt.Errorf("resource does not require staging")
	}
	if r.StagingResource != nil {
		return nil
	}
	stagingPool := r.ResourcePool.ResourceManager.GetStagingPool()
	if stagingPool == nil {
		return fmt.Errorf("no %q pool has been allocated for staging resources", StagingPoolName)
	}
	var err error
	r.StagingResource, err = stagingPool.AllocateBuffer(r.Buffer.Size, vk.BufferUsageTransferSrcBit)
	return err
}

func (r *BufferResource) FreeStagingResource() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
}

// Upload copies data into the buffer. Buffers which require staging get the
// data written to their staging resource, the caller must then record
// CmdCopyBufferFromStagedResource and submit it.
func (r *BufferResource) Upload(data []byte) error {
	if uint64(len(data)) > r.Buffer.Size {
		return fmt.Errorf("uploading %d bytes into a %d byte buffer", len(data), r.Buffer.Size)
	}
	target := r
	if r.RequiresStaging() {
		if err := r.AllocateStagingResource(); err != nil {
			return err
		}
		target = r.StagingResource
	}
	if err := target.ResourcePool.Map(); err != nil {
		return err
	}
	b, err := target.Bytes()
	if err != nil {
		return err
	}
	copy(b, data)
	return nil
}

// CmdCopyBufferFromStagedResource records a copy of the whole staging
// resource into the buffer. Offsets are relative to each buffer, which are
// already bound at their allocation offsets.
func (c *CommandBuffer) CmdCopyBufferFromStagedResource(resource *BufferResource) error {
	if resource.StagingResource == nil {
		return fmt.Errorf("no staging resource has been allocated")
	}
	vk.CmdCopyBuffer(c.VK(), resource.StagingResource.VKBuffer, resource.VKBuffer, 1, []vk.BufferCopy{{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(resource.Buffer.Size),
	}})
	return nil
}

// Bytes returns the mapped memory of this buffer, which can be read from or
// copied to. The pool memory must be mapped.
func (r *BufferResource) Bytes() ([]byte, error) {
	if r.RequiresStaging() {
		return nil, fmt.Errorf("resource requires staging")
	}
	return r.ResourcePool.Memory.Bytes(r.Allocation.Offset, r.Buffer.Size)
}

func (r *BufferResource) Destroy() {
	r.Free()
}

// Free this resource and its staging resource
func (r *BufferResource) Free() {
	r.FreeStagingResource()
	if r.Allocation != nil {
		r.ResourcePool.free(r.Allocation)
		r.Allocation = nil
	}
	if r.Buffer.VKBuffer != vk.NullBuffer {
		r.Buffer.Destroy()
	}
}
