package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type ImageResource struct {
	Image
	ResourcePool    *ImageResourcePool
	Allocation      *Allocation
	StagingResource *BufferResource
	// IndividualPool is set when the resource owns its pool
	IndividualPool bool
}

// NewImageResourceWithOptions creates an image resource backed by its own
// dedicated allocation, used for attachments such as depth buffers.
func (r *ResourceManager) NewImageResourceWithOptions(o ImageOptions, sharing vk.SharingMode, mprops vk.MemoryPropertyFlagBits) (*ImageResource, error) {
	img, err := r.Device.CreateImageWithOptions(o)
	if err != nil {
		return nil, err
	}

	mr := img.VKMemoryRequirements()
	memory, err := r.Device.Allocate(uint64(mr.Size), mr.MemoryTypeBits, mprops)
	if err != nil {
		img.Destroy()
		return nil, err
	}

	err = vk.Error(vk.BindImageMemory(r.Device.VKDevice, img.VKImage, memory.VKDeviceMemory, 0))
	if err != nil {
		memory.Destroy()
		img.Destroy()
		return nil, err
	}

	pool := &ImageResourcePool{Usage: o.Usage}
	pool.Device = r.Device
	pool.ResourceManager = r
	pool.Sharing = sharing
	pool.MemoryProperties = mprops
	pool.Size = uint64(mr.Size)
	pool.Memory = memory

	return &ImageResource{
		Image:          *img,
		ResourcePool:   pool,
		IndividualPool: true,
	}, nil
}

// RequiresStaging indicates the image must be filled from a staging buffer
func (r *ImageResource) RequiresStaging() bool {
	return r.ResourcePool.NeedsStaging
}

// AllocateStagingResource allocates a staging buffer holding every layer of
// tightly packed pixel data.
func (r *ImageResource) AllocateStagingResource() error {
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
	size, err := r.PixelBytes()
	if err != nil {
		return err
	}
	r.StagingResource, err = stagingPool.AllocateBuffer(size, vk.BufferUsageTransferSrcBit)
	return err
}

func (r *ImageResource) FreeStagingResource() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
}

func (r *ImageResource) String() string {
	return fmt.Sprintf("image %dx%dx%d %s", r.Extent.Width, r.Extent.Height, r.Layers, r.Allocation)
}

func (r *ImageResource) Destroy() {
	r.Free()
}

// Free this resource and its associated resources
func (r *ImageResource) Free() {
	r.FreeStagingResource()
	if r.VKImage != vk.NullImage {
		r.Image.Destroy()
		r.VKImage = vk.NullImage
	}
	if r.IndividualPool && r.ResourcePool != nil {
		r.ResourcePool.Destroy()
		r.ResourcePool = nil
	} else if r.Allocation != nil {
		r.ResourcePool.free(r.Allocation)
		r.Allocation = nil
	}
}

// StageImageResource records a copy of every layer from the staging buffer
// into the image, which must be in the transfer destination layout.
func (cb *CommandBuffer) StageImageResource(img *ImageResource) error {
	if img.StagingResource == nil {
		return fmt.Errorf("no staging resource has been allocated")
	}
	layerBytes, err := img.LayerBytes()
	if err != nil {
		return err
	}
	regions := layerCopyRegions(img.Extent, img.Layers, layerBytes)
	vk.CmdCopyBufferToImage(cb.VK(), img.StagingResource.VKBuffer, img.VKImage, vk.ImageLayoutTransferDstOptimal, uint32(len(regions)), regions)
	return nil
}
