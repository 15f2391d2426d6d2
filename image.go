package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Image is a Vulkan image, either owned by the application or by a swapchain.
type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
	Extent   vk.Extent2D
	// Layers is the number of array layers, 6 for a cubemap
	Layers int
	// Cube is set for images created cube compatible
	Cube bool
	// Size is the number of bytes of device memory the image requires
	Size uint64
}

// ImageOptions describes an image to be created
type ImageOptions struct {
	Extent vk.Extent2D
	Format vk.Format
	Tiling vk.ImageTiling
	Usage  vk.ImageUsageFlagBits
	// Layers defaults to 1
	Layers int
	Cube   bool
}

// CubeImageOptions describes a six layer, cube compatible, sampled image with
// square faces of the given size.
func CubeImageOptions(size uint32, format vk.Format) ImageOptions {
	return ImageOptions{
		Extent: vk.Extent2D{Width: size, Height: size},
		Format: format,
		Tiling: vk.ImageTilingOptimal,
		Usage:  vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit,
		Layers: 6,
		Cube:   true,
	}
}

func (o ImageOptions) layers() int {
	if o.Layers < 1 {
		return 1
	}
	return o.Layers
}

func (o ImageOptions) validate() error {
	if o.Extent.Width == 0 || o.Extent.Height == 0 {
		return fmt.Errorf("image extent %dx%d is empty", o.Extent.Width, o.Extent.Height)
	}
	if o.Cube {
		if o.layers()%6 != 0 {
			return fmt.Errorf("cube images need a multiple of 6 layers, got %d", o.layers())
		}
		if o.Extent.Width != o.Extent.Height {
			return fmt.Errorf("cube faces must be square, got %dx%d", o.Extent.Width, o.Extent.Height)
		}
	}
	return nil
}

func (d *Device) CreateImageWithOptions(o ImageOptions) (*Image, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	imageInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  o.Extent.Width,
			Height: o.Extent.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   uint32(o.layers()),
		Format:        o.Format,
		Tiling:        o.Tiling,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(o.Usage),
		Samples:       vk.SampleCount1Bit,
		SharingMode:   vk.SharingModeExclusive,
	}
	if o.Cube {
		imageInfo.Flags = vk.ImageCreateFlags(vk.ImageCreateCubeCompatibleBit)
	}

	var image vk.Image
	err := vk.Error(vk.CreateImage(d.VKDevice, &imageInfo, nil, &image))
	if err != nil {
		return nil, err
	}

	ret := &Image{
		Device:   d,
		VKImage:  image,
		VKFormat: o.Format,
		Extent:   o.Extent,
		Layers:   o.layers(),
		Cube:     o.Cube,
	}
	ret.Size = uint64(ret.VKMemoryRequirements().Size)
	return ret, nil
}

// VKMemoryRequirements returns the dereferenced memory requirements of the image
func (i *Image) VKMemoryRequirements() vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &memRequirements)
	memRequirements.Deref()
	return memRequirements
}

// BytesPerPixel returns the texel size of the formats which can be uploaded
// from host memory.
func BytesPerPixel(format vk.Format) (int, error) {
	switch format {
	case vk.FormatR8g8b8a8Unorm, vk.FormatR8g8b8a8Srgb, vk.FormatB8g8r8a8Unorm, vk.FormatB8g8r8a8Srgb:
		return 4, nil
	case vk.FormatR8Unorm:
		return 1, nil
	case vk.FormatD32Sfloat:
		return 4, nil
	}
	return 0, fmt.Errorf("unsupported upload format %d", format)
}

// LayerBytes is the size of one tightly packed layer of pixel data
func (i *Image) LayerBytes() (uint64, error) {
	bpp, err := BytesPerPixel(i.VKFormat)
	if err != nil {
		return 0, err
	}
	return uint64(i.Extent.Width) * uint64(i.Extent.Height) * uint64(bpp), nil
}

// PixelBytes is the size of every layer of tightly packed pixel data
func (i *Image) PixelBytes() (uint64, error) {
	lb, err := i.LayerBytes()
	if err != nil {
		return 0, err
	}
	return lb * uint64(i.Layers), nil
}

func (i *Image) Destroy() {
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
}

// layerCopyRegions returns one copy region per layer, with layer n read from
// n*layerBytes in the source buffer.
func layerCopyRegions(extent vk.Extent2D, layers int, layerBytes uint64) []vk.BufferImageCopy {
	regions := make([]vk.BufferImageCopy, layers)
	for n := range regions {
		regions[n] = vk.BufferImageCopy{
			BufferOffset: vk.DeviceSize(uint64(n) * layerBytes),
			ImageSubresource: vk.ImageSubresourceLayers{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				MipLevel:       0,
				BaseArrayLayer: uint32(n),
				LayerCount:     1,
			},
			ImageExtent: vk.Extent3D{
				Width: extent.Width, Height: extent.Height, Depth: 1,
			},
		}
	}
	return regions
}

type layoutTransition struct {
	srcAccess, dstAccess vk.AccessFlagBits
	srcStage, dstStage   vk.PipelineStageFlagBits
}

func transitionFor(oldLayout, newLayout vk.ImageLayout) (layoutTransition, error) {
	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		return layoutTransition{
			srcAccess: 0,
			dstAccess: vk.AccessTransferWriteBit,
			srcStage:  vk.PipelineStageTopOfPipeBit,
			dstStage:  vk.PipelineStageTransferBit,
		}, nil
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		return layoutTransition{
			srcAccess: vk.AccessTransferWriteBit,
			dstAccess: vk.AccessShaderReadBit,
			srcStage:  vk.PipelineStageTransferBit,
			dstStage:  vk.PipelineStageFragmentShaderBit,
		}, nil
	}
	return layoutTransition{}, fmt.Errorf("unsupported layout transition %d -> %d", oldLayout, newLayout)
}

// TransitionImageLayout records a barrier moving every layer of img from
// oldLayout to newLayout.
func (cb *CommandBuffer) TransitionImageLayout(img *Image, oldLayout, newLayout vk.ImageLayout) error {
	t, err := transitionFor(oldLayout, newLayout)
	if err != nil {
		return err
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img.VKImage,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     uint32(img.Layers),
		},
		SrcAccessMask: vk.AccessFlags(t.srcAccess),
		DstAccessMask: vk.AccessFlags(t.dstAccess),
	}

	vk.CmdPipelineBarrier(cb.VK(), vk.PipelineStageFlags(t.srcStage), vk.PipelineStageFlags(t.dstStage), 0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
	return nil
}
