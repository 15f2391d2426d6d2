package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

// CreateImageView creates a color view over every layer of the image, a cube
// view for cube compatible images.
func (i *Image) CreateImageView() (*ImageView, error) {
	return i.CreateImageViewWithAspectMask(vk.ImageAspectFlags(vk.ImageAspectColorBit))
}

func (i *Image) CreateImageViewWithAspectMask(mask vk.ImageAspectFlags) (*ImageView, error) {
	viewType := vk.ImageViewType2d
	switch {
	case i.Cube:
		viewType = vk.ImageViewTypeCube
	case i.Layers > 1:
		viewType = vk.ImageViewType2dArray
	}
	return i.CreateImageViewWithOptions(viewType, mask)
}

func (i *Image) CreateImageViewWithOptions(viewType vk.ImageViewType, mask vk.ImageAspectFlags) (*ImageView, error) {
	layers := i.Layers
	if layers < 1 {
		layers = 1
	}

	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    i.VKImage,
		ViewType: viewType,
		Format:   i.VKFormat,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: mask,
			LevelCount: 1,
			LayerCount: uint32(layers),
		},
	}

	var view vk.ImageView
	err := vk.Error(vk.CreateImageView(i.Device.VKDevice, createInfo, nil, &view))
	if err != nil {
		return nil, err
	}
	return &ImageView{Device: i.Device, VKImageView: view}, nil
}

func (i *ImageView) Destroy() {
	vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
}
