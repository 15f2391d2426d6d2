package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

type Sampler struct {
	Device    *Device
	VKSampler vk.Sampler
}

// CreateSampler creates a linear filtering sampler clamping lookups to the
// edge, which keeps cubemap seams from bleeding.
func (d *Device) CreateSampler() (*Sampler, error) {
	return d.CreateSamplerWithOptions(vk.FilterLinear, vk.SamplerAddressModeClampToEdge)
}

func (d *Device) CreateSamplerWithOptions(filter vk.Filter, addressMode vk.SamplerAddressMode) (*Sampler, error) {
	info := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               filter,
		MinFilter:               filter,
		MipmapMode:              vk.SamplerMipmapModeLinear,
		AddressModeU:            addressMode,
		AddressModeV:            addressMode,
		AddressModeW:            addressMode,
		MaxAnisotropy:           1,
		CompareOp:               vk.CompareOpNever,
		BorderColor:             vk.BorderColorFloatOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
	}

	var sampler vk.Sampler
	err := vk.Error(vk.CreateSampler(d.VKDevice, &info, nil, &sampler))
	if err != nil {
		return nil, err
	}
	return &Sampler{Device: d, VKSampler: sampler}, nil
}

func (s *Sampler) Destroy() {
	vk.DestroySampler(s.Device.VKDevice, s.VKSampler, nil)
}
