package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSet is a binding of resources to a descriptor, per a specific DescriptorSetLayout
type DescriptorSet struct {
	Device               *Device
	DescriptorPool       *DescriptorPool
	VKDescriptorSet      vk.DescriptorSet
	VKWriteDiscriptorSet []vk.WriteDescriptorSet
}

// AddCombinedImageSampler queues a write of an image view and sampler to
// dstBinding. The view must be in layout when the set is used.
func (du *DescriptorSet) AddCombinedImageSampler(dstBinding int, layout vk.ImageLayout, view *ImageView, sampler *Sampler) *DescriptorSet {
	du.VKWriteDiscriptorSet = append(du.VKWriteDiscriptorSet, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		PImageInfo: []vk.DescriptorImageInfo{{
			ImageView:   view.VKImageView,
			ImageLayout: layout,
			Sampler:     sampler.VKSampler,
		}},
	})
	return du
}

// Write applies the queued writes to the descriptor set
func (du *DescriptorSet) Write() {
	for i := range du.VKWriteDiscriptorSet {
		du.VKWriteDiscriptorSet[i].DstSet = du.VKDescriptorSet
	}
	vk.UpdateDescriptorSets(du.Device.VKDevice, uint32(len(du.VKWriteDiscriptorSet)), du.VKWriteDiscriptorSet, 0, nil)
	du.VKWriteDiscriptorSet = nil
}
