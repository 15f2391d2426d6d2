package vkg

import (
	"fmt"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

func (d *Device) VKDestroyFence(f vk.Fence) {
	vk.DestroyFence(d.VKDevice, f, nil)
}

func (d *Device) VKCreateFence(signaled bool) (vk.Fence, error) {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	var fence vk.Fence
	err := vk.Error(vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence))
	if err != nil {
		return vk.NullFence, err
	}
	return fence, nil
}

// CreateFence creates an unsignaled fence
func (d *Device) CreateFence() (*Fence, error) {
	fence, err := d.VKCreateFence(false)
	if err != nil {
		return nil, err
	}
	return &Fence{VKFence: fence, Device: d}, nil
}

// WaitForFences waits until all fences are signaled or the timeout elapses.
func (d *Device) WaitForFences(timeout time.Duration, fences ...*Fence) error {
	f := make([]vk.Fence, len(fences))
	for i := range fences {
		f[i] = fences[i].VKFence
	}
	res := vk.WaitForFences(d.VKDevice, uint32(len(f)), f, vk.True, uint64(timeout.Nanoseconds()))
	if res == vk.Timeout {
		return fmt.Errorf("fence not signaled after %s", timeout)
	}
	return vk.Error(res)
}

// Wait blocks until this fence is signaled
func (f *Fence) Wait() error {
	return vk.Error(vk.WaitForFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}, vk.True, vk.MaxUint64))
}

// Reset returns the fence to the unsignaled state
func (f *Fence) Reset() error {
	return vk.Error(vk.ResetFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}))
}

func (f *Fence) Destroy() {
	f.Device.VKDestroyFence(f.VKFence)
}
