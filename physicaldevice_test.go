package vkg

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func fakeDevice(name string, t vk.PhysicalDeviceType) *PhysicalDevice {
	p := &PhysicalDevice{DeviceName: name}
	p.VKPhysicalDeviceProperties.DeviceType = t
	return p
}

func TestSortPhysicalDevices(t *testing.T) {
	devices := []*PhysicalDevice{
		fakeDevice("llvmpipe", vk.PhysicalDeviceTypeCpu),
		fakeDevice("intel", vk.PhysicalDeviceTypeIntegratedGpu),
		fakeDevice("nvidia", vk.PhysicalDeviceTypeDiscreteGpu),
		fakeDevice("amd", vk.PhysicalDeviceTypeDiscreteGpu),
	}

	SortPhysicalDevices(devices)

	want := []string{"nvidia", "amd", "intel", "llvmpipe"}
	for i, d := range devices {
		if d.DeviceName != want[i] {
			t.Errorf("position %d: got %s, want %s", i, d.DeviceName, want[i])
		}
	}
}

func TestPresentModesContains(t *testing.T) {
	modes := VKPresentModes{vk.PresentModeFifo, vk.PresentModeMailbox}
	if !modes.Contains(vk.PresentModeMailbox) {
		t.Error("expected mailbox to be found")
	}
	if modes.Contains(vk.PresentModeImmediate) {
		t.Error("immediate is not in the list")
	}
}
