package vkg

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestChoosePresentMode(t *testing.T) {
	cases := []struct {
		name      string
		available VKPresentModes
		preferred vk.PresentMode
		want      vk.PresentMode
	}{
		{"immediate available", VKPresentModes{vk.PresentModeFifo, vk.PresentModeImmediate}, vk.PresentModeImmediate, vk.PresentModeImmediate},
		{"immediate missing", VKPresentModes{vk.PresentModeFifo, vk.PresentModeMailbox}, vk.PresentModeImmediate, vk.PresentModeFifo},
		{"fifo requested", VKPresentModes{vk.PresentModeFifo}, vk.PresentModeFifo, vk.PresentModeFifo},
		{"nothing reported", nil, vk.PresentModeMailbox, vk.PresentModeFifo},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ChoosePresentMode(c.available, c.preferred); got != c.want {
				t.Errorf("got %s, want %s", PresentModeName(got), PresentModeName(c.want))
			}
		})
	}
}

func TestParsePresentMode(t *testing.T) {
	for _, name := range []string{"immediate", "mailbox", "fifo", "fifo_relaxed"} {
		m, err := ParsePresentMode(name)
		if err != nil {
			t.Fatalf("ParsePresentMode(%q): %v", name, err)
		}
		if PresentModeName(m) != name {
			t.Errorf("round trip of %q gave %q", name, PresentModeName(m))
		}
	}
	if _, err := ParsePresentMode("vsync"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestChooseSwapchainExtent(t *testing.T) {
	var caps vk.SurfaceCapabilities
	caps.CurrentExtent = vk.Extent2D{Width: 640, Height: 480}
	if got := chooseSwapchainExtent(&caps, vk.Extent2D{Width: 1, Height: 1}); got.Width != 640 || got.Height != 480 {
		t.Errorf("current extent should win, got %v", got)
	}

	caps.CurrentExtent = vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	caps.MinImageExtent = vk.Extent2D{Width: 100, Height: 100}
	caps.MaxImageExtent = vk.Extent2D{Width: 1000, Height: 1000}
	if got := chooseSwapchainExtent(&caps, vk.Extent2D{Width: 2000, Height: 50}); got.Width != 1000 || got.Height != 100 {
		t.Errorf("window size should be clamped, got %v", got)
	}
}
