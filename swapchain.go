package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	PresentMode vk.PresentMode
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

func (s *Swapchain) GetImages() ([]*Image, error) {
	var imageCount uint32
	err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil))
	if err != nil {
		return nil, err
	}

	swapchainImages := make([]vk.Image, imageCount)
	err = vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, swapchainImages))
	if err != nil {
		return nil, err
	}

	ret := make([]*Image, imageCount)
	for i := range swapchainImages {
		ret[i] = &Image{
			Device:   s.Device,
			VKImage:  swapchainImages[i],
			VKFormat: s.Format,
			Extent:   s.Extent,
			Layers:   1,
		}
	}
	return ret, nil
}

type CreateSwapchainOptions struct {
	OldSwapchain              *Swapchain
	ActualSize                vk.Extent2D
	DesiredNumSwapchainImages int
	// PresentMode is the preferred present mode, FIFO is used when the
	// surface does not support it
	PresentMode vk.PresentMode
}

// ChoosePresentMode returns preferred if it is available, otherwise FIFO
// which every surface must support.
func ChoosePresentMode(available VKPresentModes, preferred vk.PresentMode) vk.PresentMode {
	if available.Contains(preferred) {
		return preferred
	}
	return vk.PresentModeFifo
}

// chooseSwapchainExtent uses the surface's current extent unless the surface
// lets the swapchain decide, in which case the window size is clamped to
// the supported range.
func chooseSwapchainExtent(caps *vk.SurfaceCapabilities, actual vk.Extent2D) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(actual.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(actual.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if hi != 0 && v > hi {
		return hi
	}
	return v
}

func (p *Device) DefaultNumSwapchainImages(surface vk.Surface) (int, error) {
	caps, err := p.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return 0, err
	}
	n := caps.MinImageCount + 1
	if caps.MaxImageCount != 0 && n > caps.MaxImageCount {
		n = caps.MaxImageCount
	}
	return int(n), nil
}

func (p *Device) CreateSwapchain(surface vk.Surface, graphicsQueue, presentQueue *Queue, options *CreateSwapchainOptions) (*Swapchain, error) {
	if options == nil {
		options = &CreateSwapchainOptions{PresentMode: vk.PresentModeFifo}
	}

	modes, err := p.PhysicalDevice.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}
	presentMode := ChoosePresentMode(modes, options.PresentMode)

	formats, err := p.PhysicalDevice.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}

	format := formats[0]
	format.Deref()
	if preferred := formats.Filter(func(f vk.SurfaceFormat) bool {
		return f.Format == vk.FormatB8g8r8a8Unorm
	}); len(preferred) > 0 {
		format = preferred[0]
	}

	caps, err := p.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}

	swapchainSize := chooseSwapchainExtent(caps, options.ActualSize)
	if swapchainSize.Width == 0 || swapchainSize.Height == 0 {
		return nil, fmt.Errorf("cannot create a %dx%d swapchain", swapchainSize.Width, swapchainSize.Height)
	}

	desiredSwapChainImages := options.DesiredNumSwapchainImages
	if desiredSwapChainImages == 0 {
		desiredSwapChainImages, err = p.DefaultNumSwapchainImages(surface)
		if err != nil {
			return nil, err
		}
	}

	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    uint32(desiredSwapChainImages),
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      swapchainSize,
		PresentMode:      presentMode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
		ImageSharingMode: vk.SharingModeExclusive,
	}

	if options.OldSwapchain != nil {
		createInfo.OldSwapchain = options.OldSwapchain.VKSwapchain
	}

	if graphicsQueue.QueueFamily.Index != presentQueue.QueueFamily.Index {
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{uint32(graphicsQueue.QueueFamily.Index), uint32(presentQueue.QueueFamily.Index)}
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
	}

	var swapchain vk.Swapchain
	err = vk.Error(vk.CreateSwapchain(p.VKDevice, createInfo, nil, &swapchain))
	if err != nil {
		return nil, err
	}

	Logger().Info("swapchain created",
		"width", swapchainSize.Width,
		"height", swapchainSize.Height,
		"images", desiredSwapChainImages,
		"presentMode", PresentModeName(presentMode))

	return &Swapchain{
		VKSwapchain: swapchain,
		Device:      p,
		Extent:      swapchainSize,
		Format:      format.Format,
		PresentMode: presentMode,
	}, nil
}

// PresentModeName returns the lower case name of a present mode as used in
// configuration files.
func PresentModeName(m vk.PresentMode) string {
	switch m {
	case vk.PresentModeImmediate:
		return "immediate"
	case vk.PresentModeMailbox:
		return "mailbox"
	case vk.PresentModeFifo:
		return "fifo"
	case vk.PresentModeFifoRelaxed:
		return "fifo_relaxed"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// ParsePresentMode is the inverse of PresentModeName
func ParsePresentMode(name string) (vk.PresentMode, error) {
	for _, m := range []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeMailbox, vk.PresentModeFifo, vk.PresentModeFifoRelaxed} {
		if PresentModeName(m) == name {
			return m, nil
		}
	}
	return vk.PresentModeFifo, fmt.Errorf("unknown present mode %q", name)
}
