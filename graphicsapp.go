package vkg

import (
	"fmt"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// FrameLag is the number of frames which may be in flight at once
var FrameLag = 2

// GraphicsApp is a utility object which implements many of the core requirements to
// get to a functioning Vulkan app. It will setup the appropriate devices and do many
// of the necessary preparations to begin drawing.
//
// See https://vulkan-tutorial.com/ for a good walkthrough of what this code does.
type GraphicsApp struct {
	Instance *Instance
	App      *App

	Window    *glfw.Window
	VKSurface vk.Surface

	Device         *Device
	PhysicalDevice *PhysicalDevice

	GraphicsPipelineConfigs map[string]IGraphicsPipelineConfig

	// Generated from GraphicsPipelineConfigs
	GraphicsPipelines map[string]vk.Pipeline

	ResourceManager *ResourceManager

	GraphicsQueue *Queue
	PresentQueue  *Queue
	PipelineCache *PipelineCache

	GraphicsCommandPool *CommandPool
	// GraphicsCommandBuffers holds one command buffer per frame in flight
	GraphicsCommandBuffers []*CommandBuffer

	DefaultNumSwapchainImages int

	// PresentMode is the preferred present mode, FIFO is used when the
	// surface does not support it
	PresentMode vk.PresentMode

	imageAvailable []vk.Semaphore
	renderFinished []vk.Semaphore
	inFlight       []*Fence

	frameIndex int

	screenExtent vk.Extent2D

	Swapchain           *Swapchain
	SwapchainImages     []*Image
	SwapchainImageViews []*ImageView
	DepthImage          *ImageResource
	DepthImageView      *ImageView
	Framebuffers        []vk.Framebuffer

	resized bool

	VKRenderPass vk.RenderPass

	// ConfigureRenderPass is a call back which can be supplied to
	// allow for customization of the render pass
	ConfigureRenderPass func(renderPass *vk.RenderPassCreateInfo)

	// MakeCommandBuffer records the frame drawn into swapchain image
	// imageIndex. The command buffer has already begun recording, it is
	// ended and submitted once MakeCommandBuffer returns.
	MakeCommandBuffer func(command *CommandBuffer, imageIndex int) error
}

// NewGraphicsApp creates a new graphics app with the given name and version
func NewGraphicsApp(name string, version Version) (*GraphicsApp, error) {
	app := &App{Name: name, Version: version}
	p := &GraphicsApp{
		App:         app,
		PresentMode: vk.PresentModeFifo,
	}
	return p, nil
}

// PhysicalDevices returns a list of physical devices
func (p *GraphicsApp) PhysicalDevices() ([]*PhysicalDevice, error) {
	if p.Instance == nil {
		return nil, fmt.Errorf("platform hasn't been initialized yet")
	}
	return p.Instance.PhysicalDevices()
}

// EnableLayer enables a layer, it fails if the layer is not supported
func (p *GraphicsApp) EnableLayer(layer string) error {
	return p.App.EnableLayer(layer)
}

// EnableExtension enables an instance extension, it fails if the extension
// is not supported
func (p *GraphicsApp) EnableExtension(extension string) error {
	return p.App.EnableExtension(extension)
}

// CreateGraphicsPipelineConfig creates a graphic pipeline configuration for customization
func (p *GraphicsApp) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return p.Device.CreateGraphicsPipelineConfig()
}

// AddGraphicsPipelineConfig registers a pipeline config under name, the
// pipeline is built by PrepareToDraw.
func (p *GraphicsApp) AddGraphicsPipelineConfig(name string, config IGraphicsPipelineConfig) {
	if p.GraphicsPipelineConfigs == nil {
		p.GraphicsPipelineConfigs = make(map[string]IGraphicsPipelineConfig)
	}
	p.GraphicsPipelineConfigs[name] = config
}

// EnableDebugging enables the validation layer and debug report extension,
// it must be called before Init.
func (p *GraphicsApp) EnableDebugging() bool {
	if p.Instance != nil {
		return false
	}
	p.App.EnableDebugging()
	return true
}

// NumFramebuffers returns the number of framebuffers that have been created
func (p *GraphicsApp) NumFramebuffers() int {
	return len(p.Framebuffers)
}

// selectDevice picks the first physical device, in preference order, with a
// queue family that can draw to and present on the surface.
func (p *GraphicsApp) selectDevice(physicalDevices []*PhysicalDevice) (*PhysicalDevice, QueueFamilySlice, error) {
	for _, pdevice := range physicalDevices {
		queues, err := pdevice.QueueFamilies()
		if err != nil {
			Logger().Warn("skipping device", "device", pdevice.DeviceName, "error", err)
			continue
		}
		var usable QueueFamilySlice
		if p.VKSurface != vk.NullSurface {
			usable = queues.FilterGraphicsAndPresent(p.VKSurface)
		} else {
			usable = queues.FilterGraphics()
		}
		if len(usable) > 0 {
			return pdevice, usable, nil
		}
		// separate graphics and present families
		if p.VKSurface != vk.NullSurface {
			gq := queues.FilterGraphics()
			pq := queues.FilterPresent(p.VKSurface)
			if len(gq) > 0 && len(pq) > 0 {
				return pdevice, QueueFamilySlice{gq[0], pq[0]}, nil
			}
		}
		Logger().Debug("device has no usable queue families", "device", pdevice.DeviceName)
	}
	return nil, nil, fmt.Errorf("no device can draw to the surface")
}

// Init initializes the graphics app
func (p *GraphicsApp) Init() error {
	var err error

	p.Instance, err = p.App.CreateInstance()
	if err != nil {
		return err
	}

	if p.Window != nil && p.VKSurface == vk.NullSurface {
		surface, err := p.Window.CreateWindowSurface(p.Instance.VKInstance, nil)
		if err != nil {
			return fmt.Errorf("creating window surface: %w", err)
		}
		p.VKSurface = vk.SurfaceFromPointer(surface)
	}

	physicalDevices, err := p.Instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("error getting devices: %w", err)
	}

	pdevice, qfs, err := p.selectDevice(physicalDevices)
	if err != nil {
		return err
	}

	var enabledExtensions []string
	if p.Window != nil {
		enabledExtensions = []string{"VK_KHR_swapchain"}
	}

	ldevice, err := pdevice.CreateLogicalDeviceWithOptions(qfs, &CreateDeviceOptions{
		EnabledExtensions: enabledExtensions,
	})
	if err != nil {
		return fmt.Errorf("unable to create device: %w", err)
	}

	p.Device = ldevice
	p.PhysicalDevice = pdevice
	Logger().Info("using device", "device", pdevice.String())

	// queues are shared by every goroutine, so one Queue value per family
	p.GraphicsQueue = ldevice.GetQueue(qfs[0])
	p.PresentQueue = p.GraphicsQueue
	if len(qfs) > 1 && qfs[1].Index != qfs[0].Index {
		p.PresentQueue = ldevice.GetQueue(qfs[1])
	}

	if p.VKSurface != vk.NullSurface {
		p.DefaultNumSwapchainImages, err = p.Device.DefaultNumSwapchainImages(p.VKSurface)
		if err != nil {
			return err
		}
	}

	p.GraphicsCommandPool, err = p.Device.CreateCommandPool(p.GraphicsQueue.QueueFamily)
	if err != nil {
		return err
	}

	p.ResourceManager = p.Device.CreateResourceManager()

	return nil
}

// SetWindow sets the GLFW window for the graphics app
func (p *GraphicsApp) SetWindow(window *glfw.Window) error {
	if p.Instance != nil {
		return fmt.Errorf("window must be set prior to initialization")
	}

	p.Window = window

	for _, ext := range p.Window.GetRequiredInstanceExtensions() {
		if err := p.EnableExtension(ext); err != nil {
			return fmt.Errorf("extension '%s' required to enable glfw: %w", ext, err)
		}
	}

	p.refreshScreenExtent()

	return nil
}

// PrepareToDraw creates the objects required to start drawing, it must be
// called after Init and after MakeCommandBuffer is set.
func (p *GraphicsApp) PrepareToDraw() error {
	if p.MakeCommandBuffer == nil {
		return fmt.Errorf("no function to make command buffers has been configured")
	}

	var err error
	p.PipelineCache, err = p.Device.CreatePipelineCache()
	if err != nil {
		return err
	}

	if err := p.createSyncObjects(); err != nil {
		return err
	}

	p.GraphicsCommandBuffers, err = p.GraphicsCommandPool.AllocateBuffers(FrameLag, vk.CommandBufferLevelPrimary)
	if err != nil {
		return err
	}

	return p.createSwapchainResources()
}

func (p *GraphicsApp) createSwapchainResources() error {
	if err := p.createSwapchainAndImages(); err != nil {
		return err
	}
	if err := p.createRenderer(); err != nil {
		return err
	}
	if err := p.createGraphicsPipelines(); err != nil {
		return err
	}
	if err := p.createDepthImage(); err != nil {
		return err
	}
	return p.createFramebuffers()
}

func (p *GraphicsApp) destroySwapchainResources() {
	p.destroyFramebuffers()
	p.destroyDepthImage()
	p.destroyGraphicsPipelines()
	p.destroyRenderer()
	p.destroySwapchainAndImages()
}

// waitForFrames waits for every frame in flight and for both queues to go
// idle, without touching queues other goroutines may be submitting to.
func (p *GraphicsApp) waitForFrames() error {
	if err := p.Device.WaitForFences(OneTimeSubmitTimeout, p.inFlight...); err != nil {
		return err
	}
	if err := p.GraphicsQueue.WaitIdle(); err != nil {
		return err
	}
	if p.PresentQueue != p.GraphicsQueue {
		return p.PresentQueue.WaitIdle()
	}
	return nil
}

// recreateSwapchain rebuilds everything sized by the swapchain. It returns
// false if the window currently has no area to draw to.
func (p *GraphicsApp) recreateSwapchain() (bool, error) {
	p.refreshScreenExtent()
	if p.screenExtent.Width == 0 || p.screenExtent.Height == 0 {
		return false, nil
	}

	if err := p.waitForFrames(); err != nil {
		return false, err
	}

	p.destroySwapchainResources()
	if err := p.createSwapchainResources(); err != nil {
		return false, err
	}

	p.resized = false
	return true, nil
}

// Resize is used to signal that the window has changed size
func (p *GraphicsApp) Resize() {
	p.refreshScreenExtent()
	p.resized = true
}

// DrawFrameSync draws a single frame: it waits until the frame slot is free,
// acquires a swapchain image, records through MakeCommandBuffer, submits and
// presents. It returns false without an error when there is nothing to draw
// to, such as a minimized window or an out of date swapchain, the frame is
// then skipped.
func (p *GraphicsApp) DrawFrameSync() (bool, error) {
	if p.resized {
		ok, err := p.recreateSwapchain()
		if !ok || err != nil {
			return false, err
		}
	}

	fence := p.inFlight[p.frameIndex]
	if err := fence.Wait(); err != nil {
		return false, err
	}

	var imageIndex uint32
	res := vk.AcquireNextImage(p.Device.VKDevice, p.Swapchain.VKSwapchain, vk.MaxUint64, p.imageAvailable[p.frameIndex], vk.NullFence, &imageIndex)
	switch res {
	case vk.ErrorOutOfDate:
		p.resized = true
		return false, nil
	case vk.Success, vk.Suboptimal:
	default:
		return false, fmt.Errorf("acquiring swapchain image: %w", vk.Error(res))
	}

	cb := p.GraphicsCommandBuffers[p.frameIndex]
	if err := p.recordFrame(cb, int(imageIndex)); err != nil {
		p.releaseAcquire(fence)
		return false, err
	}

	// only reset once a submission is certain to signal it again
	if err := fence.Reset(); err != nil {
		return false, err
	}

	signalSemaphores := []vk.Semaphore{p.renderFinished[p.frameIndex]}
	submitInfo := []vk.SubmitInfo{frameSubmitInfo(p.imageAvailable[p.frameIndex], signalSemaphores, cb)}

	if err := p.GraphicsQueue.Submit(submitInfo, fence.VKFence); err != nil {
		return false, fmt.Errorf("submitting frame: %w", err)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{p.Swapchain.VKSwapchain},
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    signalSemaphores,
		PImageIndices:      []uint32{imageIndex},
	}

	p.frameIndex = (p.frameIndex + 1) % FrameLag

	res = p.PresentQueue.Present(&presentInfo)
	switch res {
	case vk.Success:
	case vk.ErrorOutOfDate, vk.Suboptimal:
		p.resized = true
	default:
		return true, fmt.Errorf("presenting frame: %w", vk.Error(res))
	}

	return true, nil
}

func (p *GraphicsApp) recordFrame(cb *CommandBuffer, imageIndex int) error {
	if err := cb.Reset(); err != nil {
		return err
	}
	if err := cb.Begin(); err != nil {
		return err
	}
	if err := p.MakeCommandBuffer(cb, imageIndex); err != nil {
		cb.End()
		return err
	}
	return cb.End()
}

// releaseAcquire consumes the image available semaphore of the current
// frame with an empty submission after recording failed, so the slot can
// acquire again. The acquired image is not presented.
func (p *GraphicsApp) releaseAcquire(fence *Fence) {
	if err := fence.Reset(); err != nil {
		Logger().Warn("resetting frame fence", "err", err)
		return
	}
	submitInfo := []vk.SubmitInfo{frameSubmitInfo(p.imageAvailable[p.frameIndex], nil)}
	if err := p.GraphicsQueue.Submit(submitInfo, fence.VKFence); err != nil {
		Logger().Warn("releasing acquired image", "err", err)
	}
}

// frameSubmitInfo waits on wait at color attachment output, runs buffers
// and signals signal.
func frameSubmitInfo(wait vk.Semaphore, signal []vk.Semaphore, buffers ...*CommandBuffer) vk.SubmitInfo {
	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{wait},
		PWaitDstStageMask:  []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
	}
	if len(signal) > 0 {
		info.SignalSemaphoreCount = uint32(len(signal))
		info.PSignalSemaphores = signal
	}
	if len(buffers) > 0 {
		info.CommandBufferCount = uint32(len(buffers))
		info.PCommandBuffers = vkCommandBuffers(buffers)
	}
	return info
}

func (p *GraphicsApp) createGraphicsPipelines() error {
	if len(p.GraphicsPipelineConfigs) == 0 {
		return nil
	}

	names := make([]string, 0, len(p.GraphicsPipelineConfigs))
	configs := make([]vk.GraphicsPipelineCreateInfo, 0, len(p.GraphicsPipelineConfigs))
	for name, gconfig := range p.GraphicsPipelineConfigs {
		config, err := gconfig.VKGraphicsPipelineCreateInfo(p.Swapchain.Extent)
		if err != nil {
			return fmt.Errorf("error generating graphics pipeline config '%s' : %w", name, err)
		}
		config.RenderPass = p.VKRenderPass
		names = append(names, name)
		configs = append(configs, config)
	}

	graphicsPipelines := make([]vk.Pipeline, len(configs))
	err := vk.Error(vk.CreateGraphicsPipelines(p.Device.VKDevice, p.PipelineCache.VKPipelineCache,
		uint32(len(configs)),
		configs,
		nil,
		graphicsPipelines))
	if err != nil {
		return err
	}

	p.GraphicsPipelines = make(map[string]vk.Pipeline, len(names))
	for i, name := range names {
		p.GraphicsPipelines[name] = graphicsPipelines[i]
	}

	return nil
}

func (p *GraphicsApp) destroyGraphicsPipelines() {
	for _, g := range p.GraphicsPipelines {
		vk.DestroyPipeline(p.Device.VKDevice, g, nil)
	}
	p.GraphicsPipelines = nil
}

func (p *GraphicsApp) refreshScreenExtent() {
	if p.Window != nil {
		width, height := p.Window.GetFramebufferSize()
		p.screenExtent = vk.Extent2D{Width: uint32(width), Height: uint32(height)}
	}
}

// GetScreenExtent gets the current screen extents
func (p *GraphicsApp) GetScreenExtent() vk.Extent2D {
	return p.screenExtent
}

// Destroy tears down the graphics application. No other goroutine may be
// using the device.
func (p *GraphicsApp) Destroy() {
	if p.Device == nil {
		if p.Instance != nil {
			p.Instance.Destroy()
		}
		return
	}

	if err := p.Device.WaitIdle(); err != nil {
		Logger().Warn("waiting for device", "error", err)
	}

	if p.Swapchain != nil {
		p.destroySwapchainResources()
	}

	for _, g := range p.GraphicsPipelineConfigs {
		g.Destroy()
	}

	if p.PipelineCache != nil {
		p.PipelineCache.Destroy()
	}

	if p.ResourceManager != nil {
		p.ResourceManager.Destroy()
	}

	p.destroySyncObjects()

	if p.GraphicsCommandPool != nil {
		p.GraphicsCommandPool.Destroy()
	}

	if p.VKSurface != vk.NullSurface {
		vk.DestroySurface(p.Instance.VKInstance, p.VKSurface, nil)
	}

	p.Device.Destroy()

	p.Instance.Destroy()
}

// VKRenderPassCreateInfo creates the render pass info: one cleared color
// attachment which is presented and one cleared D32 depth attachment.
func (p *GraphicsApp) VKRenderPassCreateInfo() vk.RenderPassCreateInfo {
	attachmentDescriptions := []vk.AttachmentDescription{{
		Format:         p.Swapchain.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}, {
		Format:         vk.FormatD32Sfloat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}}

	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDescriptions := []vk.SubpassDescription{{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    1,
		PColorAttachments:       colorAttachments,
		PDepthStencilAttachment: &depthAttachmentRef,
	}}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachmentDescriptions)),
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      subpassDescriptions,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

func (p *GraphicsApp) createRenderer() error {
	renderPassCreateInfo := p.VKRenderPassCreateInfo()

	if p.ConfigureRenderPass != nil {
		p.ConfigureRenderPass(&renderPassCreateInfo)
	}

	var renderPass vk.RenderPass
	err := vk.Error(vk.CreateRenderPass(p.Device.VKDevice, &renderPassCreateInfo, nil, &renderPass))
	if err != nil {
		return err
	}

	p.VKRenderPass = renderPass
	return nil
}

func (p *GraphicsApp) destroyRenderer() {
	vk.DestroyRenderPass(p.Device.VKDevice, p.VKRenderPass, nil)
	p.VKRenderPass = vk.NullRenderPass
}

func (p *GraphicsApp) createSwapchainAndImages() error {
	options := &CreateSwapchainOptions{
		ActualSize:                p.GetScreenExtent(),
		DesiredNumSwapchainImages: p.DefaultNumSwapchainImages,
		PresentMode:               p.PresentMode,
	}

	swapchain, err := p.Device.CreateSwapchain(p.VKSurface, p.GraphicsQueue, p.PresentQueue, options)
	if err != nil {
		return err
	}
	p.Swapchain = swapchain

	images, err := swapchain.GetImages()
	if err != nil {
		return err
	}
	p.SwapchainImages = images

	p.SwapchainImageViews = make([]*ImageView, len(images))
	for i, image := range images {
		view, err := image.CreateImageView()
		if err != nil {
			return err
		}
		p.SwapchainImageViews[i] = view
	}
	return nil
}

func (p *GraphicsApp) destroySwapchainAndImages() {
	for _, views := range p.SwapchainImageViews {
		views.Destroy()
	}
	p.SwapchainImageViews = nil
	// swapchain images are owned by the swapchain
	p.SwapchainImages = nil

	p.Swapchain.Destroy()
	p.Swapchain = nil
}

func (p *GraphicsApp) createDepthImage() error {
	var err error

	p.DepthImage, err = p.ResourceManager.NewImageResourceWithOptions(ImageOptions{
		Extent: p.Swapchain.Extent,
		Format: vk.FormatD32Sfloat,
		Tiling: vk.ImageTilingOptimal,
		Usage:  vk.ImageUsageDepthStencilAttachmentBit,
	}, vk.SharingModeExclusive, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return fmt.Errorf("creating depth image: %w", err)
	}

	p.DepthImageView, err = p.DepthImage.CreateImageViewWithAspectMask(vk.ImageAspectFlags(vk.ImageAspectDepthBit))
	return err
}

func (p *GraphicsApp) destroyDepthImage() {
	if p.DepthImageView != nil {
		p.DepthImageView.Destroy()
		p.DepthImageView = nil
	}
	if p.DepthImage != nil {
		p.DepthImage.Destroy()
		p.DepthImage = nil
	}
}

func (p *GraphicsApp) createFramebuffers() error {
	p.Framebuffers = make([]vk.Framebuffer, len(p.SwapchainImageViews))
	for i, view := range p.SwapchainImageViews {
		attachments := []vk.ImageView{
			view.VKImageView,
			p.DepthImageView.VKImageView,
		}
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      p.VKRenderPass,
			Layers:          1,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           p.Swapchain.Extent.Width,
			Height:          p.Swapchain.Extent.Height,
		}
		err := vk.Error(vk.CreateFramebuffer(p.Device.VKDevice, &fbCreateInfo, nil, &p.Framebuffers[i]))
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *GraphicsApp) destroyFramebuffers() {
	for i := range p.Framebuffers {
		vk.DestroyFramebuffer(p.Device.VKDevice, p.Framebuffers[i], nil)
	}
	p.Framebuffers = nil
}

func (p *GraphicsApp) destroySyncObjects() {
	for _, s := range p.imageAvailable {
		p.Device.VKDestroySemaphore(s)
	}
	for _, s := range p.renderFinished {
		p.Device.VKDestroySemaphore(s)
	}
	for _, f := range p.inFlight {
		f.Destroy()
	}
	p.imageAvailable, p.renderFinished, p.inFlight = nil, nil, nil
}

func (p *GraphicsApp) createSyncObjects() error {
	p.imageAvailable = make([]vk.Semaphore, FrameLag)
	p.renderFinished = make([]vk.Semaphore, FrameLag)
	p.inFlight = make([]*Fence, FrameLag)

	var err error
	for i := 0; i < FrameLag; i++ {
		if p.imageAvailable[i], err = p.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		if p.renderFinished[i], err = p.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		// signaled so the first wait on each frame slot returns at once
		f, err := p.Device.VKCreateFence(true)
		if err != nil {
			return err
		}
		p.inFlight[i] = &Fence{Device: p.Device, VKFence: f}
	}
	p.frameIndex = 0
	return nil
}
