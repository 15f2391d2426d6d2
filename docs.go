/*
Package vkg implements an abstraction atop the Vulkan graphics framework for go. Vulkan is a very
powerful graphics framework, but it is difficult and verbose to use. This package provides
utility functions and objects which make Vulkan a little more palatable to gophers, while
exposing the native structures (every field prefixed with 'VK') so applications are never
limited by what the package wraps.

Native Vulkan terms

	Instance	the vulkan runtime instance
	PhysicalDevice	the physical hardware device
	Device		a logical device, the target of most of the vulkan apis
	Pipeline	a description of how to process data on the GPU
	Queue		a queue which command buffers may be submitted to
	DeviceMemory	an allocation of memory on the host or device used by buffers and images
	Buffer		a description of some bit of data (vertex, index, or other)
	Image		a description of some image, possibly with several layers
	ImageView	a way of describing how an image is viewed, for example as a cube
	DescriptorSet	a mapping of data for use by shaders
	Swapchain	a grouping of images which are used to display graphical data

A graphics application built on this package roughly does:

 1. Create a window and hand it to a GraphicsApp with SetWindow
 2. Init the app, which picks a device, queues and a command pool
 3. Allocate memory pools from the ResourceManager, including a staging pool
 4. Allocate buffers and images from the pools and upload data, images and
    device local buffers are filled through the staging pool
 5. Register GraphicsPipelineConfigs and a MakeCommandBuffer callback
 6. PrepareToDraw, then call DrawFrameSync once per frame

# Concurrency

Queue and the resource pools are safe for concurrent use, so a loader
goroutine may allocate and upload resources with its own CommandPool through
Device.RunOneTime while the main goroutine keeps drawing frames. Everything
else, GraphicsApp included, belongs to the goroutine that created it.

# Logging

The package logs through a *slog.Logger which is silent until SetLogger is
called.
*/
package vkg
