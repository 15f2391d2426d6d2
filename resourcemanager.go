package vkg

import (
	"errors"
	"fmt"
	"sync"

	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

const StagingPoolName = "staging"

// ErrInsufficientPoolSpace is returned when a pool has no gap large enough
// for an allocation.
var ErrInsufficientPoolSpace = errors.New("insufficient storage space in resource pool")

// needsStaging reports whether memory with the given properties can only be
// filled through a transfer from a host visible staging buffer.
func needsStaging(mprops vk.MemoryPropertyFlagBits) bool {
	return mprops&vk.MemoryPropertyDeviceLocalBit != 0 && mprops&vk.MemoryPropertyHostVisibleBit == 0
}

// resourcePool is the state shared by buffer and image pools: one block of
// device memory carved up by an allocator. Pools are safe for concurrent
// use.
type resourcePool struct {
	Device           *Device
	Name             string
	Sharing          vk.SharingMode
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Memory           *DeviceMemory
	NeedsStaging     bool
	ResourceManager  *ResourceManager

	mu        sync.Mutex
	allocator IAllocator
}

func (p *resourcePool) allocate(size, align uint64) (*Allocation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.allocator == nil {
		return nil, fmt.Errorf("resource pool %q has been destroyed", p.Name)
	}
	a := p.allocator.Allocate(size, align)
	if a == nil {
		return nil, fmt.Errorf("allocating %s from pool %q: %w", units.BytesSize(float64(size)), p.Name, ErrInsufficientPoolSpace)
	}
	return a, nil
}

func (p *resourcePool) free(a *Allocation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.allocator != nil {
		p.allocator.Free(a)
	}
}

// Used reports the bytes currently allocated from the pool
func (p *resourcePool) Used() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.allocator == nil {
		return 0
	}
	return p.allocator.Used()
}

// Map maps the memory backing the pool. Pools which need staging are never
// host visible.
func (p *resourcePool) Map() error {
	if p.NeedsStaging {
		return fmt.Errorf("resource pool %q is not host visible", p.Name)
	}
	_, err := p.Memory.Map()
	return err
}

func (p *resourcePool) destroy() {
	p.mu.Lock()
	a := p.allocator
	p.allocator = nil
	p.mu.Unlock()

	// resources free themselves back into the pool, which must not be locked
	if a != nil {
		a.DestroyContents()
	}
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
}

func (p *resourcePool) logDetails(kind string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	Logger().Debug("resource pool",
		"kind", kind,
		"name", p.Name,
		"size", units.BytesSize(float64(p.Size)),
		"staging", p.NeedsStaging)
	if p.allocator != nil {
		p.allocator.LogDetails()
	}
}

type ImageResourcePool struct {
	resourcePool
	Usage vk.ImageUsageFlagBits
}

type BufferResourcePool struct {
	resourcePool
	Usage vk.BufferUsageFlagBits
}

// AllocateImage creates an image and binds it to memory sub-allocated from
// the pool.
func (p *ImageResourcePool) AllocateImage(o ImageOptions) (*ImageResource, error) {
	i, err := p.Device.CreateImageWithOptions(o)
	if err != nil {
		return nil, err
	}

	mr := i.VKMemoryRequirements()
	allocation, err := p.allocate(uint64(mr.Size), uint64(mr.Alignment))
	if err != nil {
		i.Destroy()
		return nil, err
	}

	err = vk.Error(vk.BindImageMemory(p.Device.VKDevice, i.VKImage, p.Memory.VKDeviceMemory, vk.DeviceSize(allocation.Offset)))
	if err != nil {
		p.free(allocation)
		i.Destroy()
		return nil, err
	}

	img := &ImageResource{
		Image:        *i,
		Allocation:   allocation,
		ResourcePool: p,
	}
	allocation.Object = img

	return img, nil
}

func (p *ImageResourcePool) LogDetails() {
	p.logDetails("image")
}

func (p *ImageResourcePool) Destroy() {
	p.destroy()
	p.ResourceManager.forgetImagePool(p)
}

// AllocateFor allocates a buffer sized for src, with vertex or index usage
// depending on what src is.
func (p *BufferResourcePool) AllocateFor(src ByteSourcer) (*BufferResource, error) {
	switch src.(type) {
	case VertexSourcer:
		return p.AllocateBuffer(uint64(len(src.Bytes())), vk.BufferUsageVertexBufferBit)
	case IndexSourcer:
		return p.AllocateBuffer(uint64(len(src.Bytes())), vk.BufferUsageIndexBufferBit)
	}
	return nil, fmt.Errorf("unknown buffer object type %T", src)
}

func (p *BufferResourcePool) AllocateBuffer(size uint64, usage vk.BufferUsageFlagBits) (*BufferResource, error) {
	if p.NeedsStaging {
		usage |= vk.BufferUsageTransferDstBit
	}

	buffer, err := p.Device.CreateBufferWithOptions(size, usage, p.Sharing)
	if err != nil {
		return nil, err
	}

	mr := buffer.VKMemoryRequirements()
	allocation, err := p.allocate(uint64(mr.Size), uint64(mr.Alignment))
	if err != nil {
		buffer.Destroy()
		return nil, err
	}

	if err := buffer.Bind(p.Memory, allocation.Offset); err != nil {
		p.free(allocation)
		buffer.Destroy()
		return nil, err
	}

	ret := &BufferResource{
		Buffer:       *buffer,
		Allocation:   allocation,
		ResourcePool: p,
	}
	allocation.Object = ret

	return ret, nil
}

func (p *BufferResourcePool) LogDetails() {
	p.logDetails(usageToString(p.Usage))
}

func (p *BufferResourcePool) Destroy() {
	p.destroy()
	p.ResourceManager.forgetBufferPool(p)
}

// ResourceManager owns the named memory pools resources are allocated from.
// Vulkan limits the number of live memory allocations, so resources are
// sub-allocated from a few large pools instead.
type ResourceManager struct {
	Device *Device

	mu          sync.Mutex
	bufferPools map[string]*BufferResourcePool
	imagePools  map[string]*ImageResourcePool
}

func (d *Device) CreateResourceManager() *ResourceManager {
	return &ResourceManager{
		Device:      d,
		bufferPools: make(map[string]*BufferResourcePool),
		imagePools:  make(map[string]*ImageResourcePool),
	}
}

func (r *ResourceManager) forgetImagePool(p *ImageResourcePool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.imagePools[p.Name] == p {
		delete(r.imagePools, p.Name)
	}
}

func (r *ResourceManager) forgetBufferPool(p *BufferResourcePool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bufferPools[p.Name] == p {
		delete(r.bufferPools, p.Name)
	}
}

func (r *ResourceManager) GetStagingPool() *BufferResourcePool {
	return r.BufferPool(StagingPoolName)
}

func (r *ResourceManager) HasStagingPool() bool {
	return r.GetStagingPool() != nil
}

// AllocateDeviceTexturePool allocates device local memory for sampled images
func (r *ResourceManager) AllocateDeviceTexturePool(name string, size uint64) (*ImageResourcePool, error) {
	return r.AllocateImagePoolWithOptions(name, size, vk.MemoryPropertyDeviceLocalBit, vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit, vk.SharingModeExclusive)
}

func (r *ResourceManager) AllocateImagePoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.ImageUsageFlagBits, sharing vk.SharingMode) (*ImageResourcePool, error) {
	p := &ImageResourcePool{Usage: usage}
	r.initPool(&p.resourcePool, name, size, mprops, sharing)
	if p.NeedsStaging {
		usage |= vk.ImageUsageTransferDstBit
	}

	// a throwaway image tells us which memory types images with this usage accept
	probe, err := r.Device.CreateImageWithOptions(ImageOptions{
		Extent: vk.Extent2D{Width: 1, Height: 1},
		Format: vk.FormatR8g8b8a8Unorm,
		Tiling: vk.ImageTilingOptimal,
		Usage:  usage,
	})
	if err != nil {
		return nil, err
	}
	defer probe.Destroy()

	memory, err := r.Device.Allocate(size, probe.VKMemoryRequirements().MemoryTypeBits, mprops)
	if err != nil {
		return nil, err
	}
	p.Memory = memory

	r.mu.Lock()
	r.imagePools[name] = p
	r.mu.Unlock()

	return p, nil
}

func (r *ResourceManager) initPool(p *resourcePool, name string, size uint64, mprops vk.MemoryPropertyFlagBits, sharing vk.SharingMode) {
	p.Device = r.Device
	p.Name = name
	p.Sharing = sharing
	p.MemoryProperties = mprops
	p.Size = size
	p.NeedsStaging = needsStaging(mprops)
	p.ResourceManager = r
	p.allocator = &LinearAllocator{Size: size}
}

func (r *ResourceManager) AllocateStagingPool(size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(StagingPoolName, size, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, vk.BufferUsageTransferSrcBit, vk.SharingModeExclusive)
}

func (r *ResourceManager) AllocateHostVertexAndIndexBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit, vk.SharingModeExclusive)
}

// AllocateDeviceVertexAndIndexBufferPool allocates device local memory for
// geometry, filled through the staging pool.
func (r *ResourceManager) AllocateDeviceVertexAndIndexBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size, vk.MemoryPropertyDeviceLocalBit, vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit, vk.SharingModeExclusive)
}

func (r *ResourceManager) AllocateBufferPoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.BufferUsageFlagBits, sharing vk.SharingMode) (*BufferResourcePool, error) {
	p := &BufferResourcePool{Usage: usage}
	r.initPool(&p.resourcePool, name, size, mprops, sharing)
	if p.NeedsStaging {
		usage |= vk.BufferUsageTransferDstBit
	}

	probe, err := r.Device.CreateBufferWithOptions(size, usage, sharing)
	if err != nil {
		return nil, err
	}
	defer probe.Destroy()

	memory, err := r.Device.Allocate(size, probe.VKMemoryRequirements().MemoryTypeBits, mprops)
	if err != nil {
		return nil, err
	}
	p.Memory = memory

	r.mu.Lock()
	r.bufferPools[name] = p
	r.mu.Unlock()

	return p, nil
}

func (r *ResourceManager) snapshot() ([]*BufferResourcePool, []*ImageResourcePool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bps := make([]*BufferResourcePool, 0, len(r.bufferPools))
	for _, p := range r.bufferPools {
		bps = append(bps, p)
	}
	ips := make([]*ImageResourcePool, 0, len(r.imagePools))
	for _, p := range r.imagePools {
		ips = append(ips, p)
	}
	return bps, ips
}

func (r *ResourceManager) Destroy() {
	bps, ips := r.snapshot()
	for _, p := range ips {
		p.Destroy()
	}
	// staging goes last, image and buffer resources free their staging buffers
	var staging *BufferResourcePool
	for _, p := range bps {
		if p.Name == StagingPoolName {
			staging = p
			continue
		}
		p.Destroy()
	}
	if staging != nil {
		staging.Destroy()
	}
}

func (r *ResourceManager) LogDetails() {
	bps, ips := r.snapshot()
	for _, p := range bps {
		p.LogDetails()
	}
	for _, p := range ips {
		p.LogDetails()
	}
}

func (r *ResourceManager) ImagePool(name string) *ImageResourcePool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.imagePools[name]
}

func (r *ResourceManager) BufferPool(name string) *BufferResourcePool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferPools[name]
}
