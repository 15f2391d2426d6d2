package vkg

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestNeedsStaging(t *testing.T) {
	tests := []struct {
		props vk.MemoryPropertyFlagBits
		want  bool
	}{
		{vk.MemoryPropertyDeviceLocalBit, true},
		{vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit, false},
		{vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, false},
	}
	for _, tc := range tests {
		if got := needsStaging(tc.props); got != tc.want {
			t.Errorf("needsStaging(%v) = %v, want %v", tc.props, got, tc.want)
		}
	}
}

// addBufferPool registers a pool without device memory behind it
func addBufferPool(r *ResourceManager, name string, size uint64, props vk.MemoryPropertyFlagBits) *BufferResourcePool {
	p := &BufferResourcePool{}
	r.initPool(&p.resourcePool, name, size, props, vk.SharingModeExclusive)
	r.bufferPools[name] = p
	return p
}

func TestResourceManagerRegistry(t *testing.T) {
	r := (&Device{}).CreateResourceManager()
	if r.HasStagingPool() {
		t.Fatal("new manager has a staging pool")
	}
	staging := addBufferPool(r, StagingPoolName, 1024, vk.MemoryPropertyHostVisibleBit)
	geometry := addBufferPool(r, "geometry", 1024, vk.MemoryPropertyDeviceLocalBit)

	if r.GetStagingPool() != staging || !r.HasStagingPool() {
		t.Error("staging pool not found")
	}
	if r.BufferPool("geometry") != geometry {
		t.Error("geometry pool not found")
	}
	if !geometry.NeedsStaging || staging.NeedsStaging {
		t.Error("staging requirement not derived from memory properties")
	}
	if r.ImagePool("geometry") != nil {
		t.Error("buffer pool returned as image pool")
	}

	geometry.Destroy()
	if r.BufferPool("geometry") != nil {
		t.Error("destroyed pool still registered")
	}
	r.Destroy()
	if r.HasStagingPool() {
		t.Error("staging pool survived Destroy")
	}
}

func TestResourcePoolAllocate(t *testing.T) {
	r := (&Device{}).CreateResourceManager()
	p := addBufferPool(r, "geometry", 256, vk.MemoryPropertyDeviceLocalBit)

	a, err := p.allocate(100, 64)
	if err != nil {
		t.Fatal(err)
	}
	if p.Used() != 100 {
		t.Errorf("used %d", p.Used())
	}
	if _, err := p.allocate(200, 1); !errors.Is(err, ErrInsufficientPoolSpace) {
		t.Errorf("err = %v, want ErrInsufficientPoolSpace", err)
	}
	p.free(a)
	if p.Used() != 0 {
		t.Errorf("used %d after free", p.Used())
	}
	if err := p.Map(); err == nil {
		t.Error("mapping a device local pool should fail")
	}
}

func TestResourcePoolDestroy(t *testing.T) {
	r := (&Device{}).CreateResourceManager()
	p := addBufferPool(r, "geometry", 256, vk.MemoryPropertyDeviceLocalBit)

	n := 0
	for i := 0; i < 2; i++ {
		a, err := p.allocate(16, 1)
		if err != nil {
			t.Fatal(err)
		}
		a.Object = destroyCounter{&n}
	}
	p.Destroy()
	if n != 2 {
		t.Errorf("destroyed %d resources, want 2", n)
	}
	if _, err := p.allocate(16, 1); err == nil {
		t.Error("allocating from a destroyed pool should fail")
	}
	p.free(&Allocation{})
	if p.Used() != 0 {
		t.Errorf("used %d", p.Used())
	}
}
