package vkg

import (
	"fmt"

	units "github.com/docker/go-units"
)

// Allocation is a region of a larger block of device memory handed out by an
// IAllocator.
type Allocation struct {
	Offset uint64
	Size   uint64
	// Object is the resource bound to this allocation, if any
	Object IDestructable
}

func (a *Allocation) String() string {
	return fmt.Sprintf("[%d %d]", a.Offset, a.Size)
}

// End returns the first offset past this allocation
func (a *Allocation) End() uint64 {
	return a.Offset + a.Size
}

// IAllocator sub-allocates a fixed size block of memory. Implementations are
// not safe for concurrent use, the owning pool serializes access.
type IAllocator interface {
	Allocate(size uint64, align uint64) *Allocation
	Free(a *Allocation)
	// DestroyContents destroys every object still holding an allocation
	DestroyContents()
	// Used reports the number of bytes currently handed out
	Used() uint64
	LogDetails()
}

// LinearAllocator is a first fit allocator which keeps its allocations sorted
// by offset.
type LinearAllocator struct {
	Size   uint64
	allocs []*Allocation
}

func makeAlignUp(a uint64, align uint64) uint64 {
	if align <= 1 {
		return a
	}
	m := a % align
	if m == 0 {
		return a
	}
	return (a - m) + align
}

// Allocate returns nil if no gap large enough remains.
func (p *LinearAllocator) Allocate(size uint64, align uint64) *Allocation {
	if size == 0 || size > p.Size {
		Logger().Debug("allocation does not fit pool", "size", units.BytesSize(float64(size)), "pool", units.BytesSize(float64(p.Size)))
		return nil
	}

	var start uint64
	for i, a := range p.allocs {
		if a.Offset >= start && a.Offset-start >= size {
			na := &Allocation{Offset: start, Size: size}
			p.allocs = append(p.allocs[:i], append([]*Allocation{na}, p.allocs[i:]...)...)
			return na
		}
		start = makeAlignUp(a.End(), align)
	}

	if start <= p.Size && p.Size-start >= size {
		na := &Allocation{Offset: start, Size: size}
		p.allocs = append(p.allocs, na)
		return na
	}
	return nil
}

func (p *LinearAllocator) Free(fa *Allocation) {
	for i, a := range p.allocs {
		if a == fa {
			p.allocs = append(p.allocs[:i], p.allocs[i+1:]...)
			return
		}
	}
}

func (p *LinearAllocator) DestroyContents() {
	allocs := p.allocs
	p.allocs = nil
	for _, a := range allocs {
		if a.Object != nil {
			a.Object.Destroy()
		}
	}
}

func (p *LinearAllocator) Used() uint64 {
	var used uint64
	for _, a := range p.allocs {
		used += a.Size
	}
	return used
}

func (p *LinearAllocator) LogDetails() {
	Logger().Debug("linear allocator",
		"size", units.BytesSize(float64(p.Size)),
		"used", units.BytesSize(float64(p.Used())),
		"allocations", len(p.allocs))
}

func (p *LinearAllocator) String() string {
	return fmt.Sprintf("%v", p.allocs)
}
