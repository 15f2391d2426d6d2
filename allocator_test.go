package vkg

import (
	"testing"
)

func TestAlign(t *testing.T) {
	cases := []struct {
		in, align, want uint64
	}{
		{12, 3, 12},
		{10, 3, 12},
		{0, 256, 0},
		{1, 256, 256},
		{7, 0, 7},
		{7, 1, 7},
	}
	for _, c := range cases {
		if got := makeAlignUp(c.in, c.align); got != c.want {
			t.Errorf("makeAlignUp(%d, %d) = %d, want %d", c.in, c.align, got, c.want)
		}
	}
}

func TestAllocator(t *testing.T) {
	a := &LinearAllocator{Size: 1024}

	if ra := a.Allocate(2048, 1); ra != nil {
		t.Error("allocation larger than the pool should fail")
	}

	first := a.Allocate(512, 1)
	if first == nil || first.Offset != 0 {
		t.Fatalf("first allocation = %v, want offset 0", first)
	}

	if ra := a.Allocate(768, 1); ra != nil {
		t.Error("768 bytes should not fit in the remaining 512")
	}

	second := a.Allocate(500, 1)
	if second == nil || second.Offset != 512 {
		t.Fatalf("second allocation = %v, want offset 512", second)
	}

	if ra := a.Allocate(50, 1); ra != nil {
		t.Error("50 bytes should not fit in the remaining 12")
	}

	if ra := a.Allocate(5, 1); ra == nil {
		t.Error("5 bytes should fit in the remaining 12")
	}

	a.Free(second)
	if ra := a.Allocate(500, 1); ra == nil || ra.Offset != 512 {
		t.Errorf("expected freed gap to be reused, got %v", ra)
	}

	a.Free(first)
	head := a.Allocate(20, 1)
	if head == nil || head.Offset != 0 {
		t.Fatalf("expected allocation at head, got %v", head)
	}
	next := a.Allocate(40, 1)
	if next == nil || next.Offset != 20 {
		t.Errorf("expected allocation after head, got %v", next)
	}

	if used := a.Used(); used != 20+40+500+5 {
		t.Errorf("Used() = %d", used)
	}
}

func TestAllocatorAlignment(t *testing.T) {
	a := &LinearAllocator{Size: 1024}

	a.Allocate(10, 256)
	b := a.Allocate(10, 256)
	if b == nil || b.Offset != 256 {
		t.Fatalf("expected aligned offset 256, got %v", b)
	}

	c := a.Allocate(600, 256)
	if c != nil {
		t.Errorf("600 bytes at offset 512 should not fit, got %v", c)
	}
	c = a.Allocate(500, 256)
	if c == nil || c.Offset != 512 {
		t.Errorf("expected offset 512, got %v", c)
	}
}

type destroyCounter struct{ n *int }

func (d destroyCounter) Destroy() { *d.n++ }

func TestAllocatorDestroyContents(t *testing.T) {
	a := &LinearAllocator{Size: 64}
	n := 0
	for i := 0; i < 3; i++ {
		al := a.Allocate(8, 1)
		al.Object = destroyCounter{&n}
	}
	a.DestroyContents()
	if n != 3 {
		t.Errorf("destroyed %d objects, want 3", n)
	}
	if a.Used() != 0 {
		t.Errorf("allocator should be empty, used %d", a.Used())
	}
}
