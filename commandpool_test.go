package vkg

import "testing"

func TestVKCommandBuffers(t *testing.T) {
	bs := []*CommandBuffer{{}, {}, {}}
	if got := vkCommandBuffers(bs); len(got) != 3 {
		t.Fatalf("%d handles", len(got))
	}
	if got := vkCommandBuffers(nil); len(got) != 0 {
		t.Errorf("%d handles for no buffers", len(got))
	}

	// nothing to free must not reach the driver
	var p CommandPool
	p.FreeBuffers(nil)
}
