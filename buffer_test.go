package vkg

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestUsageToString(t *testing.T) {
	cases := []struct {
		usage vk.BufferUsageFlagBits
		want  string
	}{
		{0, "none"},
		{vk.BufferUsageVertexBufferBit, "vertex"},
		{vk.BufferUsageTransferDstBit | vk.BufferUsageIndexBufferBit, "transfer-dst|index"},
	}
	for _, c := range cases {
		if got := usageToString(c.usage); got != c.want {
			t.Errorf("usageToString(%#x) = %q, want %q", uint32(c.usage), got, c.want)
		}
	}
}
