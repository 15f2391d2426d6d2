package vkg

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestSafeString(t *testing.T) {
	cases := map[string]string{
		"":                            "\x00",
		"main":                        "main\x00",
		"main\x00":                    "main\x00",
		"VK_LAYER_KHRONOS_validation": "VK_LAYER_KHRONOS_validation\x00",
	}
	for in, want := range cases {
		if got := safeString(in); got != want {
			t.Errorf("safeString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeStringsDoesNotModifyInput(t *testing.T) {
	in := []string{"a", "b"}
	out := safeStrings(in)
	if in[0] != "a" || out[0] != "a\x00" {
		t.Errorf("in=%q out=%q", in, out)
	}
}

func TestIndexSliceBytes(t *testing.T) {
	i16 := IndexSliceUint16{1, 2, 3}
	if len(i16.Bytes()) != 6 {
		t.Errorf("uint16 indices: %d bytes, want 6", len(i16.Bytes()))
	}
	if i16.IndexType() != vk.IndexTypeUint16 {
		t.Error("wrong index type for uint16")
	}

	i32 := IndexSliceUint32{1, 2, 3}
	if len(i32.Bytes()) != 12 {
		t.Errorf("uint32 indices: %d bytes, want 12", len(i32.Bytes()))
	}

	if IndexSliceUint16(nil).Bytes() != nil {
		t.Error("empty slice should produce no bytes")
	}
}
