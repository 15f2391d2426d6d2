package vkg

import (
	"unsafe"
)

const end = "\x00"

// ToBytes will take an unsafe.Pointer and length in bytes and convert it
// to a byte slice
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	return unsafe.Slice((*byte)(ptr), lenInBytes)
}

// safeString null terminates s for handing to the Vulkan C API
func safeString(s string) string {
	if len(s) == 0 || s[len(s)-1] != end[0] {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	ret := make([]string, len(list))
	for i := range list {
		ret[i] = safeString(list[i])
	}
	return ret
}
