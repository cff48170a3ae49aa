package vulkanengine

import (
	"strings"
	"unsafe"
)

const end = "\x00"

// ToBytes will take an unsafe.Pointer and length in bytes and convert it
// to a byte slice
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	if ptr == nil || lenInBytes == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), lenInBytes)
}

// safeString returns s NUL terminated, as vulkan-go expects for C strings.
func safeString(s string) string {
	if strings.HasSuffix(s, end) {
		return s
	}
	return s + end
}

// safeStrings returns a NUL terminated copy of list, leaving list untouched.
func safeStrings(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	ret := make([]string, len(list))
	for i := range list {
		ret[i] = safeString(list[i])
	}
	return ret
}

// trimNul strips the terminators some window libraries append to names.
func trimNul(s string) string {
	return strings.TrimRight(s, end)
}
