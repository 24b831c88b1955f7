package loader

import "unsafe"

func regionBase(region []byte) uintptr {
	return uintptr(unsafe.Pointer(&region[0]))
}

func regionBytes(base uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
}
