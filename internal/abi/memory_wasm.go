//go:build wasip1

package abi

import (
	"sync"
	"unsafe"
)

// MaxLiveBytes caps the memory the SDK will hand out to the host. SAORI
// buffers are short request/response texts; anything near this limit is a
// runaway plugin.
const MaxLiveBytes = 16 * 1024 * 1024

// buffers pins every slice handed to the host so the Go GC cannot move or
// collect it before the host has read it back.
var buffers = struct {
	sync.Mutex
	live  map[uint32][]byte
	total int
}{live: make(map[uint32][]byte)}

// allocate reserves linear memory the host can write into and returns its
// address. Exported so the host can stage request buffers before calling an
// entry point.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	buffers.Lock()
	defer buffers.Unlock()

	// An exported entry point must not trap the host's call, so a cap
	// breach reports failure as a null address instead of panicking.
	if buffers.total+int(size) > MaxLiveBytes {
		return 0
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	buffers.live[ptr] = buf
	buffers.total += int(size)
	return ptr
}

// deallocate releases a buffer previously returned by allocate. Unknown
// addresses are ignored so a double free stays harmless.
//
//go:wasmexport deallocate
func deallocate(ptr uint32) {
	buffers.Lock()
	defer buffers.Unlock()

	if buf, ok := buffers.live[ptr]; ok {
		delete(buffers.live, ptr)
		buffers.total -= len(buf)
	}
}

// PtrFromBytes copies data into pinned linear memory and returns the packed
// address/length the host expects. The empty buffer packs to zero, as does a
// failed allocation, which the host sees as an empty response.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	ptr := allocate(uint32(len(data)))
	if ptr == 0 {
		return 0
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), len(data))
	copy(dst, data)
	return PackPtrLen(ptr, uint32(len(data)))
}

// BytesFromPtr copies the buffer described by a packed address/length out of
// linear memory. A zero pack yields an empty, non-nil slice.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return []byte{}
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	out := make([]byte, length)
	copy(out, src)
	return out
}

// FreePacked releases the buffer behind a packed address/length, if any.
func FreePacked(packed uint64) {
	ptr, _ := UnpackPtrLen(packed)
	if ptr != 0 {
		deallocate(ptr)
	}
}
