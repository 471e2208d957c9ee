//go:build windows && cgo

package winexport

// The preamble stays declaration-only: cgo copies it into both generated C
// files, so any definition here would be emitted twice and break the link.
// The DllMain shim forwarding loader notifications to saoriDllMain lives in
// dllmain_windows.c.

/*
#include <windows.h>
*/
import "C"

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	saori "github.com/ukagaka-dev/saori-sdk"
	"github.com/ukagaka-dev/saori-sdk/internal/abi"
)

// GMEM_FIXED: the host expects plain fixed allocations it can free.
const gmemFixed = 0x0000

var mod atomic.Pointer[saori.Module]

// Set wires the module whose entry points the DLL exports dispatch to.
// Call it from the plugin's init, before the host issues any call.
func Set(m *saori.Module) {
	mod.Store(m)
}

//export saoriDllMain
func saoriDllMain(h C.HINSTANCE, reason C.DWORD) C.BOOL {
	m := mod.Load()
	if m == nil {
		return C.TRUE
	}
	return C.BOOL(m.Lifecycle(abi.LifecycleReason(reason)))
}

//export load
func load(h C.HGLOBAL, length C.long) C.BOOL {
	raw := takeGlobal(h, int32(length))
	m := mod.Load()
	if m == nil {
		return C.FALSE
	}
	return C.BOOL(m.Load(raw))
}

//export loadu
func loadu(h C.HGLOBAL, length C.long) C.BOOL {
	raw := takeGlobal(h, int32(length))
	m := mod.Load()
	if m == nil {
		return C.FALSE
	}
	return C.BOOL(m.LoadU(raw))
}

//export request
func request(h C.HGLOBAL, length *C.long) C.HGLOBAL {
	if length == nil {
		takeGlobal(h, 0)
		return nil
	}
	raw := takeGlobal(h, int32(*length))
	var resp []byte
	if m := mod.Load(); m != nil {
		resp = m.Request(raw)
	}
	return giveGlobal(resp, length)
}

//export unload
func unload() C.BOOL {
	m := mod.Load()
	if m == nil {
		return C.TRUE
	}
	return C.BOOL(m.Unload())
}

// takeGlobal copies the host's buffer and frees it; the ABI makes the
// callee responsible for releasing incoming HGLOBALs.
func takeGlobal(h C.HGLOBAL, length int32) []byte {
	if h == nil {
		return []byte{}
	}
	raw := []byte{}
	if length > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(h)), int(length))
		raw = make([]byte, length)
		copy(raw, src)
	}
	_, _ = windows.GlobalFree(windows.Handle(uintptr(unsafe.Pointer(h))))
	return raw
}

// giveGlobal copies the response into freshly allocated host memory and
// writes its length through the out-parameter. The host frees the buffer.
// A zero-length response still yields a valid allocation, never NULL.
func giveGlobal(data []byte, length *C.long) C.HGLOBAL {
	h, err := windows.GlobalAlloc(gmemFixed, uintptr(len(data)))
	if err != nil {
		*length = 0
		return nil
	}
	if len(data) > 0 {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(h))), len(data))
		copy(dst, data)
	}
	*length = C.long(len(data))
	return C.HGLOBAL(unsafe.Pointer(uintptr(h)))
}
