//go:build wasip1

package guest

import (
	"sync/atomic"

	saori "github.com/ukagaka-dev/saori-sdk"
	"github.com/ukagaka-dev/saori-sdk/internal/abi"
)

var mod atomic.Pointer[saori.Module]

// Register wires the module whose entry points the wasm exports dispatch
// to. Call it from the plugin's init.
func Register(m *saori.Module) {
	mod.Store(m)
}

// Incoming buffers are staged by the host through the exported allocate and
// handed over as packed address/length pairs; each entry point frees its
// input once copied out, mirroring the native ABI's buffer ownership.

//go:wasmexport load
func wasmLoad(packed uint64) int32 {
	raw := abi.BytesFromPtr(packed)
	abi.FreePacked(packed)
	m := mod.Load()
	if m == nil {
		return int32(abi.False)
	}
	return int32(m.Load(raw))
}

//go:wasmexport loadu
func wasmLoadU(packed uint64) int32 {
	raw := abi.BytesFromPtr(packed)
	abi.FreePacked(packed)
	m := mod.Load()
	if m == nil {
		return int32(abi.False)
	}
	return int32(m.LoadU(raw))
}

//go:wasmexport request
func wasmRequest(packed uint64) uint64 {
	raw := abi.BytesFromPtr(packed)
	abi.FreePacked(packed)
	m := mod.Load()
	if m == nil {
		return 0
	}
	return abi.PtrFromBytes(m.Request(raw))
}

//go:wasmexport unload
func wasmUnload() int32 {
	m := mod.Load()
	if m == nil {
		return int32(abi.True)
	}
	return int32(m.Unload())
}

//go:wasmexport lifecycle
func wasmLifecycle(reason uint32) int32 {
	m := mod.Load()
	if m == nil {
		return int32(abi.True)
	}
	return int32(m.Lifecycle(abi.LifecycleReason(reason)))
}
