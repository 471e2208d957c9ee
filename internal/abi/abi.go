// Package abi defines the fixed return encodings and buffer conventions of
// the SAORI host ABI. The host understands boolean-like integers and
// length-prefixed byte buffers; everything here translates between those and
// ordinary Go values.
package abi

// Bool is the host's boolean-like integer return encoding.
type Bool int32

const (
	// False is the host's failure indicator.
	False Bool = 0
	// True is the host's success indicator.
	True Bool = 1
)

// FromBool translates a Go bool into the host encoding.
func FromBool(ok bool) Bool {
	if ok {
		return True
	}
	return False
}

// OK reports whether b is the host's success indicator.
func (b Bool) OK() bool {
	return b != False
}

// LifecycleReason is the host's notification code passed to the module
// entry point when the module or a host thread attaches or detaches.
type LifecycleReason uint32

// Reason codes, matching the values the host's loader passes.
const (
	ProcessDetach LifecycleReason = 0
	ProcessAttach LifecycleReason = 1
	ThreadAttach  LifecycleReason = 2
	ThreadDetach  LifecycleReason = 3
)

// String returns the conventional name of the reason code.
func (r LifecycleReason) String() string {
	switch r {
	case ProcessAttach:
		return "process_attach"
	case ProcessDetach:
		return "process_detach"
	case ThreadAttach:
		return "thread_attach"
	case ThreadDetach:
		return "thread_detach"
	default:
		return "unknown"
	}
}

// PackPtrLen packs a buffer address and length into a single uint64 for the
// wasm adapter: address in the high 32 bits, length in the low 32 bits.
// The zero value stands for the empty buffer.
func PackPtrLen(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

// UnpackPtrLen splits a packed uint64 back into address and length.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	return uint32(packed >> 32), uint32(packed)
}
