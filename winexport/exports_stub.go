//go:build !(windows && cgo)

// Package winexport exposes a module's entry points with the fixed names
// and signatures the native host ABI mandates: the load, loadu, request and
// unload DLL exports plus the DllMain lifecycle shim. Buffers cross the
// boundary as HGLOBALs; incoming ones are freed here and the response is
// handed back in host-owned memory per the ABI contract.
package winexport

import saori "github.com/ukagaka-dev/saori-sdk"

// Set is a stub on non-Windows platforms so plugins can call it
// unconditionally from init.
func Set(_ *saori.Module) {}
