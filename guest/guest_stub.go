//go:build !wasip1

// Package guest exposes a module's entry points as wasm exports, so plugin
// logic can run in a wasm sandbox (for the host package's test driver)
// instead of a native host.
package guest

import saori "github.com/ukagaka-dev/saori-sdk"

// Register is a stub on non-wasm platforms so plugins can call it
// unconditionally from init.
func Register(_ *saori.Module) {}
