// Package saori builds the entry points a SAORI request/response plugin
// module must expose to its host from a small set of user callbacks. The
// host drives everything: it calls the generated load, loadu, request and
// unload entry points plus the module lifecycle dispatcher, and each one
// translates between the host's raw buffers and integer results and the
// typed hooks supplied at build time.
package saori

// LoadFunc is the user load callback. It receives the module's decoded file
// path (empty when the host bytes could not be decoded) and reports whether
// loading succeeded.
type LoadFunc func(path string) bool

// RequestFunc is the user request callback. It receives the raw request
// buffer, borrowed for the duration of the call, and returns the response
// bytes. Failures are reported inside the response text itself; there is no
// separate error channel across this boundary.
type RequestFunc func(req []byte) []byte

// UnloadFunc is the user unload callback.
type UnloadFunc func() bool

// StageFunc is a lifecycle stage callback. Stages have no failure channel
// in the host ABI, so there is nothing to return.
type StageFunc func()

// Hooks enumerates the user callbacks a module is built from. Load and
// Request are mandatory; everything else defaults to a no-op that reports
// success.
type Hooks struct {
	Load    LoadFunc
	Request RequestFunc
	Unload  UnloadFunc

	// Lifecycle stages, fired by the host's loader. Named rather than
	// positional so a stage can be set without spelling out the ones
	// before it.
	ProcessAttach StageFunc
	ProcessDetach StageFunc
	ThreadAttach  StageFunc
	ThreadDetach  StageFunc
}

// Metadata describes the module for manifests and packaging tooling.
type Metadata struct {
	Name        string `json:"name" validate:"required"`
	Version     string `json:"version" validate:"required"`
	Description string `json:"description,omitempty"`
	// Charset the plugin speaks in its responses.
	Charset string `json:"charset,omitempty" validate:"omitempty,oneof=Shift_JIS UTF-8"`
}
