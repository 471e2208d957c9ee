// Package host drives wasm builds of plugin modules through their exported
// entry points. It exists for tooling and tests: plugin logic written
// against this SDK can be exercised in a wazero sandbox on any platform,
// without the native host the DLL exports target.
package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/ukagaka-dev/saori-sdk/internal/abi"
)

// Executor owns the wazero runtime plugin instances run in.
type Executor struct {
	runtime wazero.Runtime
	cfg     executorConfig
}

// NewExecutor creates an executor with WASI instantiated, as the SDK's wasm
// builds expect.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	cfg := defaultExecutorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	return &Executor{runtime: rt, cfg: cfg}, nil
}

// Close releases the runtime and every instance created from it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Instance is one instantiated plugin module.
type Instance struct {
	module api.Module
}

// Instantiate compiles and instantiates a plugin's wasm bytes.
func (e *Executor) Instantiate(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	mod, err := e.runtime.InstantiateWithConfig(ctx, wasmBytes,
		wazero.NewModuleConfig().WithName(e.cfg.moduleName))
	if err != nil {
		return nil, fmt.Errorf("host: instantiate module: %w", err)
	}
	return &Instance{module: mod}, nil
}

// Load drives the load entry point with the given raw path bytes.
func (p *Instance) Load(ctx context.Context, rawPath []byte) (bool, error) {
	return p.callBool(ctx, "load", rawPath)
}

// LoadU drives the loadu entry point.
func (p *Instance) LoadU(ctx context.Context, rawPath []byte) (bool, error) {
	return p.callBool(ctx, "loadu", rawPath)
}

// Unload drives the unload entry point.
func (p *Instance) Unload(ctx context.Context) (bool, error) {
	fn := p.module.ExportedFunction("unload")
	if fn == nil {
		return false, fmt.Errorf("host: module exports no unload")
	}
	res, err := fn.Call(ctx)
	if err != nil {
		return false, fmt.Errorf("host: unload: %w", err)
	}
	return api.DecodeI32(res[0]) != 0, nil
}

// Lifecycle delivers a loader notification code to the module.
func (p *Instance) Lifecycle(ctx context.Context, reason uint32) (bool, error) {
	fn := p.module.ExportedFunction("lifecycle")
	if fn == nil {
		return false, fmt.Errorf("host: module exports no lifecycle")
	}
	res, err := fn.Call(ctx, uint64(reason))
	if err != nil {
		return false, fmt.Errorf("host: lifecycle: %w", err)
	}
	return api.DecodeI32(res[0]) != 0, nil
}

// Request drives the request entry point and copies the response out of the
// instance's linear memory. A zero pack from the module reads back as an
// empty response.
func (p *Instance) Request(ctx context.Context, req []byte) ([]byte, error) {
	packed, err := p.stage(ctx, req)
	if err != nil {
		return nil, err
	}

	fn := p.module.ExportedFunction("request")
	if fn == nil {
		return nil, fmt.Errorf("host: module exports no request")
	}
	res, err := fn.Call(ctx, packed)
	if err != nil {
		return nil, fmt.Errorf("host: request: %w", err)
	}

	ptr, length := abi.UnpackPtrLen(res[0])
	if ptr == 0 || length == 0 {
		return []byte{}, nil
	}
	data, ok := p.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("host: response buffer %#x+%d outside module memory", ptr, length)
	}
	out := make([]byte, length)
	copy(out, data)

	if free := p.module.ExportedFunction("deallocate"); free != nil {
		if _, err := free.Call(ctx, uint64(ptr)); err != nil {
			return nil, fmt.Errorf("host: release response buffer: %w", err)
		}
	}
	return out, nil
}

func (p *Instance) callBool(ctx context.Context, name string, payload []byte) (bool, error) {
	packed, err := p.stage(ctx, payload)
	if err != nil {
		return false, err
	}
	fn := p.module.ExportedFunction(name)
	if fn == nil {
		return false, fmt.Errorf("host: module exports no %s", name)
	}
	res, err := fn.Call(ctx, packed)
	if err != nil {
		return false, fmt.Errorf("host: %s: %w", name, err)
	}
	return api.DecodeI32(res[0]) != 0, nil
}

// stage allocates linear memory in the instance via its exported allocate
// and copies payload in, returning the packed address/length the entry
// points take. The entry point frees the staged buffer itself.
func (p *Instance) stage(ctx context.Context, payload []byte) (uint64, error) {
	if len(payload) == 0 {
		return 0, nil
	}
	alloc := p.module.ExportedFunction("allocate")
	if alloc == nil {
		return 0, fmt.Errorf("host: module exports no allocate")
	}
	res, err := alloc.Call(ctx, uint64(len(payload)))
	if err != nil {
		return 0, fmt.Errorf("host: allocate: %w", err)
	}
	ptr := api.DecodeU32(res[0])
	if !p.module.Memory().Write(ptr, payload) {
		return 0, fmt.Errorf("host: staging buffer %#x+%d outside module memory", ptr, len(payload))
	}
	return abi.PackPtrLen(ptr, uint32(len(payload))), nil
}
