package saori

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ukagaka-dev/saori-sdk/internal/abi"
	"github.com/ukagaka-dev/saori-sdk/internal/procstate"
	"github.com/ukagaka-dev/saori-sdk/schema"
	"github.com/ukagaka-dev/saori-sdk/textcodec"
)

// Result is the ABI-encoded outcome an entry point reports to the host.
type Result = abi.Bool

// LifecycleReason is the host loader's notification code.
type LifecycleReason = abi.LifecycleReason

// Lifecycle reason codes, re-exported for callers driving the dispatcher
// directly.
const (
	ProcessDetach = abi.ProcessDetach
	ProcessAttach = abi.ProcessAttach
	ThreadAttach  = abi.ThreadAttach
	ThreadDetach  = abi.ThreadDetach
)

// moduleConfig holds everything New assembles around the user hooks.
type moduleConfig struct {
	loadCodec   textcodec.Codec
	loadUCodec  textcodec.Codec
	logger      *slog.Logger
	meta        *Metadata
	configModel any
	paths       *procstate.PathStore
	loadUResult *procstate.ResultStore
}

func defaultModuleConfig() moduleConfig {
	return moduleConfig{
		loadCodec:   textcodec.ShiftJIS(),
		loadUCodec:  textcodec.UTF8(),
		paths:       procstate.SharedPath(),
		loadUResult: procstate.SharedLoadUResult(),
	}
}

// Option configures a Module under construction.
type Option func(*moduleConfig)

// WithLoadCodec sets the charset of the path buffer the load entry point
// receives. Defaults to Shift_JIS, the conventional host charset.
func WithLoadCodec(c textcodec.Codec) Option {
	return func(cfg *moduleConfig) {
		cfg.loadCodec = c
	}
}

// WithLoadUCodec sets the charset of the path buffer the loadu entry point
// receives. Defaults to UTF-8.
func WithLoadUCodec(c textcodec.Codec) Option {
	return func(cfg *moduleConfig) {
		cfg.loadUCodec = c
	}
}

// WithMetadata attaches module metadata, validated at build time and
// reported by Manifest.
func WithMetadata(m Metadata) Option {
	return func(cfg *moduleConfig) {
		cfg.meta = &m
	}
}

// WithConfigModel attaches the plugin's configuration struct. Manifest
// publishes its JSON schema so packaging tools can validate plugin settings.
func WithConfigModel(model any) Option {
	return func(cfg *moduleConfig) {
		cfg.configModel = model
	}
}

// WithLogger sets the logger the generated entry points trace through.
// Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *moduleConfig) {
		cfg.logger = l
	}
}

// withStores redirects the process-wide stores, used by tests to isolate
// state between cases.
func withStores(p *procstate.PathStore, r *procstate.ResultStore) Option {
	return func(cfg *moduleConfig) {
		cfg.paths = p
		cfg.loadUResult = r
	}
}

// Module carries the generated entry-point adapters. A platform export
// layer (winexport, guest) marshals the host's raw memory into the byte
// slices these methods take and out of the values they return.
type Module struct {
	hooks Hooks
	cfg   moduleConfig
}

// New builds a Module from the given hooks. A missing Load or Request hook
// is a configuration error: it fails here, at build time, because the
// generated entry points have no way to report it to the host later.
func New(hooks Hooks, opts ...Option) (*Module, error) {
	if hooks.Load == nil {
		return nil, &ConfigError{Field: "Hooks.Load", Err: errors.New("load hook is required")}
	}
	if hooks.Request == nil {
		return nil, &ConfigError{Field: "Hooks.Request", Err: errors.New("request hook is required")}
	}

	cfg := defaultModuleConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.meta != nil {
		if err := ValidateMetadata(*cfg.meta); err != nil {
			return nil, err
		}
	}

	return &Module{hooks: hooks, cfg: cfg}, nil
}

// Load is the load entry point: decode the raw path, register it, run the
// user load hook, translate its result. When the path does not decode the
// registry is left untouched and the hook still runs with an empty path;
// the ABI has no channel to report the conversion failure itself.
func (m *Module) Load(raw []byte) Result {
	return m.load(raw, m.cfg.loadCodec, "load")
}

// LoadU is the locale-variant load entry point. Besides the load logic it
// records its own outcome, readable afterward via LoadUResult.
func (m *Module) LoadU(raw []byte) Result {
	result := m.load(raw, m.cfg.loadUCodec, "loadu")
	m.cfg.loadUResult.Record(result.OK())
	return result
}

func (m *Module) load(raw []byte, codec textcodec.Codec, entry string) Result {
	path, err := codec.Decode(raw)
	if err != nil {
		m.cfg.logger.Debug("module path not decodable, load proceeds without it",
			"entry", entry, "charset", codec.Name(), "error", err)
		path = ""
	} else {
		m.cfg.paths.Register(path)
	}

	ok := m.hooks.Load(path)
	m.cfg.logger.Debug("load hook finished", "entry", entry, "ok", ok)
	return abi.FromBool(ok)
}

// Request is the request entry point. The incoming buffer is borrowed from
// the host for the duration of the call; the returned bytes become a new
// buffer whose ownership transfers to the host. An empty response stays a
// zero-length buffer, never nil.
func (m *Module) Request(raw []byte) []byte {
	resp := m.hooks.Request(raw)
	m.cfg.logger.Debug("request hook finished", "request_len", len(raw), "response_len", len(resp))
	if resp == nil {
		return []byte{}
	}
	return resp
}

// Unload is the unload entry point. Without a user hook it reports success
// unconditionally.
func (m *Module) Unload() Result {
	if m.hooks.Unload == nil {
		return abi.True
	}
	return abi.FromBool(m.hooks.Unload())
}

// Lifecycle dispatches a host loader notification to the matching stage
// hook. Stages have no failure channel, so the dispatcher always reports
// success and ignores unknown reason codes.
func (m *Module) Lifecycle(reason LifecycleReason) Result {
	var stage StageFunc
	switch reason {
	case abi.ProcessAttach:
		stage = m.hooks.ProcessAttach
	case abi.ProcessDetach:
		stage = m.hooks.ProcessDetach
	case abi.ThreadAttach:
		stage = m.hooks.ThreadAttach
	case abi.ThreadDetach:
		stage = m.hooks.ThreadDetach
	default:
		m.cfg.logger.Debug("ignoring unknown lifecycle reason", "reason", uint32(reason))
		return abi.True
	}

	if stage != nil {
		stage()
	}
	return abi.True
}

// manifest is the JSON shape Manifest emits.
type manifest struct {
	Metadata
	SDKVersion   string          `json:"sdk_version"`
	ConfigSchema json.RawMessage `json:"config_schema,omitempty"`
}

// Manifest renders the module descriptor consumed by packaging tooling:
// the metadata plus, when a config model was attached, its JSON schema.
func (m *Module) Manifest() ([]byte, error) {
	if m.cfg.meta == nil {
		return nil, &ConfigError{Field: "Metadata", Err: errors.New("no metadata attached, use WithMetadata")}
	}

	out := manifest{Metadata: *m.cfg.meta, SDKVersion: Version}
	if m.cfg.configModel != nil {
		s, err := schema.Generate(m.cfg.configModel)
		if err != nil {
			return nil, err
		}
		out.ConfigSchema = s
	}
	return json.MarshalIndent(out, "", "  ")
}
