package host

type executorConfig struct {
	moduleName string
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{moduleName: "saori_plugin"}
}

// Option configures an Executor.
type Option func(*executorConfig)

// WithModuleName sets the name instances register under in the runtime.
// Useful when one executor hosts several plugins.
func WithModuleName(name string) Option {
	return func(c *executorConfig) {
		c.moduleName = name
	}
}
