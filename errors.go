package saori

import "fmt"

// ConfigError reports a problem with the hooks or metadata a module was
// built from. It is only ever returned by New; once a module is built, the
// generated entry points have no error channel back to the host.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("saori: invalid configuration for %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("saori: invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
