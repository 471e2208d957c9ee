package saori

import "github.com/go-playground/validator/v10"

// validate is a package-level singleton; constructing a validator per call
// is expensive.
var validate = validator.New()

// ValidateMetadata checks module metadata against its declared constraints.
// New runs this automatically when metadata is attached.
func ValidateMetadata(m Metadata) error {
	if err := validate.Struct(m); err != nil {
		return &ConfigError{Field: "Metadata", Err: err}
	}
	return nil
}
