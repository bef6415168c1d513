// Package validation provides struct tag validation for subprocess
// configuration, backed by the validator library. Failures surface as
// usage errors from the errors package.
//
//	type Config struct {
//	    Dir string `validate:"omitempty,dir"`
//	}
//	err := validation.Validate(cfg)
package validation
