package config

import "errors"

// Error categories wrapped inside *fault.Error values returned by this
// package.  Match them with errors.Is.
var (
	// ErrSourceNotFound indicates no candidate file exists and the
	// environment fallback is disabled.
	ErrSourceNotFound = errors.New("configuration source not found")
	// ErrUnsupportedFormat indicates a file extension the loader does not
	// dispatch on (for example ".yaml").
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	// ErrLoadFailure indicates the source could not be read, parsed, or
	// evaluated into an object.
	ErrLoadFailure = errors.New("configuration load failure")
	// ErrScriptDisabled indicates a script source was found while script
	// loading is off.
	ErrScriptDisabled = errors.New("script configuration disabled")
	// ErrMissingRequired indicates one or more required paths are absent.
	ErrMissingRequired = errors.New("missing required configuration")
	// ErrInvalidValue indicates a present value of the wrong type or range.
	ErrInvalidValue = errors.New("invalid configuration value")
)
