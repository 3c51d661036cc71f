// Package errors defines the error values returned by suitepolicy.
// Sentinel errors identify the condition; typed wrappers add the operation
// or configuration key that produced it.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for policy resolution
var (
	// ErrNilSupportedSet indicates the caller did not supply the provider's supported set
	ErrNilSupportedSet = errors.New("policy: supported suite set is required")

	// ErrEmptySuiteList indicates resolution left no usable cipher suite
	ErrEmptySuiteList = errors.New("policy: no cipher suites left to offer")

	// ErrUnknownCipherSuite indicates a suite name the TLS provider does not know
	ErrUnknownCipherSuite = errors.New("policy: unknown cipher suite")
)

// Sentinel errors for configuration
var (
	// ErrInvalidConfig indicates the configuration store returned an unusable value
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrConfigRead indicates the configuration file could not be read
	ErrConfigRead = errors.New("config: read failed")
)

// PolicyError wraps a resolution error with the operation that failed
type PolicyError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PolicyError) Unwrap() error {
	return e.Err
}

// NewPolicyError creates a new PolicyError
func NewPolicyError(op string, err error) *PolicyError {
	return &PolicyError{Op: op, Err: err}
}

// ConfigError wraps a configuration error with the offending key
type ConfigError struct {
	Key string // Configuration key, may be empty for file-level errors
	Err error  // Underlying error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{Key: key, Err: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
