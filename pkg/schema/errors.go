package schema

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a malformed or contradictory configuration
// value. It is always raised before any partial output is produced and is
// never silently defaulted.
type ConfigurationError struct {
	Option string // Option or table entry that is invalid
	Value  any    // Offending value (if meaningful)
	Reason string // Why the value is rejected
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid configuration: %s = %v: %s", e.Option, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Option, e.Reason)
}

// NewConfigurationError creates a ConfigurationError for the given option.
func NewConfigurationError(option string, value any, reason string) error {
	return &ConfigurationError{Option: option, Value: value, Reason: reason}
}

// IsConfiguration reports whether the error is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
