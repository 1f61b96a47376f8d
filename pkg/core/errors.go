package core

import "fmt"

// ConfigurationError reports an invalid network or search configuration, or a
// numerically unstable solution (a station utilization at or beyond 1 that
// cannot be attributed to rounding). It is surfaced to callers, never
// recovered silently.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// UnknownObjectiveError reports an unrecognized objective identifier. There is
// no fallback objective; the error is surfaced immediately.
type UnknownObjectiveError struct {
	Kind string
}

func (e *UnknownObjectiveError) Error() string {
	return fmt.Sprintf("unknown objective %q", e.Kind)
}
