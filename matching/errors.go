package matching

import "fmt"

// IncompleteProfileError means a required attribute is missing from a profile.
// Callers should not invoke the engine until the profile is complete.
type IncompleteProfileError struct {
	UserID    string
	Attribute string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("incomplete profile for user %s: missing %s", e.UserID, e.Attribute)
}

// InvalidRangeError means a range input is malformed (min > max). This is an
// upstream data-integrity problem and is never auto-corrected here.
type InvalidRangeError struct {
	UserID string
	Field  string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid %s range for user %s: min is greater than max", e.Field, e.UserID)
}

// ConfigurationError is raised when engine configuration is invalid, at
// construction time rather than per call.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid matching configuration: " + e.Reason
}
