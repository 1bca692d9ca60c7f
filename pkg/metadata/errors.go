package metadata

import "fmt"

// MissingFieldError reports a required metadata key that was absent
// from the property mapping. Physical quantities are never defaulted;
// a wrong offset silently accepted is worse than a hard failure.
type MissingFieldError struct {
	// Field is the name of the absent key.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("metadata: missing required field %q", e.Field)
}
