package field

import "fmt"

// ValidationError reports an edit rejected by a field's constraints. The
// field keeps its prior value; nothing is partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Field, e.Reason)
}
