package assemble

import (
	"fmt"
	"strings"
)

// Problem is one reason a tree could not be assembled, located by the full
// path of the offending field.
type Problem struct {
	Path   string
	Reason string
}

// AssemblyError aggregates every problem found while assembling a tree, so
// a user can fix the whole configuration in one pass instead of
// iterating field-by-field. No partial plan accompanies it.
type AssemblyError struct {
	Problems []Problem
}

// Error implements the error interface.
func (e *AssemblyError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = fmt.Sprintf("%s: %s", p.Path, p.Reason)
	}
	return fmt.Sprintf("cannot assemble configuration:\n- %s", strings.Join(lines, "\n- "))
}
