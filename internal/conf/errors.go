package conf

import "fmt"

// UnknownTypeError reports a polymorphic selection naming a type that is
// not registered. The previous child is left untouched.
type UnknownTypeError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q: no schema registered under that name", e.Name)
}

// CyclicDependencyError reports a reshape rule writing back to a field
// already processed within the same propagation batch. It indicates a
// schema-authoring defect; the engine rolls the whole batch back before
// returning it, so the tree is exactly as it was before the triggering
// edit.
type CyclicDependencyError struct {
	Node  string
	Field string
}

// Error implements the error interface.
func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency: a rule wrote back to already-processed field %q of node %q", e.Field, e.Node)
}

// PathError reports a field path that does not resolve against the current
// tree. Apply callers can treat it as retryable: a path into a list may
// become valid once the governing count field has been applied.
type PathError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %s", e.Path, e.Reason)
}
