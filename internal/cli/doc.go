// Package cli turns command-line arguments into an app.Config: flag
// definitions, validation that points at the offending flag, and the
// ExitError type that carries a process exit code back to main.
package cli
