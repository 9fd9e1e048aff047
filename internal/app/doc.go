// Package app wires the application together: logger construction,
// registry population and validation, edit loading, tree construction,
// and the run phase that applies edits and emits dumps or an assembled
// plan.
package app
