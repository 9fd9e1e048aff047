// Package config defines the format-agnostic model of externally supplied
// configuration edits, along with the Loader interface a format-specific
// implementation (such as HCL) satisfies. The model is a flat, ordered
// list of (path, value) pairs; interpretation against a schema belongs to
// the conf package's apply machinery.
package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Edit is one field assignment read from an external source.
type Edit struct {
	// Path is the dotted field path within the configuration tree.
	Path string
	// Value is the evaluated value to apply.
	Value cty.Value
	// Source names where the edit came from, for error reporting.
	Source string
}

// Model is the unified representation of all loaded edits, in application
// order.
type Model struct {
	Edits []*Edit
}

// Loader is the interface for a format-specific edit loader.
type Loader interface {
	// Load reads edits from the given paths (files or directories) and
	// returns them in application order.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
