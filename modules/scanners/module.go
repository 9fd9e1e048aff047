// Package scanners registers the built-in data-format scanners. The
// scanning pipeline itself lives outside this repository; what is
// registered here are the resolvable implementation handles that loader
// configs reference through their scanner_type field.
package scanners

import (
	"github.com/vk/confgrid/internal/pipeline"
	"github.com/vk/confgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Scanner is a named scanner handle.
type Scanner struct {
	kind string
}

// Kind returns the scanner's registered format name.
func (s *Scanner) Kind() string { return s.kind }

// Register registers the built-in scanner factories.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterScanner("c4", func() pipeline.Scanner { return &Scanner{kind: "c4"} })
	r.RegisterScanner("jsonl", func() pipeline.Scanner { return &Scanner{kind: "jsonl"} })
}
