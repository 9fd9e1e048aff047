// Package registry provides the process-wide open registries the
// configuration graph resolves names against: task implementations
// (selectable by the polymorphic task selector) and data-format scanners.
//
// Registries are populated once at startup by each module registering
// itself under a unique name, then validated so that every registered
// schema is well-formed before any tree is built. Duplicate registration
// is a programmer error and panics.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/pipeline"
)

// Module is the interface every compiled-in module implements to add its
// tasks and scanners to a registry.
type Module interface {
	Register(r *Registry)
}

// RegisteredTask pairs the configuration schema of a task with the
// constructor of its runtime implementation.
type RegisteredTask struct {
	Schema *conf.Schema
	New    func() pipeline.Task
}

// Registry holds the registered tasks and scanners for a single
// application instance. Enumeration order is registration order, kept
// stable so dynamic option sets and generated help render
// deterministically.
type Registry struct {
	tasks     map[string]*RegisteredTask
	taskOrder []string

	scanners     map[string]pipeline.ScannerFactory
	scannerOrder []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		tasks:    make(map[string]*RegisteredTask),
		scanners: make(map[string]pipeline.ScannerFactory),
	}
}

// RegisterTask registers a task implementation under a unique name.
func (r *Registry) RegisterTask(name string, t *RegisteredTask) {
	if _, exists := r.tasks[name]; exists {
		panic(fmt.Sprintf("task with name '%s' already registered", name))
	}
	if t.Schema == nil || t.New == nil {
		panic(fmt.Sprintf("task '%s' registered without a schema or constructor", name))
	}
	if t.Schema.Name() != name {
		panic(fmt.Sprintf("task '%s' registered with schema named '%s'", name, t.Schema.Name()))
	}
	slog.Debug("Registering task.", "name", name)
	r.tasks[name] = t
	r.taskOrder = append(r.taskOrder, name)
}

// Task returns the registered task for a name.
func (r *Registry) Task(name string) (*RegisteredTask, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// TaskNames returns the registered task names in registration order.
func (r *Registry) TaskNames() []string {
	out := make([]string, len(r.taskOrder))
	copy(out, r.taskOrder)
	return out
}

// RegisterScanner registers a data-format scanner factory under a unique
// name.
func (r *Registry) RegisterScanner(name string, factory pipeline.ScannerFactory) {
	if _, exists := r.scanners[name]; exists {
		panic(fmt.Sprintf("scanner with name '%s' already registered", name))
	}
	slog.Debug("Registering scanner.", "name", name)
	r.scanners[name] = factory
	r.scannerOrder = append(r.scannerOrder, name)
}

// Scanner returns the registered scanner factory for a name.
func (r *Registry) Scanner(name string) (pipeline.ScannerFactory, bool) {
	f, ok := r.scanners[name]
	return f, ok
}

// ScannerNames returns the registered scanner names in registration order.
func (r *Registry) ScannerNames() []string {
	out := make([]string, len(r.scannerOrder))
	copy(out, r.scannerOrder)
	return out
}

// TaskSchemas exposes the task registry as a schema lookup for the
// polymorphic selector.
func (r *Registry) TaskSchemas() conf.SchemaLookup {
	return taskSchemaLookup{r: r}
}

type taskSchemaLookup struct {
	r *Registry
}

func (l taskSchemaLookup) LookupSchema(name string) (*conf.Schema, bool) {
	t, ok := l.r.tasks[name]
	if !ok {
		return nil, false
	}
	return t.Schema, true
}

func (l taskSchemaLookup) SchemaNames() []string {
	return l.r.TaskNames()
}
