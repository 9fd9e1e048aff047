// Package generic registers the default task: the base task configuration
// with no extra fields and no transform hooks. It is the task every fresh
// selector starts on, so it must be compiled into any binary that builds
// a configuration tree.
package generic

import (
	"github.com/vk/confgrid/internal/model"
	"github.com/vk/confgrid/internal/pipeline"
	"github.com/vk/confgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Task is the default task implementation.
type Task struct{}

// Name returns the task's registered name.
func (t *Task) Name() string { return model.DefaultTask }

// RowProcessor returns nil: the generic task applies no row transform.
func (t *Task) RowProcessor() pipeline.RowMapFunc { return nil }

// FlowProcessor returns nil: the generic task applies no stream transform.
func (t *Task) FlowProcessor() pipeline.RowFlowFunc { return nil }

// BatchProcessor returns nil: the generic task applies no batch transform.
func (t *Task) BatchProcessor() pipeline.BatchMapFunc { return nil }

// Register registers the task with its configuration schema.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTask(model.DefaultTask, &registry.RegisteredTask{
		Schema: model.TaskBase(model.DefaultTask, r),
		New:    func() pipeline.Task { return &Task{} },
	})
}
