// Package classify registers the classification task. Its configuration
// extends the task base with a class count and the name of the row field
// carrying the label.
package classify

import (
	"github.com/vk/confgrid/internal/field"
	"github.com/vk/confgrid/internal/model"
	"github.com/vk/confgrid/internal/pipeline"
	"github.com/vk/confgrid/internal/registry"
)

// TaskName is the name this task registers under.
const TaskName = "classify"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Task is the classification task implementation.
type Task struct{}

// Name returns the task's registered name.
func (t *Task) Name() string { return TaskName }

// RowProcessor returns a transform that drops rows missing a label.
func (t *Task) RowProcessor() pipeline.RowMapFunc {
	return func(row pipeline.Row) pipeline.Row {
		if _, ok := row["label"]; !ok {
			return nil
		}
		return row
	}
}

// FlowProcessor returns nil.
func (t *Task) FlowProcessor() pipeline.RowFlowFunc { return nil }

// BatchProcessor returns nil.
func (t *Task) BatchProcessor() pipeline.BatchMapFunc { return nil }

// Register registers the task with its configuration schema.
func (m *Module) Register(r *registry.Registry) {
	schema := model.TaskBase(TaskName, r).
		Field("num_classes", field.Int(2, field.Min(2))).
		Field("label_field", field.String("label"))

	r.RegisterTask(TaskName, &registry.RegisteredTask{
		Schema: schema,
		New:    func() pipeline.Task { return &Task{} },
	})
}
