// Package textgen registers the language-modeling task. Its configuration
// extends the task base with a maximum sequence length, and its row
// processor drops rows without text so the loader never feeds an empty
// sample downstream.
package textgen

import (
	"github.com/vk/confgrid/internal/field"
	"github.com/vk/confgrid/internal/model"
	"github.com/vk/confgrid/internal/pipeline"
	"github.com/vk/confgrid/internal/registry"
)

// TaskName is the name this task registers under.
const TaskName = "text_gen"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Task is the language-modeling task implementation.
type Task struct{}

// Name returns the task's registered name.
func (t *Task) Name() string { return TaskName }

// RowProcessor returns a transform that nils out rows with no usable text.
// The loader treats a nil row as dropped.
func (t *Task) RowProcessor() pipeline.RowMapFunc {
	return func(row pipeline.Row) pipeline.Row {
		text, ok := row["text"].(string)
		if !ok || text == "" {
			return nil
		}
		return row
	}
}

// FlowProcessor returns nil: packing and windowing belong to the loader.
func (t *Task) FlowProcessor() pipeline.RowFlowFunc { return nil }

// BatchProcessor returns nil.
func (t *Task) BatchProcessor() pipeline.BatchMapFunc { return nil }

// Register registers the task with its configuration schema.
func (m *Module) Register(r *registry.Registry) {
	schema := model.TaskBase(TaskName, r).
		Field("max_seq_len", field.Int(1024, field.Min(1)))

	r.RegisterTask(TaskName, &registry.RegisteredTask{
		Schema: schema,
		New:    func() pipeline.Task { return &Task{} },
	})
}
