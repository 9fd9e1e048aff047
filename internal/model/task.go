package model

import (
	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/field"
	"github.com/vk/confgrid/internal/registry"
)

// DefaultTask is the task selected on a fresh selector. The module
// registering it must be compiled into every binary that builds a tree.
const DefaultTask = "generic"

// TaskBase declares the fields every task configuration shares: the
// trainable/evaluatable flags and the loader-config lists whose presence
// those flags drive. Task modules extend the returned schema with their
// own fields before registering it.
func TaskBase(name string, r *registry.Registry) *conf.Schema {
	return conf.NewSchema(name).
		Field("is_trainable", field.Bool(true)).
		Field("is_evaluatable", field.Bool(true)).
		ChildList("train_loaders", DataLoader(r), 1).
		ChildList("eval_loaders", DataLoader(r), 1).
		On("is_trainable", conf.PresenceList("is_trainable", "train_loaders")).
		On("is_evaluatable", conf.PresenceList("is_evaluatable", "eval_loaders"))
}

// TaskSelector declares the polymorphic task slot: a task_name field
// resolved against the task registry, and a conf child holding the
// selected task's configuration. Changing task_name swaps conf to the
// newly selected schema's defaults; re-selecting the active name is a
// no-op.
func TaskSelector(r *registry.Registry) *conf.Schema {
	return conf.NewSchema("task_selector").
		Field("task_name", field.String(DefaultTask)).
		Selector("conf", "task_name", r.TaskSchemas()).
		On("task_name", conf.SwapSelector("task_name", "conf"))
}

// Tasks declares the multi-task collection: num_tasks governs both the
// selector list and the per-task weights.
func Tasks(r *registry.Registry) *conf.Schema {
	return conf.NewSchema("tasks").
		Field("num_tasks", field.Int(1, field.Min(1))).
		ChildList("tasks", TaskSelector(r), 1).
		FieldList("task_weights", field.Float(1.0, field.Min(0), field.Max(1)), 1).
		On("num_tasks", conf.ResizeList("num_tasks", "tasks", "task_weights"))
}

// Train declares the root schema of a training job.
func Train(r *registry.Registry) *conf.Schema {
	return conf.NewSchema("train").
		Field("project_name", field.String("please_set_a_project_name")).
		Field("run_name", field.String("please_set_the_name_of_this_run")).
		Child("tasks", Tasks(r))
}
