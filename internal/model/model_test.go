package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/field"
	"github.com/vk/confgrid/internal/model"
	"github.com/vk/confgrid/internal/registry"
	"github.com/vk/confgrid/modules/classify"
	"github.com/vk/confgrid/modules/generic"
	"github.com/vk/confgrid/modules/scanners"
	"github.com/vk/confgrid/modules/textgen"
	"github.com/zclconf/go-cty/cty"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, m := range []registry.Module{
		&scanners.Module{},
		&generic.Module{},
		&textgen.Module{},
		&classify.Module{},
	} {
		m.Register(r)
	}
	require.NoError(t, r.Validate(context.Background()))
	return r
}

func newTrainTree(t *testing.T) *conf.Tree {
	t.Helper()
	return conf.NewTree(model.Train(newRegistry(t)))
}

func TestTrain_SchemaValidates(t *testing.T) {
	t.Parallel()

	// The train root and the node types above the task selectors are not
	// registered anywhere, so this is their only static rule-table check.
	require.NoError(t, model.Train(newRegistry(t)).Validate())
}

func TestTrain_FreshTreeIsAtFixedPoint(t *testing.T) {
	t.Parallel()

	tree := newTrainTree(t)
	root := tree.Root()

	name, err := root.Field("project_name").AsString()
	require.NoError(t, err)
	assert.Equal(t, "please_set_a_project_name", name)

	tasks := root.Child("tasks")
	assert.Len(t, tasks.ChildList("tasks"), 1)
	assert.Len(t, tasks.FieldList("task_weights"), 1)

	sel := tasks.ChildList("tasks")[0]
	taskName, err := sel.Field("task_name").AsString()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTask, taskName)

	task := sel.Child("conf")
	assert.Equal(t, model.DefaultTask, task.Schema().Name())
	require.Len(t, task.ChildList("train_loaders"), 1)
	require.Len(t, task.ChildList("eval_loaders"), 1)

	loader := task.ChildList("train_loaders")[0]
	scanner, err := loader.Field("scanner_type").AsString()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScanner, scanner)
	assert.Len(t, loader.FieldList("path_list"), 1)
	grid := loader.ChildGrid("worker_indexes")
	require.Len(t, grid, 1)
	assert.Len(t, grid[0], 1)
}

func TestTasks_ResizePreservesExistingTaskConfigs(t *testing.T) {
	t.Parallel()

	tree := newTrainTree(t)
	require.NoError(t, tree.Set("tasks.tasks.0.task_name", cty.StringVal(textgen.TaskName)))
	require.NoError(t, tree.Set("tasks.tasks.0.conf.max_seq_len", cty.NumberIntVal(2048)))

	require.NoError(t, tree.Set("tasks.num_tasks", cty.NumberIntVal(3)))

	tasks := tree.Root().Child("tasks")
	require.Len(t, tasks.ChildList("tasks"), 3)
	require.Len(t, tasks.FieldList("task_weights"), 3)

	first := tasks.ChildList("tasks")[0]
	name, err := first.Field("task_name").AsString()
	require.NoError(t, err)
	assert.Equal(t, textgen.TaskName, name)
	seqLen, err := first.Child("conf").Field("max_seq_len").AsInt()
	require.NoError(t, err)
	assert.Equal(t, 2048, seqLen, "existing task config must survive the resize")

	appended := tasks.ChildList("tasks")[2]
	name, err = appended.Field("task_name").AsString()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTask, name, "appended selectors start on the default task")
}

func TestTaskSwap_AcrossRegisteredTasks(t *testing.T) {
	t.Parallel()

	tree := newTrainTree(t)

	require.NoError(t, tree.Set("tasks.tasks.0.task_name", cty.StringVal(classify.TaskName)))
	task := tree.Root().Child("tasks").ChildList("tasks")[0].Child("conf")
	assert.Equal(t, classify.TaskName, task.Schema().Name())
	classes, err := task.Field("num_classes").AsInt()
	require.NoError(t, err)
	assert.Equal(t, 2, classes)

	err = tree.Set("tasks.tasks.0.task_name", cty.StringVal("segmentation"))
	require.Error(t, err)
	var uerr *conf.UnknownTypeError
	assert.ErrorAs(t, err, &uerr)
}

func TestTaskFlags_DriveLoaderListPresence(t *testing.T) {
	t.Parallel()

	tree := newTrainTree(t)
	task := func() *conf.Node {
		return tree.Root().Child("tasks").ChildList("tasks")[0].Child("conf")
	}

	require.NoError(t, tree.Set("tasks.tasks.0.conf.is_trainable", cty.False))
	assert.Empty(t, task().ChildList("train_loaders"))
	assert.Len(t, task().ChildList("eval_loaders"), 1)

	require.NoError(t, tree.Set("tasks.tasks.0.conf.is_evaluatable", cty.False))
	assert.Empty(t, task().ChildList("eval_loaders"))

	require.NoError(t, tree.Set("tasks.tasks.0.conf.is_trainable", cty.True))
	assert.Len(t, task().ChildList("train_loaders"), 1)
}

func TestLoader_CountEditsDeepInTheTree(t *testing.T) {
	t.Parallel()

	tree := newTrainTree(t)
	base := "tasks.tasks.0.conf.train_loaders.0."

	require.NoError(t, tree.Set(base+"num_path", cty.NumberIntVal(2)))
	require.NoError(t, tree.Set(base+"num_workers", cty.NumberIntVal(4)))

	loader := tree.Root().Child("tasks").ChildList("tasks")[0].Child("conf").ChildList("train_loaders")[0]
	assert.Len(t, loader.FieldList("path_list"), 2)
	assert.Len(t, loader.FieldList("path_weight"), 2)
	grid := loader.ChildGrid("worker_indexes")
	require.Len(t, grid, 2)
	assert.Len(t, grid[0], 4)
	assert.Len(t, grid[1], 4)
}

func TestLoader_ScannerTypeFollowsRegistry(t *testing.T) {
	t.Parallel()

	tree := newTrainTree(t)
	path := "tasks.tasks.0.conf.train_loaders.0.scanner_type"

	require.NoError(t, tree.Set(path, cty.StringVal("jsonl")))

	err := tree.Set(path, cty.StringVal("tfrecord"))
	require.Error(t, err)
	var verr *field.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoader_NullableTuning(t *testing.T) {
	t.Parallel()

	tree := newTrainTree(t)
	base := "tasks.tasks.0.conf.eval_loaders.0."

	// qps is unset by default and can be set and cleared again.
	v, err := tree.Get(base + "qps")
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	require.NoError(t, tree.Set(base+"qps", cty.NumberFloatVal(2.5)))
	require.NoError(t, tree.Set(base+"qps", cty.NullVal(cty.Number)))

	// The minimum still applies to non-null writes.
	err = tree.Set(base+"qps", cty.NumberFloatVal(0.01))
	require.Error(t, err)
	var verr *field.ValidationError
	assert.ErrorAs(t, err, &verr)
}
