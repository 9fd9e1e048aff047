// Package assemble walks a propagation-fixed configuration tree and
// produces the immutable runtime descriptors the data-loading and training
// collaborators consume. It never mutates the tree and never returns a
// partial plan: every invalid field is collected into one aggregated
// AssemblyError.
package assemble

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/ctxlog"
	"github.com/vk/confgrid/internal/field"
	"github.com/vk/confgrid/internal/pipeline"
	"github.com/vk/confgrid/internal/registry"
)

// Assemble builds a TrainPlan from a tree declared by model.Train. The
// tree is at fixed point by construction (every edit funnels through the
// propagation engine), so list lengths can be trusted; what is verified
// here is value completeness: required fields hold concrete values, rank
// indexes fit their world size, and every referenced name resolves.
func Assemble(ctx context.Context, t *conf.Tree, r *registry.Registry) (*pipeline.TrainPlan, error) {
	logger := ctxlog.FromContext(ctx)

	a := &assembler{registry: r}
	a.checkRequired(t)

	root := t.Root()
	tasksNode := root.Child("tasks")
	selectors := tasksNode.ChildList("tasks")
	weights := tasksNode.FieldList("task_weights")

	plan := &pipeline.TrainPlan{
		ID:      uuid.New(),
		Project: a.str(root.Field("project_name"), "project_name"),
		Run:     a.str(root.Field("run_name"), "run_name"),
	}

	for i, sel := range selectors {
		prefix := "tasks.tasks." + strconv.Itoa(i) + "."
		plan.Tasks = append(plan.Tasks, a.taskInstance(sel, weights[i], prefix))
	}

	if len(a.problems) > 0 {
		return nil, &AssemblyError{Problems: a.problems}
	}

	logger.Debug("Configuration assembled.", "plan_id", plan.ID, "tasks", len(plan.Tasks))
	return plan, nil
}

type assembler struct {
	registry *registry.Registry
	problems []Problem
}

func (a *assembler) problem(path, reason string) {
	a.problems = append(a.problems, Problem{Path: path, Reason: reason})
}

// checkRequired records a problem for every field whose spec demands a
// concrete value at assembly but which still holds null.
func (a *assembler) checkRequired(t *conf.Tree) {
	for _, ref := range t.Fields() {
		if ref.Field.Spec().Required && ref.Field.Value().IsNull() {
			a.problem(ref.Path, "required field has no value")
		}
	}
}

func (a *assembler) taskInstance(sel *conf.Node, weight *field.Field, prefix string) *pipeline.TaskInstance {
	name := a.str(sel.Field("task_name"), prefix+"task_name")

	inst := &pipeline.TaskInstance{
		Name:   name,
		Weight: a.float(weight, prefix+"task_weight"),
	}

	reg, ok := a.registry.Task(name)
	if !ok {
		// The selector constraint makes this unreachable for edited trees,
		// but a plan must never carry an unresolvable name.
		a.problem(prefix+"task_name", fmt.Sprintf("task %q is not registered", name))
		return inst
	}
	inst.Impl = reg.New()

	taskConf := sel.Child("conf")
	for i, loader := range taskConf.ChildList("train_loaders") {
		p := prefix + "conf.train_loaders." + strconv.Itoa(i) + "."
		inst.TrainLoaders = append(inst.TrainLoaders, a.loaderRequest(loader, p, inst.Impl))
	}
	for i, loader := range taskConf.ChildList("eval_loaders") {
		p := prefix + "conf.eval_loaders." + strconv.Itoa(i) + "."
		inst.EvalLoaders = append(inst.EvalLoaders, a.loaderRequest(loader, p, inst.Impl))
	}
	return inst
}

// loaderRequest reads one dataloader config node into an immutable
// request. The task's transform hooks ride along so the loader can apply
// them without knowing the task.
func (a *assembler) loaderRequest(n *conf.Node, prefix string, task pipeline.Task) *pipeline.DataLoaderRequest {
	req := &pipeline.DataLoaderRequest{
		BatchSize:       a.int(n.Field("batch_size"), prefix+"batch_size"),
		ScannerType:     a.str(n.Field("scanner_type"), prefix+"scanner_type"),
		Seed:            a.int64(n.Field("seed"), prefix+"seed"),
		Shuffle:         a.bool(n.Field("shuffle"), prefix+"shuffle"),
		PrefetchFactor:  a.int(n.Field("prefetch_factor"), prefix+"prefetch_factor"),
		IgnoreError:     a.bool(n.Field("ignore_error"), prefix+"ignore_error"),
		QPS:             a.floatPtr(n.Field("qps"), prefix+"qps"),
		InstructTimeout: a.floatPtr(n.Field("instruct_timeout"), prefix+"instruct_timeout"),
		WorkerTimeout:   a.floatPtr(n.Field("worker_timeout"), prefix+"worker_timeout"),
		NumWorkers:      a.int(n.Field("num_workers"), prefix+"num_workers"),
		NumRanks:        a.int(n.Field("num_ranks"), prefix+"num_ranks"),
		RankIdx:         a.int(n.Field("rank_idx"), prefix+"rank_idx"),
	}

	if req.RankIdx >= req.NumRanks {
		a.problem(prefix+"rank_idx", fmt.Sprintf("rank_idx %d must be below num_ranks %d", req.RankIdx, req.NumRanks))
	}

	for i, f := range n.FieldList("path_list") {
		if f.Value().IsNull() {
			// Already recorded by the required-field sweep.
			continue
		}
		req.PathList = append(req.PathList, a.str(f, prefix+"path_list."+strconv.Itoa(i)))
	}
	for i, f := range n.FieldList("path_weight") {
		req.Weights = append(req.Weights, a.float(f, prefix+"path_weight."+strconv.Itoa(i)))
	}

	factory, ok := a.registry.Scanner(req.ScannerType)
	if !ok {
		a.problem(prefix+"scanner_type", fmt.Sprintf("scanner %q is not registered", req.ScannerType))
	} else {
		req.NewScanner = factory
	}

	for _, row := range n.ChildGrid("worker_indexes") {
		indexes := make([]pipeline.ResumeIndex, 0, len(row))
		for _, idx := range row {
			indexes = append(indexes, pipeline.ResumeIndex{
				Epoch: a.int(idx.Field("epoch"), prefix+"worker_indexes"),
				Part:  a.int(idx.Field("part"), prefix+"worker_indexes"),
				Row:   a.int(idx.Field("row"), prefix+"worker_indexes"),
			})
		}
		req.ResumeIndexes = append(req.ResumeIndexes, indexes)
	}

	if task != nil {
		req.RowMap = task.RowProcessor()
		req.RowFlow = task.FlowProcessor()
		req.BatchMap = task.BatchProcessor()
	}
	return req
}

// The typed readers below fold conversion failures into the problem list
// instead of aborting the walk, so one pass reports everything.

func (a *assembler) int(f *field.Field, path string) int {
	v, err := f.AsInt()
	if err != nil {
		a.problem(path, err.Error())
	}
	return v
}

func (a *assembler) int64(f *field.Field, path string) int64 {
	v, err := f.AsInt64()
	if err != nil {
		a.problem(path, err.Error())
	}
	return v
}

func (a *assembler) float(f *field.Field, path string) float64 {
	v, err := f.AsFloat()
	if err != nil {
		a.problem(path, err.Error())
	}
	return v
}

func (a *assembler) floatPtr(f *field.Field, path string) *float64 {
	v, err := f.AsFloatPtr()
	if err != nil {
		a.problem(path, err.Error())
	}
	return v
}

func (a *assembler) str(f *field.Field, path string) string {
	v, err := f.AsString()
	if err != nil {
		a.problem(path, err.Error())
	}
	return v
}

func (a *assembler) bool(f *field.Field, path string) bool {
	v, err := f.AsBool()
	if err != nil {
		a.problem(path, err.Error())
	}
	return v
}
