package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/vk/confgrid/internal/assemble"
	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v3"
)

// Run applies the loaded edits to the tree and performs the requested
// outputs: a flattened dump and/or an assembled plan summary.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	var pairs []conf.PathValue
	for _, edit := range a.edits.Edits {
		pairs = append(pairs, conf.PathValue{Path: edit.Path, Value: edit.Value})
	}
	if len(pairs) > 0 {
		if err := a.tree.ApplyAll(pairs); err != nil {
			return fmt.Errorf("applying edit files: %w", err)
		}
		a.logger.Info("Edit files applied.", "edits", len(pairs))
	}

	for _, set := range a.config.Sets {
		path, raw, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("invalid -set %q: expected path=value", set)
		}
		if err := a.tree.Set(path, parseScalar(raw)); err != nil {
			return fmt.Errorf("applying -set %q: %w", set, err)
		}
	}

	if a.config.DumpFormat != "" {
		if err := a.dump(); err != nil {
			return err
		}
	}

	if a.config.Assemble {
		return a.assemble(ctx)
	}
	return nil
}

// parseScalar interprets a command-line value string as the loosest cty
// value it matches: bool, number, explicit null, else string. The field's
// own conversion narrows it to the declared type.
func parseScalar(raw string) cty.Value {
	switch raw {
	case "null":
		return cty.NullVal(cty.DynamicPseudoType)
	case "true":
		return cty.True
	case "false":
		return cty.False
	}
	if v, err := cty.ParseNumberVal(raw); err == nil {
		return v
	}
	return cty.StringVal(raw)
}

// renderValue formats a cty value for human-facing output.
func renderValue(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return v.GoString()
	}
	return s.AsString()
}

func (a *App) dump() error {
	pairs := a.tree.Flatten()

	if a.config.DumpFormat == "yaml" {
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, pv := range pairs {
			doc.Content = append(doc.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: pv.Path},
				&yaml.Node{Kind: yaml.ScalarNode, Value: renderValue(pv.Value)},
			)
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("rendering yaml dump: %w", err)
		}
		_, err = a.outW.Write(out)
		return err
	}

	pathColor := color.New(color.FgCyan)
	nullColor := color.New(color.Faint)
	for _, pv := range pairs {
		rendered := renderValue(pv.Value)
		if pv.Value.IsNull() {
			rendered = nullColor.Sprint(rendered)
		}
		fmt.Fprintf(a.outW, "%s = %s\n", pathColor.Sprint(pv.Path), rendered)
	}
	return nil
}

func (a *App) assemble(ctx context.Context) error {
	plan, err := assemble.Assemble(ctx, a.tree, a.registry)
	if err != nil {
		var asmErr *assemble.AssemblyError
		if errors.As(err, &asmErr) {
			errColor := color.New(color.FgRed)
			fmt.Fprintln(a.outW, "configuration is not assemblable:")
			for _, p := range asmErr.Problems {
				fmt.Fprintf(a.outW, "  %s: %s\n", errColor.Sprint(p.Path), p.Reason)
			}
		}
		return err
	}

	okColor := color.New(color.FgGreen)
	fmt.Fprintf(a.outW, "%s plan %s: project=%q run=%q tasks=%d\n",
		okColor.Sprint("assembled"), plan.ID, plan.Project, plan.Run, len(plan.Tasks))
	for _, task := range plan.Tasks {
		fmt.Fprintf(a.outW, "  task %q weight=%g train_loaders=%d eval_loaders=%d\n",
			task.Name, task.Weight, len(task.TrainLoaders), len(task.EvalLoaders))
	}
	return nil
}
