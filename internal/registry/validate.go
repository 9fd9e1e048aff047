package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/confgrid/internal/ctxlog"
)

// Validate performs a strict startup check of every registered task
// schema and the child schemas nested under it: each rule table must
// reference declared entries only and must be statically acyclic, and each
// schema's dependency edges are logged for inspection. A failure here is a
// schema-authoring defect, reported as a single aggregated error so an
// author can fix every module in one pass.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, name := range r.taskOrder {
		t := r.tasks[name]
		if err := t.Schema.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("task '%s': %v", name, err))
			continue
		}
		for _, edge := range t.Schema.Edges() {
			logger.Debug("Schema dependency edge.",
				"schema", name, "upstream", edge.Upstream, "downstream", edge.Downstream, "rule", edge.Rule)
		}
	}

	if len(r.scannerOrder) == 0 {
		errs = append(errs, "no scanners registered; every loader config needs a resolvable scanner_type")
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "tasks", len(r.taskOrder), "scanners", len(r.scannerOrder))
	return nil
}
