// Package hcl implements the config.Loader interface for HCL edit files.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/confgrid/internal/config"
	"github.com/vk/confgrid/internal/ctxlog"
	"github.com/vk/confgrid/internal/fsutil"
	"github.com/vk/confgrid/internal/schema"
)

// Loader parses .hcl edit files into the format-agnostic edit model.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under the given paths, decodes their ordered
// `set` blocks, and evaluates each value expression. Expressions are
// evaluated without a variable scope: edit files carry literal values, not
// references into a wider evaluation context.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, root := range paths {
		filePaths, err := fsutil.FindFilesByExtension(root, ".hcl")
		if err != nil {
			return nil, err
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl edit files found in path", "path", root)
			continue
		}

		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
			}

			var edits schema.EditConfig
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &edits); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode edit file %s: %w", filePath, diags)
			}

			for _, set := range edits.Sets {
				content, diags := set.Body.Content(schema.SetBody)
				if diags.HasErrors() {
					return nil, fmt.Errorf("failed to decode set %q in %s: %w", set.Path, filePath, diags)
				}
				val, diags := content.Attributes["value"].Expr.Value(nil)
				if diags.HasErrors() {
					return nil, fmt.Errorf("failed to evaluate value for %q in %s: %w", set.Path, filePath, diags)
				}
				model.Edits = append(model.Edits, &config.Edit{
					Path:   set.Path,
					Value:  val,
					Source: filePath,
				})
			}
			logger.Debug("Loaded edit file.", "file", filePath, "edits", len(edits.Sets))
		}
	}

	logger.Debug("Edit loading complete.", "total_edits", len(model.Edits))
	return model, nil
}
