package model

import (
	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/field"
	"github.com/vk/confgrid/internal/registry"
)

// DefaultScanner is the scanner selected on a fresh loader config.
const DefaultScanner = "c4"

// Index declares a resume position: epoch, part and row, all zero-based.
func Index() *conf.Schema {
	return conf.NewSchema("index").
		Field("epoch", field.Int(0, field.Min(0))).
		Field("part", field.Int(0, field.Min(0))).
		Field("row", field.Int(0, field.Min(0)))
}

// DataLoader declares one data-loader configuration. Two count fields
// govern its shape: num_path drives path_list and path_weight, and
// together with num_workers drives the worker_indexes grid (one inner
// list of resume indexes per path, one index per worker).
func DataLoader(r *registry.Registry) *conf.Schema {
	resizeWorkerIndexes := conf.ResizeGrid("num_path", "num_workers", "worker_indexes")

	return conf.NewSchema("dataloader").
		Field("batch_size", field.Int(128, field.Min(1))).
		Field("num_path", field.Int(1, field.Min(1))).
		FieldList("path_list", field.NullString(
			field.Required(),
			field.Describe("path to a data file"),
		), 1).
		FieldList("path_weight", field.Float(1.0, field.Min(0), field.Max(1)), 1).
		Field("scanner_type", field.String(DefaultScanner, field.OptionsFrom(r.ScannerNames))).
		Field("seed", field.Int(42)).
		Field("shuffle", field.Bool(true)).
		Field("prefetch_factor", field.Int(2, field.Min(0))).
		Field("ignore_error", field.Bool(true)).
		Field("qps", field.NullFloat(field.Min(0.1))).
		Field("instruct_timeout", field.NullFloat(field.Min(0.1))).
		Field("worker_timeout", field.NullFloat(field.Min(0.1))).
		Field("num_workers", field.Int(1, field.Min(1))).
		Field("num_ranks", field.Int(1, field.Min(1))).
		Field("rank_idx", field.Int(0, field.Min(0))).
		ChildGrid("worker_indexes", Index(), 1, 1).
		On("num_path",
			conf.ResizeList("num_path", "path_list", "path_weight"),
			resizeWorkerIndexes,
		).
		On("num_workers", resizeWorkerIndexes)
}
