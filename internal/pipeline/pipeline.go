// Package pipeline defines the boundary contracts between the
// configuration graph and the data-loading collaborators it configures:
// the immutable runtime descriptors the assembler produces, the task
// implementation interface, and the opaque transform hooks a loader
// consumes. Nothing in this package performs scanning, batching, or I/O.
package pipeline

import "github.com/google/uuid"

// Row is one record produced by a scanner.
type Row map[string]any

// Batch is an ordered group of rows handed to the trainer together.
type Batch []Row

// RowMapFunc transforms a single row.
type RowMapFunc func(Row) Row

// RowFlowFunc transforms the whole row stream, for filtering, packing, or
// reordering that cannot be expressed row-by-row.
type RowFlowFunc func(<-chan Row) <-chan Row

// BatchMapFunc transforms an assembled batch.
type BatchMapFunc func(Batch) Batch

// Scanner is the handle on a registered data-format scanner
// implementation. The scanning pipeline itself lives behind this
// interface, outside this repository's scope.
type Scanner interface {
	Kind() string
}

// ScannerFactory constructs a scanner instance.
type ScannerFactory func() Scanner

// ResumeIndex marks a resume position within one worker's shard stream.
type ResumeIndex struct {
	Epoch int
	Part  int
	Row   int
}

// DataLoaderRequest is the immutable descriptor handed to the loader
// collaborator. It carries every configured value through the boundary
// unchanged; rate limits and timeouts are requests, not enforced here.
type DataLoaderRequest struct {
	BatchSize int

	PathList []string
	// Weights holds one sampling weight in [0,1] per path.
	Weights []float64

	ScannerType string
	NewScanner  ScannerFactory

	Seed           int64
	Shuffle        bool
	PrefetchFactor int
	IgnoreError    bool

	// QPS, InstructTimeout and WorkerTimeout are optional; nil means
	// unlimited / no timeout.
	QPS             *float64
	InstructTimeout *float64
	WorkerTimeout   *float64

	NumWorkers int
	NumRanks   int
	RankIdx    int

	// ResumeIndexes holds one list per path, one triple per worker.
	ResumeIndexes [][]ResumeIndex

	RowMap   RowMapFunc
	RowFlow  RowFlowFunc
	BatchMap BatchMapFunc
}

// Task is a selectable training task implementation. The configuration
// core only needs it to be nameable and to contribute its transform hooks
// to the loader requests built for it; loss and metric computation belong
// to the training loop.
type Task interface {
	Name() string

	// RowProcessor, FlowProcessor and BatchProcessor return the task's
	// transform hooks. Any of them may be nil.
	RowProcessor() RowMapFunc
	FlowProcessor() RowFlowFunc
	BatchProcessor() BatchMapFunc
}

// TaskInstance is one assembled task: the constructed implementation plus
// the loader requests resolved from its configuration.
type TaskInstance struct {
	Name   string
	Weight float64
	Impl   Task

	TrainLoaders []*DataLoaderRequest
	EvalLoaders  []*DataLoaderRequest
}

// TrainPlan is the root runtime descriptor assembled from a full
// configuration tree.
type TrainPlan struct {
	ID      uuid.UUID
	Project string
	Run     string
	Tasks   []*TaskInstance
}
