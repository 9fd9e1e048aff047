package conf

import (
	"github.com/vk/confgrid/internal/field"
	"github.com/zclconf/go-cty/cty"
)

// Tree owns the root node of a configuration graph and funnels every edit
// through the propagation engine, so the tree observed between edits is
// always at a reshape fixed point. A Tree is single-owner and provides no
// internal synchronization.
type Tree struct {
	schema *Schema
	root   *Node
}

// NewTree instantiates the schema into a fresh tree with every field at
// its default and every list at its declared initial length.
func NewTree(s *Schema) *Tree {
	return &Tree{schema: s, root: newNode(s)}
}

// Schema returns the root schema.
func (t *Tree) Schema() *Schema { return t.schema }

// Root returns the root node. Callers holding the root across edits must
// re-fetch it after a propagation error: a failed batch restores the
// pre-edit snapshot, which swaps the root.
func (t *Tree) Root() *Node { return t.root }

// Set applies one edit at the given dotted field path and runs propagation
// to fixed point. On a validation or unknown-type failure nothing is
// mutated; on a propagation failure (a cyclic rule, or a rule producing an
// invalid write) the whole batch is rolled back to the pre-edit snapshot.
func (t *Tree) Set(path string, value cty.Value) error {
	target, err := t.resolve(path)
	if err != nil {
		return err
	}
	if target.fld == nil {
		return &PathError{Path: path, Reason: "path names a node, not a field"}
	}

	snapshot := t.root.clone()
	b := &batch{
		tree:      t,
		pending:   make(map[workKey]bool),
		processed: make(map[workKey]bool),
	}
	if err := b.Set(target.node, target.key, value); err != nil {
		// The initial edit failed validation before anything was written.
		return err
	}
	if err := b.run(); err != nil {
		t.root = snapshot
		return err
	}
	return nil
}

// Get returns the value at the given dotted field path.
func (t *Tree) Get(path string) (cty.Value, error) {
	target, err := t.resolve(path)
	if err != nil {
		return cty.NilVal, err
	}
	if target.fld == nil {
		return cty.NilVal, &PathError{Path: path, Reason: "path names a node, not a field"}
	}
	return target.fld.Value(), nil
}

// workKey identifies one field instance within one propagation batch. The
// key string is the field's name within its node, including a list index
// for list elements, so two elements of one list dedupe independently.
type workKey struct {
	node *Node
	key  string
}

type workItem struct {
	node *Node
	key  string
	base string // entry name without index, for rule lookup
	fld  *field.Field
}

// batch is the state of one propagation run: a FIFO worklist of changed
// fields, a pending set for dedup, and a processed set for cycle
// detection.
type batch struct {
	tree      *Tree
	queue     []workItem
	pending   map[workKey]bool
	processed map[workKey]bool
}

// Set performs a funneled field edit within the batch: validation, the
// write, and enqueueing of the field's reshape rules. It is the entry
// point both for the external edit that opens the batch and for writes
// made by rules while the batch drains.
func (b *batch) Set(n *Node, key string, value cty.Value) error {
	base, idx, hasIdx := splitIndex(key)
	e, err := n.entryOf(base)
	if err != nil {
		return &PathError{Path: key, Reason: err.Error()}
	}

	var fld *field.Field
	switch {
	case e.def.kind == kindField && !hasIdx:
		fld = e.field
	case e.def.kind == kindFieldList && hasIdx:
		if idx < 0 || idx >= len(e.fields) {
			return &PathError{Path: key, Reason: "list index out of range"}
		}
		fld = e.fields[idx]
	default:
		return &PathError{Path: key, Reason: "key does not name a settable field"}
	}

	// A field that selects a polymorphic child's type is resolved against
	// the child's registry before the write, so an unknown name rejects
	// the edit without touching field or child.
	if sel := n.schema.selectorFor(base); sel != nil && !value.IsNull() && value.Type().Equals(cty.String) {
		if _, ok := sel.lookup.LookupSchema(value.AsString()); !ok {
			return &UnknownTypeError{Name: value.AsString()}
		}
	}

	if err := fld.Set(value); err != nil {
		return err
	}

	k := workKey{node: n, key: key}
	if b.processed[k] {
		return &CyclicDependencyError{Node: n.schema.name, Field: key}
	}
	if !b.pending[k] {
		b.pending[k] = true
		b.queue = append(b.queue, workItem{node: n, key: key, base: base, fld: fld})
	}
	return nil
}

// run drains the worklist. Each dequeued field runs its registered reshape
// rules exactly once, in registration order; rules may perform further
// funneled edits, which extend the queue.
func (b *batch) run() error {
	for len(b.queue) > 0 {
		item := b.queue[0]
		b.queue = b.queue[1:]

		k := workKey{node: item.node, key: item.key}
		delete(b.pending, k)
		b.processed[k] = true
		item.fld.ClearDirty()

		for _, rule := range item.node.schema.rulesFor(item.base) {
			if err := rule.Apply(b, item.node); err != nil {
				return err
			}
		}
	}
	return nil
}

// selectorFor returns the selector entry keyed by the given type field, or
// nil if the field does not drive a polymorphic child.
func (s *Schema) selectorFor(typeField string) *entryDef {
	for _, def := range s.defs {
		if def.kind == kindSelector && def.typeField == typeField {
			return def
		}
	}
	return nil
}
