package conf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/confgrid/internal/field"
	"github.com/zclconf/go-cty/cty"
)

// PathValue is one flattened (field path, value) pair.
type PathValue struct {
	Path  string
	Value cty.Value
}

// Flatten walks the tree depth-first in declaration order and returns
// every field as a (path, value) pair. Replaying the pairs in this order
// onto a fresh tree of the same schema reconstructs an equivalent tree:
// count fields precede the lists they govern and type fields precede the
// polymorphic children they select, because schemas declare them that way.
func (t *Tree) Flatten() []PathValue {
	var out []PathValue
	flattenNode(t.root, "", &out)
	return out
}

func flattenNode(n *Node, prefix string, out *[]PathValue) {
	for _, def := range n.schema.defs {
		e := n.entries[def.name]
		switch def.kind {
		case kindField:
			*out = append(*out, PathValue{Path: prefix + def.name, Value: e.field.Value()})
		case kindFieldList:
			for i, f := range e.fields {
				*out = append(*out, PathValue{Path: prefix + def.name + "." + strconv.Itoa(i), Value: f.Value()})
			}
		case kindChild, kindSelector:
			flattenNode(e.child, prefix+def.name+".", out)
		case kindChildList:
			for i, child := range e.nodes {
				flattenNode(child, prefix+def.name+"."+strconv.Itoa(i)+".", out)
			}
		case kindChildGrid:
			for i, row := range e.grid {
				for j, child := range row {
					flattenNode(child, prefix+def.name+"."+strconv.Itoa(i)+"."+strconv.Itoa(j)+".", out)
				}
			}
		}
	}
}

// FieldRef pairs a field's full path with the live field itself, so a
// caller can inspect specs (required flags, descriptions) as well as
// values.
type FieldRef struct {
	Path  string
	Field *field.Field
}

// Fields returns every field in the tree with its full path, in the same
// depth-first declaration order as Flatten.
func (t *Tree) Fields() []FieldRef {
	var out []FieldRef
	fieldRefs(t.root, "", &out)
	return out
}

func fieldRefs(n *Node, prefix string, out *[]FieldRef) {
	for _, def := range n.schema.defs {
		e := n.entries[def.name]
		switch def.kind {
		case kindField:
			*out = append(*out, FieldRef{Path: prefix + def.name, Field: e.field})
		case kindFieldList:
			for i, f := range e.fields {
				*out = append(*out, FieldRef{Path: prefix + def.name + "." + strconv.Itoa(i), Field: f})
			}
		case kindChild, kindSelector:
			fieldRefs(e.child, prefix+def.name+".", out)
		case kindChildList:
			for i, child := range e.nodes {
				fieldRefs(child, prefix+def.name+"."+strconv.Itoa(i)+".", out)
			}
		case kindChildGrid:
			for i, row := range e.grid {
				for j, child := range row {
					fieldRefs(child, prefix+def.name+"."+strconv.Itoa(i)+"."+strconv.Itoa(j)+".", out)
				}
			}
		}
	}
}

// ApplyAll replays flattened pairs through the propagation engine. Pairs
// whose paths do not yet resolve (a list entry arriving before its count
// field, a subtype field arriving before its selector) are retried on the
// next pass, so the replay converges regardless of pair order. A pass that
// resolves nothing stops the replay and reports the leftover paths; any
// non-path error fails immediately.
func (t *Tree) ApplyAll(pairs []PathValue) error {
	remaining := pairs
	for len(remaining) > 0 {
		var deferred []PathValue
		progress := false

		for _, pv := range remaining {
			err := t.Set(pv.Path, pv.Value)
			if err == nil {
				progress = true
				continue
			}
			if _, retryable := err.(*PathError); retryable {
				deferred = append(deferred, pv)
				continue
			}
			return err
		}

		if !progress {
			paths := make([]string, len(deferred))
			for i, pv := range deferred {
				paths[i] = pv.Path
			}
			return fmt.Errorf("unresolvable field paths after replay: %s", strings.Join(paths, ", "))
		}
		remaining = deferred
	}
	return nil
}
