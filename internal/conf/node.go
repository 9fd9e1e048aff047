package conf

import (
	"fmt"

	"github.com/vk/confgrid/internal/field"
)

// Node is one live composite in the configuration tree: named fields,
// field lists, child nodes, child-node lists and grids, instantiated from a
// Schema with everything at its default.
type Node struct {
	schema  *Schema
	entries map[string]*entry
}

// entry is the live counterpart of an entryDef. Exactly one of the value
// slots below is populated, according to the def's kind.
type entry struct {
	def    *entryDef
	field  *field.Field
	fields []*field.Field
	child  *Node
	nodes  []*Node
	grid   [][]*Node
}

// newNode instantiates a schema with every field at its default and every
// list at its declared initial length. Entries are created in declaration
// order, so a selector can read the default of its earlier-declared type
// field.
func newNode(s *Schema) *Node {
	n := &Node{schema: s, entries: make(map[string]*entry, len(s.defs))}
	for _, def := range s.defs {
		e := &entry{def: def}
		switch def.kind {
		case kindField:
			e.field = def.spec.New(def.name)
		case kindFieldList:
			e.fields = make([]*field.Field, def.defaultLen)
			for i := range e.fields {
				e.fields[i] = def.spec.New(def.name)
			}
		case kindChild:
			e.child = newNode(def.child)
		case kindChildList:
			e.nodes = make([]*Node, def.defaultLen)
			for i := range e.nodes {
				e.nodes[i] = newNode(def.child)
			}
		case kindChildGrid:
			e.grid = make([][]*Node, def.defaultRows)
			for i := range e.grid {
				e.grid[i] = make([]*Node, def.defaultCols)
				for j := range e.grid[i] {
					e.grid[i][j] = newNode(def.child)
				}
			}
		case kindSelector:
			typeName, err := n.entries[def.typeField].field.AsString()
			if err != nil {
				panic(fmt.Sprintf("conf: schema %q: type field %q has a non-string default", s.name, def.typeField))
			}
			child, ok := def.lookup.LookupSchema(typeName)
			if !ok {
				panic(fmt.Sprintf("conf: schema %q: default type %q is not registered", s.name, typeName))
			}
			e.child = newNode(child)
		}
		n.entries[def.name] = e
	}
	return n
}

// Schema returns the schema the node was instantiated from.
func (n *Node) Schema() *Schema { return n.schema }

func (n *Node) entryOf(name string) (*entry, error) {
	e, ok := n.entries[name]
	if !ok {
		return nil, fmt.Errorf("node %q has no entry %q", n.schema.name, name)
	}
	return e, nil
}

// Field returns the named scalar field. It panics on an unknown or
// non-scalar name; callers are typed accessors reading their own schema.
func (n *Node) Field(name string) *field.Field {
	e := n.mustEntry(name, kindField)
	return e.field
}

// FieldList returns the named list of fields.
func (n *Node) FieldList(name string) []*field.Field {
	e := n.mustEntry(name, kindFieldList)
	return e.fields
}

// Child returns the named fixed or polymorphic child node.
func (n *Node) Child(name string) *Node {
	e, err := n.entryOf(name)
	if err != nil {
		panic(err)
	}
	if e.def.kind != kindChild && e.def.kind != kindSelector {
		panic(fmt.Sprintf("conf: entry %q of node %q is not a child node", name, n.schema.name))
	}
	return e.child
}

// ChildList returns the named list of child nodes.
func (n *Node) ChildList(name string) []*Node {
	e := n.mustEntry(name, kindChildList)
	return e.nodes
}

// ChildGrid returns the named grid of child nodes, outer index first.
func (n *Node) ChildGrid(name string) [][]*Node {
	e := n.mustEntry(name, kindChildGrid)
	return e.grid
}

func (n *Node) mustEntry(name string, kind entryKind) *entry {
	e, err := n.entryOf(name)
	if err != nil {
		panic(err)
	}
	if e.def.kind != kind {
		panic(fmt.Sprintf("conf: entry %q of node %q has a different kind than requested", name, n.schema.name))
	}
	return e
}

// clone deep-copies the node. It backs the snapshot the engine takes before
// every propagation batch.
func (n *Node) clone() *Node {
	c := &Node{schema: n.schema, entries: make(map[string]*entry, len(n.entries))}
	for name, e := range n.entries {
		ce := &entry{def: e.def}
		switch e.def.kind {
		case kindField:
			ce.field = e.field.Clone()
		case kindFieldList:
			ce.fields = make([]*field.Field, len(e.fields))
			for i, f := range e.fields {
				ce.fields[i] = f.Clone()
			}
		case kindChild, kindSelector:
			ce.child = e.child.clone()
		case kindChildList:
			ce.nodes = make([]*Node, len(e.nodes))
			for i, child := range e.nodes {
				ce.nodes[i] = child.clone()
			}
		case kindChildGrid:
			ce.grid = make([][]*Node, len(e.grid))
			for i, row := range e.grid {
				ce.grid[i] = make([]*Node, len(row))
				for j, child := range row {
					ce.grid[i][j] = child.clone()
				}
			}
		}
		c.entries[name] = ce
	}
	return c
}
