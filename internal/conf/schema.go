package conf

import (
	"fmt"

	"github.com/vk/confgrid/internal/depgraph"
	"github.com/vk/confgrid/internal/field"
)

// entryKind enumerates the shapes an entry of a config node can take.
type entryKind int

const (
	kindField entryKind = iota
	kindFieldList
	kindChild
	kindChildList
	kindChildGrid
	kindSelector
)

// SchemaLookup resolves polymorphic child schemas by registered name. It is
// implemented by the task registry; the conf package only needs resolution
// and enumeration.
type SchemaLookup interface {
	LookupSchema(name string) (*Schema, bool)
	SchemaNames() []string
}

// entryDef is the declaration of one named entry within a schema.
type entryDef struct {
	name string
	kind entryKind

	// kindField and kindFieldList: the (element) field spec.
	spec *field.Spec

	// kindChild, kindChildList and kindChildGrid: the (element) schema.
	child *Schema

	// kindSelector: the sibling field whose value names the active schema,
	// and the registry the name resolves against.
	typeField string
	lookup    SchemaLookup

	// Initial lengths for list and grid entries. Defaults must agree with
	// the defaults of the count fields that govern them so a fresh node is
	// already at fixed point.
	defaultLen  int
	defaultRows int
	defaultCols int
}

// Edge is one inspectable dependency edge: editing Upstream runs a rule
// that reshapes Downstream.
type Edge struct {
	Upstream   string
	Downstream string
	Rule       string
}

// Schema describes one config node type. Schemas are built once, at
// registration time, through the chaining declaration methods below, and
// are immutable afterwards. Declaration mistakes (duplicate names, rules
// referencing unknown fields) are programmer errors and panic.
type Schema struct {
	name   string
	defs   []*entryDef
	byName map[string]*entryDef

	// rules holds, per upstream field, the reshape rules to run when that
	// field changes, in declaration order.
	rules map[string][]*Rule
	edges []Edge
}

// NewSchema starts the declaration of a named node type.
func NewSchema(name string) *Schema {
	if name == "" {
		panic("conf: schema name must not be empty")
	}
	return &Schema{
		name:   name,
		byName: make(map[string]*entryDef),
		rules:  make(map[string][]*Rule),
	}
}

// Name returns the schema's registered type name.
func (s *Schema) Name() string { return s.name }

func (s *Schema) add(def *entryDef) *Schema {
	if _, exists := s.byName[def.name]; exists {
		panic(fmt.Sprintf("conf: schema %q declares entry %q twice", s.name, def.name))
	}
	s.defs = append(s.defs, def)
	s.byName[def.name] = def
	return s
}

// Field declares a scalar field.
func (s *Schema) Field(name string, spec *field.Spec) *Schema {
	return s.add(&entryDef{name: name, kind: kindField, spec: spec})
}

// FieldList declares a list of fields stamped from one element spec, with
// the given initial length.
func (s *Schema) FieldList(name string, elem *field.Spec, length int) *Schema {
	return s.add(&entryDef{name: name, kind: kindFieldList, spec: elem, defaultLen: length})
}

// Child declares a fixed single child node.
func (s *Schema) Child(name string, child *Schema) *Schema {
	return s.add(&entryDef{name: name, kind: kindChild, child: child})
}

// ChildList declares a list of child nodes of one schema, with the given
// initial length.
func (s *Schema) ChildList(name string, elem *Schema, length int) *Schema {
	return s.add(&entryDef{name: name, kind: kindChildList, child: elem, defaultLen: length})
}

// ChildGrid declares a list of lists of child nodes, rows by cols. The two
// dimensions are governed by two separate count fields.
func (s *Schema) ChildGrid(name string, elem *Schema, rows, cols int) *Schema {
	return s.add(&entryDef{name: name, kind: kindChildGrid, child: elem, defaultRows: rows, defaultCols: cols})
}

// Selector declares a polymorphic child whose schema is chosen by the value
// of a previously declared sibling field, resolved against the given
// lookup. Editing the type field to a name not known to the lookup fails
// with UnknownTypeError and leaves the current child untouched.
func (s *Schema) Selector(name, typeField string, lookup SchemaLookup) *Schema {
	def, ok := s.byName[typeField]
	if !ok || def.kind != kindField {
		panic(fmt.Sprintf("conf: schema %q selector %q references unknown type field %q", s.name, name, typeField))
	}
	return s.add(&entryDef{name: name, kind: kindSelector, typeField: typeField, lookup: lookup})
}

// On registers reshape rules against an upstream field, in declaration
// order. The upstream must already be declared; each rule's outputs become
// inspectable dependency edges.
func (s *Schema) On(upstream string, rules ...*Rule) *Schema {
	def, ok := s.byName[upstream]
	if !ok {
		panic(fmt.Sprintf("conf: schema %q registers a rule on unknown field %q", s.name, upstream))
	}
	if def.kind != kindField {
		panic(fmt.Sprintf("conf: schema %q registers a rule on %q, which is not a scalar field", s.name, upstream))
	}
	for _, r := range rules {
		s.rules[upstream] = append(s.rules[upstream], r)
		for _, out := range r.Outputs {
			s.edges = append(s.edges, Edge{Upstream: upstream, Downstream: out, Rule: r.Name})
		}
	}
	return s
}

// Edges returns the declared dependency edges in registration order.
func (s *Schema) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// rulesFor returns the rules registered against the given field.
func (s *Schema) rulesFor(fieldName string) []*Rule {
	return s.rules[fieldName]
}

// Validate checks the schema's rule table for authoring defects: rules
// whose outputs are not declared entries, and a statically cyclic edge
// graph. Child, child-list and child-grid schemas are validated
// recursively; selector schemas live in their registry and are validated
// there, one registered schema at a time.
func (s *Schema) Validate() error {
	return s.validate(make(map[*Schema]bool))
}

func (s *Schema) validate(seen map[*Schema]bool) error {
	if seen[s] {
		return nil
	}
	seen[s] = true

	g := depgraph.New()
	for _, e := range s.edges {
		if _, ok := s.byName[e.Downstream]; !ok {
			return fmt.Errorf("schema %q: rule %q writes to undeclared entry %q", s.name, e.Rule, e.Downstream)
		}
		if err := g.AddEdge(e.Upstream, e.Downstream); err != nil {
			return fmt.Errorf("schema %q: rule %q: %w", s.name, e.Rule, err)
		}
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("schema %q: rule table is cyclic: %w", s.name, err)
	}

	for _, def := range s.defs {
		if def.child == nil {
			continue
		}
		if err := def.child.validate(seen); err != nil {
			return fmt.Errorf("schema %q: entry %q: %w", s.name, def.name, err)
		}
	}
	return nil
}
