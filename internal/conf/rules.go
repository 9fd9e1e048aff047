package conf

import (
	"fmt"
	"strings"
)

// Rule is one reshape behavior registered against an upstream field. Apply
// receives the running batch so that any field writes a rule makes are
// funneled through the same propagation machinery as external edits.
// Outputs names the entries the rule writes; they become the schema's
// inspectable dependency edges and feed the static cycle check.
type Rule struct {
	Name    string
	Outputs []string
	Apply   func(b *Batch, n *Node) error
}

// Batch is the rule-facing handle on a running propagation. It exposes the
// funneled Set; structural resizes go through the helpers in this file.
type Batch = batch

// ResizeList returns a rule that keeps the named list entries at exactly
// the length held by the count field. Truncation drops trailing elements;
// growth appends freshly defaulted elements; elements at retained indices
// are never touched. The same rule resizes every target, so lists governed
// by one count always end at equal length.
func ResizeList(count string, targets ...string) *Rule {
	return &Rule{
		Name:    "resize_" + strings.Join(targets, "_"),
		Outputs: targets,
		Apply: func(b *Batch, n *Node) error {
			length, err := n.Field(count).AsInt()
			if err != nil {
				return fmt.Errorf("count field %q: %w", count, err)
			}
			if length < 0 {
				return fmt.Errorf("count field %q: negative length %d", count, length)
			}
			for _, name := range targets {
				e, err := n.entryOf(name)
				if err != nil {
					return err
				}
				resizeEntry(e, length)
			}
			return nil
		},
	}
}

// ResizeGrid returns a rule that keeps a grid entry at rowCount by
// colCount: the outer list is resized first (new rows are born at the
// current column count), then every inner list, pre-existing and new, is
// resized to the column count. Register it on both count fields.
func ResizeGrid(rowCount, colCount, target string) *Rule {
	return &Rule{
		Name:    "resize_" + target,
		Outputs: []string{target},
		Apply: func(b *Batch, n *Node) error {
			rows, err := n.Field(rowCount).AsInt()
			if err != nil {
				return fmt.Errorf("count field %q: %w", rowCount, err)
			}
			cols, err := n.Field(colCount).AsInt()
			if err != nil {
				return fmt.Errorf("count field %q: %w", colCount, err)
			}
			if rows < 0 || cols < 0 {
				return fmt.Errorf("grid %q: negative dimensions %dx%d", target, rows, cols)
			}

			e, err := n.entryOf(target)
			if err != nil {
				return err
			}
			if e.def.kind != kindChildGrid {
				return fmt.Errorf("entry %q is not a grid", target)
			}

			if len(e.grid) > rows {
				e.grid = e.grid[:rows]
			}
			for len(e.grid) < rows {
				row := make([]*Node, cols)
				for j := range row {
					row[j] = newNode(e.def.child)
				}
				e.grid = append(e.grid, row)
			}
			for i, row := range e.grid {
				if len(row) > cols {
					e.grid[i] = row[:cols]
				}
				for len(e.grid[i]) < cols {
					e.grid[i] = append(e.grid[i], newNode(e.def.child))
				}
			}
			return nil
		},
	}
}

// PresenceList returns a rule that ties a list's presence to a boolean
// flag: true ensures at least one element, false empties the list. It is
// the shape behind "trainable tasks carry a train loader config".
func PresenceList(flag string, targets ...string) *Rule {
	return &Rule{
		Name:    "presence_" + strings.Join(targets, "_"),
		Outputs: targets,
		Apply: func(b *Batch, n *Node) error {
			enabled, err := n.Field(flag).AsBool()
			if err != nil {
				return fmt.Errorf("flag field %q: %w", flag, err)
			}
			for _, name := range targets {
				e, err := n.entryOf(name)
				if err != nil {
					return err
				}
				switch {
				case enabled && entryLen(e) == 0:
					resizeEntry(e, 1)
				case !enabled:
					resizeEntry(e, 0)
				}
			}
			return nil
		},
	}
}

// SwapSelector returns a rule that swaps a polymorphic child when its type
// field changes. Selecting the already-active type is a no-op, so repeated
// identical selection never resets in-progress edits to the child.
// Switching types discards the old child entirely and instantiates the new
// schema's defaults; state does not migrate across types.
func SwapSelector(typeField, selector string) *Rule {
	return &Rule{
		Name:    "swap_" + selector,
		Outputs: []string{selector},
		Apply: func(b *Batch, n *Node) error {
			name, err := n.Field(typeField).AsString()
			if err != nil {
				return fmt.Errorf("type field %q: %w", typeField, err)
			}
			e, err := n.entryOf(selector)
			if err != nil {
				return err
			}
			if e.def.kind != kindSelector {
				return fmt.Errorf("entry %q is not a polymorphic child", selector)
			}
			if e.child.schema.name == name {
				return nil
			}
			schema, ok := e.def.lookup.LookupSchema(name)
			if !ok {
				return &UnknownTypeError{Name: name}
			}
			e.child = newNode(schema)
			return nil
		},
	}
}

func entryLen(e *entry) int {
	switch e.def.kind {
	case kindFieldList:
		return len(e.fields)
	case kindChildList:
		return len(e.nodes)
	default:
		return 0
	}
}

// resizeEntry applies the truncate-or-append-defaults resize to a field
// list or child list. A fresh default is stamped per appended element;
// one default instance is never shared across slots.
func resizeEntry(e *entry, length int) {
	switch e.def.kind {
	case kindFieldList:
		if len(e.fields) > length {
			e.fields = e.fields[:length]
		}
		for len(e.fields) < length {
			e.fields = append(e.fields, e.def.spec.New(e.def.name))
		}
	case kindChildList:
		if len(e.nodes) > length {
			e.nodes = e.nodes[:length]
		}
		for len(e.nodes) < length {
			e.nodes = append(e.nodes, newNode(e.def.child))
		}
	}
}
