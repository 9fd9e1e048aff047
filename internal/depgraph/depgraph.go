// Package depgraph holds a small directed graph over field names, used to
// statically inspect the dependency edges a schema's reshape rules declare
// and to reject rule tables that are cyclic before any edit ever runs.
//
// The graph is built once at schema-validation time and then discarded; it
// is not the structure the propagation engine walks at edit time.
package depgraph

import "fmt"

type node struct {
	id         string
	dependents map[string]*node
}

// Graph is a directed dependency graph keyed by field name. It is not safe
// for concurrent use; the configuration graph is single-owner by design.
type Graph struct {
	nodes map[string]*node
}

// New returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a node with the given ID. Adding an existing ID is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id, dependents: make(map[string]*node)}
}

// AddEdge records that editing `fromID` reshapes `toID`. Both endpoints are
// created if missing. Self-edges are rejected: a rule must never write back
// to the field that triggered it.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}
	g.AddNode(fromID)
	g.AddNode(toID)
	g.nodes[fromID].dependents[toID] = g.nodes[toID]
	return nil
}

// Dependents returns the IDs directly reshaped by the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	deps := make([]string, 0, len(n.dependents))
	for depID := range n.dependents {
		deps = append(deps, depID)
	}
	return deps, nil
}

// DetectCycles checks the graph for cycles using a depth-first search with
// permanent and temporary marks. It returns a non-nil error naming a node
// on the first cycle found.
func (g *Graph) DetectCycles() error {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}
		temporary[n.id] = true
		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, n := range g.nodes {
		if !permanent[n.id] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
