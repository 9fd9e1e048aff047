// Package conf implements the reactive configuration graph: composite
// config nodes built from declarative schemas, dependency edges between
// fields, and a propagation engine that keeps the shape of list-valued
// entries consistent with the count fields that govern them.
//
// A Schema is an immutable description of one node type: its fields, its
// child nodes, and a table of reshape rules keyed by the upstream field
// that triggers them. A Tree instantiates a schema into live Nodes and
// funnels every edit, whether from a typed accessor, the flatten/apply
// boundary, or a file loader, through the same propagation engine, so
// the tree observed between edits is always at fixed point.
package conf
