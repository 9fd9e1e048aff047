package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("num_path")
	assert.Len(t, g.nodes, 1)
	n, ok := g.nodes["num_path"]
	require.True(t, ok)
	assert.Equal(t, "num_path", n.id)
	assert.NotNil(t, n.dependents)

	g.AddNode("num_path") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("path_list")
	assert.Len(t, g.nodes, 2)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()

		err := g.AddEdge("num_path", "path_list")
		require.NoError(t, err)

		from := g.nodes["num_path"]
		require.NotNil(t, from)
		assert.Contains(t, from.dependents, "path_list")
	})

	t.Run("endpoints are created implicitly", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddEdge("a", "b"))
		assert.Len(t, g.nodes, 2)
	})

	t.Run("self edge is rejected", func(t *testing.T) {
		g := New()
		err := g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestDependents(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge("num_path", "path_list"))
	require.NoError(t, g.AddEdge("num_path", "path_weight"))

	deps, err := g.Dependents("num_path")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"path_list", "path_weight"}, deps)

	_, err = g.Dependents("dne")
	assert.ErrorContains(t, err, "node not found")
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("linear chain has no cycles", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("diamond has no cycles", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("a", "c"))
		require.NoError(t, g.AddEdge("b", "d"))
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("two-node cycle is detected", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "a"))
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")
	})
}
