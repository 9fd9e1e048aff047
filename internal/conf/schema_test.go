package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/confgrid/internal/field"
	"github.com/zclconf/go-cty/cty"
)

func TestSchema_DeclarationPanics(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		assert.Panics(t, func() { NewSchema("") })
	})

	t.Run("duplicate entry", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSchema("dup").
				Field("n", field.Int(0)).
				Field("n", field.Int(0))
		})
	})

	t.Run("rule on unknown field", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSchema("s").On("missing", ResizeList("missing", "xs"))
		})
	})

	t.Run("rule on non-scalar entry", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSchema("s").
				FieldList("xs", field.Int(0), 1).
				On("xs", ResizeList("xs", "xs"))
		})
	})
}

func TestSchema_Edges(t *testing.T) {
	t.Parallel()

	s := loaderSchema()
	edges := s.Edges()

	require.Len(t, edges, 4)
	assert.Equal(t, Edge{Upstream: "num_path", Downstream: "path_list", Rule: "resize_path_list_path_weight"}, edges[0])
	assert.Equal(t, Edge{Upstream: "num_path", Downstream: "path_weight", Rule: "resize_path_list_path_weight"}, edges[1])
	assert.Equal(t, Edge{Upstream: "num_path", Downstream: "worker_indexes", Rule: "resize_worker_indexes"}, edges[2])
	assert.Equal(t, Edge{Upstream: "num_workers", Downstream: "worker_indexes", Rule: "resize_worker_indexes"}, edges[3])
}

func TestSchemaValidate(t *testing.T) {
	t.Parallel()

	t.Run("well-formed schema passes", func(t *testing.T) {
		assert.NoError(t, loaderSchema().Validate())
	})

	t.Run("undeclared rule output", func(t *testing.T) {
		s := NewSchema("s").
			Field("n", field.Int(0)).
			On("n", ResizeList("n", "ghost"))
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("defect inside a nested child schema", func(t *testing.T) {
		inner := NewSchema("inner").
			Field("n", field.Int(0)).
			On("n", ResizeList("n", "ghost"))
		outer := NewSchema("outer").
			Field("count", field.Int(1)).
			ChildList("items", inner, 1)
		err := outer.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inner")
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("grid element schema is validated", func(t *testing.T) {
		cell := NewSchema("cell").
			Field("n", field.Int(0)).
			On("n", ResizeList("n", "phantom"))
		s := NewSchema("host").ChildGrid("grid", cell, 1, 1)
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phantom")
	})

	t.Run("cyclic rule table", func(t *testing.T) {
		s := NewSchema("s").
			Field("a", field.Int(0)).
			Field("b", field.Int(0)).
			On("a", &Rule{Name: "ab", Outputs: []string{"b"}, Apply: func(*Batch, *Node) error { return nil }}).
			On("b", &Rule{Name: "ba", Outputs: []string{"a"}, Apply: func(*Batch, *Node) error { return nil }})
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cyclic")
	})
}

func TestPresenceListRule(t *testing.T) {
	t.Parallel()

	s := NewSchema("task").
		Field("is_trainable", field.Bool(true)).
		ChildList("train_loaders", indexSchema(), 1).
		On("is_trainable", PresenceList("is_trainable", "train_loaders"))
	tree := NewTree(s)

	require.NoError(t, tree.Set("is_trainable", cty.False))
	assert.Empty(t, tree.Root().ChildList("train_loaders"))

	require.NoError(t, tree.Set("is_trainable", cty.True))
	assert.Len(t, tree.Root().ChildList("train_loaders"), 1)

	// Re-asserting true keeps an already-populated list as is.
	require.NoError(t, tree.Set("is_trainable", cty.True))
	assert.Len(t, tree.Root().ChildList("train_loaders"), 1)
}
