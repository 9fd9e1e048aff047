package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/field"
	"github.com/vk/confgrid/internal/pipeline"
	"github.com/vk/confgrid/internal/registry"
	"github.com/vk/confgrid/modules/generic"
	"github.com/vk/confgrid/modules/scanners"
)

func testTask(name string) *registry.RegisteredTask {
	return &registry.RegisteredTask{
		Schema: conf.NewSchema(name).Field("n", field.Int(0)),
		New:    func() pipeline.Task { return &generic.Task{} },
	}
}

func TestRegisterTask(t *testing.T) {
	t.Run("registration and lookup", func(t *testing.T) {
		r := registry.New()
		r.RegisterTask("a", testTask("a"))

		got, ok := r.Task("a")
		require.True(t, ok)
		assert.Equal(t, "a", got.Schema.Name())

		_, ok = r.Task("dne")
		assert.False(t, ok)
	})

	t.Run("duplicate name panics", func(t *testing.T) {
		r := registry.New()
		r.RegisterTask("a", testTask("a"))
		assert.Panics(t, func() { r.RegisterTask("a", testTask("a")) })
	})

	t.Run("name and schema name must agree", func(t *testing.T) {
		r := registry.New()
		assert.Panics(t, func() { r.RegisterTask("a", testTask("b")) })
	})

	t.Run("nil schema panics", func(t *testing.T) {
		r := registry.New()
		assert.Panics(t, func() {
			r.RegisterTask("a", &registry.RegisteredTask{New: func() pipeline.Task { return nil }})
		})
	})
}

func TestEnumerationOrderIsRegistrationOrder(t *testing.T) {
	r := registry.New()
	r.RegisterTask("c", testTask("c"))
	r.RegisterTask("a", testTask("a"))
	r.RegisterTask("b", testTask("b"))
	assert.Equal(t, []string{"c", "a", "b"}, r.TaskNames())

	r.RegisterScanner("jsonl", func() pipeline.Scanner { return nil })
	r.RegisterScanner("c4", func() pipeline.Scanner { return nil })
	assert.Equal(t, []string{"jsonl", "c4"}, r.ScannerNames())
}

func TestRegisterScanner_DuplicatePanics(t *testing.T) {
	r := registry.New()
	r.RegisterScanner("c4", func() pipeline.Scanner { return nil })
	assert.Panics(t, func() {
		r.RegisterScanner("c4", func() pipeline.Scanner { return nil })
	})
}

func TestTaskSchemas(t *testing.T) {
	r := registry.New()
	r.RegisterTask("a", testTask("a"))
	lookup := r.TaskSchemas()

	s, ok := lookup.LookupSchema("a")
	require.True(t, ok)
	assert.Equal(t, "a", s.Name())

	_, ok = lookup.LookupSchema("dne")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, lookup.SchemaNames())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("well-formed registry passes", func(t *testing.T) {
		r := registry.New()
		(&scanners.Module{}).Register(r)
		(&generic.Module{}).Register(r)
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("no scanners fails", func(t *testing.T) {
		r := registry.New()
		(&generic.Module{}).Register(r)
		err := r.Validate(ctx)
		assert.ErrorContains(t, err, "no scanners registered")
	})

	t.Run("defective schemas are aggregated", func(t *testing.T) {
		r := registry.New()
		(&scanners.Module{}).Register(r)
		r.RegisterTask("bad_one", &registry.RegisteredTask{
			Schema: conf.NewSchema("bad_one").
				Field("n", field.Int(0)).
				On("n", conf.ResizeList("n", "ghost")),
			New: func() pipeline.Task { return &generic.Task{} },
		})
		r.RegisterTask("bad_two", &registry.RegisteredTask{
			Schema: conf.NewSchema("bad_two").
				Field("n", field.Int(0)).
				On("n", conf.ResizeList("n", "phantom")),
			New: func() pipeline.Task { return &generic.Task{} },
		})

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad_one")
		assert.Contains(t, err.Error(), "bad_two")
	})
}
