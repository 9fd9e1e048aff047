// Package field implements the leaf value model of the configuration graph:
// a single typed value with a default, a set of edit-time constraints, and
// an assembly-time required flag.
//
// Values are cty.Value so that the same field machinery can carry numbers,
// strings, and booleans, accept loosely typed input from the edit surface,
// and round-trip through the flatten/apply boundary without a per-type
// codec. "No value" is the null of the field's declared type.
package field

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Spec describes a field: its cty type, default value, and the rules any
// edit must satisfy. A Spec is an immutable template; many Field instances
// (for example the elements of a resized list) are stamped out of one Spec.
type Spec struct {
	Type        cty.Type
	Default     cty.Value
	Description string

	// AllowNull permits an explicit "no value" edit. Fields without it
	// reject null the same way they reject an out-of-range number.
	AllowNull bool

	// Required marks fields that must hold a concrete (non-null) value by
	// the time the tree is assembled into runtime descriptors. It is not
	// checked on edit, so a tree can be built up incrementally.
	Required bool

	Constraints []Constraint
}

// New stamps a fresh Field out of the spec, holding the default value.
func (s *Spec) New(name string) *Field {
	return &Field{name: name, spec: s, value: s.Default}
}

// Field is one live configuration value inside a config node.
type Field struct {
	name  string
	spec  *Spec
	value cty.Value
	dirty bool
}

// Name returns the field's name within its owning node.
func (f *Field) Name() string { return f.name }

// Spec returns the immutable spec the field was stamped from.
func (f *Field) Spec() *Spec { return f.spec }

// Value returns the current value. It is null for "no value" fields.
func (f *Field) Value() cty.Value { return f.value }

// Set validates and stores a new value. The raw value is first converted to
// the field's declared type, then checked against every constraint. On any
// failure the previous value is left untouched and an error describing the
// rejection is returned. A successful set marks the field dirty; the
// propagation engine consumes and clears that flag.
func (f *Field) Set(raw cty.Value) error {
	if raw.IsNull() {
		if !f.spec.AllowNull {
			return &ValidationError{Field: f.name, Reason: "null is not a permitted value"}
		}
		f.value = cty.NullVal(f.spec.Type)
		f.dirty = true
		return nil
	}

	val, err := convert.Convert(raw, f.spec.Type)
	if err != nil {
		return &ValidationError{
			Field:  f.name,
			Reason: "cannot convert " + raw.Type().FriendlyName() + " to " + f.spec.Type.FriendlyName(),
		}
	}

	for _, c := range f.spec.Constraints {
		if err := c.Check(f.name, val); err != nil {
			return err
		}
	}

	f.value = val
	f.dirty = true
	return nil
}

// Reset restores the default value, bypassing constraints. Defaults are
// trusted at schema-authoring time.
func (f *Field) Reset() {
	f.value = f.spec.Default
	f.dirty = true
}

// Dirty reports whether the field has been set since the last propagation.
func (f *Field) Dirty() bool { return f.dirty }

// ClearDirty is called by the propagation engine once the field's pending
// change has been processed.
func (f *Field) ClearDirty() { f.dirty = false }

// Clone returns an independent copy of the field. cty values are immutable,
// so the copy is shallow.
func (f *Field) Clone() *Field {
	clone := *f
	return &clone
}

// AsInt returns the value as an int. The field must be a non-null number.
func (f *Field) AsInt() (int, error) {
	var v int
	if err := gocty.FromCtyValue(f.value, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// AsInt64 returns the value as an int64. The field must be a non-null number.
func (f *Field) AsInt64() (int64, error) {
	var v int64
	if err := gocty.FromCtyValue(f.value, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// AsFloat returns the value as a float64. The field must be a non-null number.
func (f *Field) AsFloat() (float64, error) {
	var v float64
	if err := gocty.FromCtyValue(f.value, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// AsFloatPtr returns nil for a null value and a pointer to the float
// otherwise. It is the natural reading for optional numeric fields such as
// rate limits and timeouts.
func (f *Field) AsFloatPtr() (*float64, error) {
	if f.value.IsNull() {
		return nil, nil
	}
	v, err := f.AsFloat()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// AsString returns the value as a string. The field must be non-null.
func (f *Field) AsString() (string, error) {
	var v string
	if err := gocty.FromCtyValue(f.value, &v); err != nil {
		return "", err
	}
	return v, nil
}

// AsBool returns the value as a bool. The field must be non-null.
func (f *Field) AsBool() (bool, error) {
	var v bool
	if err := gocty.FromCtyValue(f.value, &v); err != nil {
		return false, err
	}
	return v, nil
}
