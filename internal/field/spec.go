package field

import "github.com/zclconf/go-cty/cty"

// Option customizes a Spec at construction time.
type Option func(*Spec)

// Min rejects numeric values below the given bound.
func Min(bound float64) Option {
	return func(s *Spec) {
		s.Constraints = append(s.Constraints, &minConstraint{bound: bound})
	}
}

// Max rejects numeric values above the given bound.
func Max(bound float64) Option {
	return func(s *Spec) {
		s.Constraints = append(s.Constraints, &maxConstraint{bound: bound})
	}
}

// OneOf restricts a string field to a fixed set of values.
func OneOf(options ...string) Option {
	return func(s *Spec) {
		s.Constraints = append(s.Constraints, &optionsConstraint{fixed: options})
	}
}

// OptionsFrom restricts a string field to a dynamically computed set of
// values, typically the names currently held by an open registry. The
// function is consulted on every edit, so late registrations are honored.
func OptionsFrom(fn func() []string) Option {
	return func(s *Spec) {
		s.Constraints = append(s.Constraints, &optionsConstraint{fn: fn})
	}
}

// AllowNull permits "no value" edits.
func AllowNull() Option {
	return func(s *Spec) { s.AllowNull = true }
}

// Required marks the field as needing a concrete value at assembly time.
func Required() Option {
	return func(s *Spec) { s.Required = true }
}

// Describe attaches human-facing help text to the spec.
func Describe(text string) Option {
	return func(s *Spec) { s.Description = text }
}

func build(typ cty.Type, def cty.Value, opts []Option) *Spec {
	s := &Spec{Type: typ, Default: def}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Int declares an integer field with the given default.
func Int(def int64, opts ...Option) *Spec {
	return build(cty.Number, cty.NumberIntVal(def), opts)
}

// Float declares a float field with the given default.
func Float(def float64, opts ...Option) *Spec {
	return build(cty.Number, cty.NumberFloatVal(def), opts)
}

// NullFloat declares an optional float field defaulting to "no value".
func NullFloat(opts ...Option) *Spec {
	s := build(cty.Number, cty.NullVal(cty.Number), opts)
	s.AllowNull = true
	return s
}

// String declares a string field with the given default.
func String(def string, opts ...Option) *Spec {
	return build(cty.String, cty.StringVal(def), opts)
}

// NullString declares a string field defaulting to "no value". It is the
// shape used for values a user must fill in before assembly, such as data
// file paths.
func NullString(opts ...Option) *Spec {
	s := build(cty.String, cty.NullVal(cty.String), opts)
	s.AllowNull = true
	return s
}

// Bool declares a boolean field with the given default.
func Bool(def bool, opts ...Option) *Spec {
	return build(cty.Bool, cty.BoolVal(def), opts)
}
