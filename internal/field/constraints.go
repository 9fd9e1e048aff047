package field

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Constraint is one edit-time validity rule. Check is only called with a
// non-null value already converted to the field's declared type.
type Constraint interface {
	Check(fieldName string, v cty.Value) error
}

type minConstraint struct {
	bound float64
}

func (c *minConstraint) Check(name string, v cty.Value) error {
	if v.AsBigFloat().Cmp(big.NewFloat(c.bound)) < 0 {
		return &ValidationError{
			Field:  name,
			Reason: fmt.Sprintf("value %s is below the minimum %v", v.AsBigFloat().String(), c.bound),
		}
	}
	return nil
}

type maxConstraint struct {
	bound float64
}

func (c *maxConstraint) Check(name string, v cty.Value) error {
	if v.AsBigFloat().Cmp(big.NewFloat(c.bound)) > 0 {
		return &ValidationError{
			Field:  name,
			Reason: fmt.Sprintf("value %s is above the maximum %v", v.AsBigFloat().String(), c.bound),
		}
	}
	return nil
}

// optionsConstraint restricts a string to a fixed or dynamically computed
// option set.
type optionsConstraint struct {
	fixed []string
	fn    func() []string
}

func (c *optionsConstraint) options() []string {
	if c.fn != nil {
		return c.fn()
	}
	return c.fixed
}

func (c *optionsConstraint) Check(name string, v cty.Value) error {
	opts := c.options()
	if slices.Contains(opts, v.AsString()) {
		return nil
	}
	return &ValidationError{
		Field:  name,
		Reason: fmt.Sprintf("%q is not one of the permitted options [%s]", v.AsString(), strings.Join(opts, ", ")),
	}
}
