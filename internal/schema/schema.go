// Package schema declares the HCL shapes of the edit-file surface. The
// format-agnostic counterpart lives in the config package; the hcl package
// translates between the two.
package schema

import "github.com/hashicorp/hcl/v2"

// Set represents one `set` block in an edit file: a dotted field path
// label plus the block body, which must hold exactly one `value`
// attribute. The body is kept undecoded here; the loader extracts the
// attribute against SetBody so a block missing its value is rejected
// rather than silently read as null.
type Set struct {
	Path string   `hcl:"path,label"`
	Body hcl.Body `hcl:",remain"`
}

// SetBody is the schema a set block's body is checked against.
var SetBody = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "value", Required: true},
	},
}

// EditConfig represents the top-level structure of an edit file: an
// ordered sequence of set blocks.
type EditConfig struct {
	Sets []*Set   `hcl:"set,block"`
	Body hcl.Body `hcl:",remain"`
}
