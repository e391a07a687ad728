// Package template defines the engine-agnostic rendering contract used by the
// expander. The gotemplate subpackage provides the pongo2-backed
// implementation; pongo2 speaks the Jinja2 dialect the function-set templates
// are written in.
package template
