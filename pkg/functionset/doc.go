// Package functionset loads the templates the expander renders per
// coordinate. A function set is a .tpl file in the pongo2 (Jinja2) dialect
// next to a YAML manifest listing, in declaration order, the identifier
// suffixes each rendered block must declare.
package functionset
