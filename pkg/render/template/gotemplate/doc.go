// Package gotemplate adapts pongo2 to the template.TemplateRenderer contract.
// Templates load from an fs.FS, use the .tpl extension, and may use the
// filters returned by Filters. Integers in the render data stay integers.
package gotemplate
