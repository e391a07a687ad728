package gotemplate

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Filters returns the filters available to every template:
//
//	{{ name|trim }}                     strip surrounding whitespace
//	{{ locate|callargs }}               "&GpioExpander, 5"
//	{{ locate|callarglines:"        " }} one argument per line, continuation lines indented
//
// The map suits go-template's WithTemplateFunc.
func Filters() map[string]any {
	return map[string]any{
		"trim":         pongo2.FilterFunction(filterTrim),
		"callargs":     pongo2.FilterFunction(filterCallArgs),
		"callarglines": pongo2.FilterFunction(filterCallArgLines),
	}
}

func registerDefaultFilters() {
	for name, fn := range Filters() {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn.(pongo2.FilterFunction))
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterCallArgs(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(strings.Join(stringList(in), ", ")), nil
}

func filterCallArgLines(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	indent := ""
	if param != nil && !param.IsNil() {
		indent = param.String()
	}
	return pongo2.AsSafeValue(strings.Join(stringList(in), ",\n"+indent)), nil
}

func stringList(in *pongo2.Value) []string {
	if in == nil || in.IsNil() {
		return nil
	}
	switch v := in.Interface().(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{v}
	default:
		return []string{in.String()}
	}
}
