package functionset_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-gpiogen/pkg/functionset"
)

func TestBuiltin_LegatoC(t *testing.T) {
	store := functionset.Builtin()

	tmpl, err := store.Lookup(functionset.DefaultTemplate)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got := len(tmpl.Functions); got != 21 {
		t.Fatalf("expected 21 functions, got %d", got)
	}
	if tmpl.Functions[0] != "SetInput" || tmpl.Functions[20] != "RemoveChangeEventHandler" {
		t.Fatalf("unexpected function order: %v", tmpl.Functions)
	}
	if tmpl.Path != "legato-c" || tmpl.Prelude != "legato-c.prelude" {
		t.Fatalf("unexpected paths: %q %q", tmpl.Path, tmpl.Prelude)
	}
	if !tmpl.HasPrelude() {
		t.Fatalf("legato-c should ship a prelude")
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := functionset.Builtin().Lookup("legato-rust")
	if !errors.Is(err, functionset.ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestLoadFS_Nested(t *testing.T) {
	fsys := fstest.MapFS{
		"mini/mini.yaml": {Data: []byte("functions: [Read, Write]\n")},
		"mini/mini.tpl":  {Data: []byte("{{ api }}_Read\n{{ api }}_Write\n")},
	}
	store, err := functionset.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tmpl, ok := store.Template("mini")
	if !ok {
		t.Fatalf("mini not loaded: %v", store.Names())
	}
	if tmpl.Path != "mini/mini" || tmpl.HasPrelude() || tmpl.Engine != functionset.EnginePongo2 {
		t.Fatalf("unexpected template: %+v", tmpl)
	}

	merged := functionset.Builtin().Merge(store)
	if len(merged.Names()) != 2 {
		t.Fatalf("merged names = %v", merged.Names())
	}
}

func TestLoadFS_Engine(t *testing.T) {
	fsys := fstest.MapFS{
		"mini.yaml": {Data: []byte("engine: Go-Template\nfunctions: [Read]\n")},
		"mini.tpl":  {Data: []byte("{{ api }}_Read\n")},
	}
	store, err := functionset.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tmpl, err := store.Lookup("mini")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tmpl.Engine != functionset.EngineGoTemplate {
		t.Fatalf("engine = %q", tmpl.Engine)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"no functions":     {"a.yaml": {Data: []byte("description: x\n")}, "a.tpl": {Data: []byte("x")}},
		"missing template": {"a.yaml": {Data: []byte("functions: [Read]\n")}},
		"missing prelude": {
			"a.yaml": {Data: []byte("prelude: a.head\nfunctions: [Read]\n")},
			"a.tpl":  {Data: []byte("x")},
		},
		"duplicate function": {"a.yaml": {Data: []byte("functions: [Read, Read]\n")}, "a.tpl": {Data: []byte("x")}},
		"bad function":       {"a.yaml": {Data: []byte("functions: [\"Set Input\"]\n")}, "a.tpl": {Data: []byte("x")}},
		"unknown engine":     {"a.yaml": {Data: []byte("engine: jinja\nfunctions: [Read]\n")}, "a.tpl": {Data: []byte("x")}},
		"duplicate name": {
			"a.yaml": {Data: []byte("name: same\nfunctions: [Read]\n")},
			"a.tpl":  {Data: []byte("x")},
			"b.yaml": {Data: []byte("name: same\nfunctions: [Read]\n")},
			"b.tpl":  {Data: []byte("x")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := functionset.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
