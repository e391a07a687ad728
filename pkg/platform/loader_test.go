package platform_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-gpiogen/pkg/platform"
)

func TestBuiltin(t *testing.T) {
	store := platform.Builtin()
	if got := strings.Join(store.Names(), ","); got != "green,red" {
		t.Fatalf("builtin names = %q", got)
	}

	red, _ := store.Platform("red")
	if red.MultiUnit() || red.Units != 1 || red.Pins != 16 || red.Addressing != "descriptor" {
		t.Fatalf("unexpected red definition: %+v", red)
	}
	green, _ := store.Platform("green")
	if !green.MultiUnit() || green.Units != 3 || green.Pins != 16 || green.Addressing != "pin-table" {
		t.Fatalf("unexpected green definition: %+v", green)
	}
	if green.Symbols.UnitIndex(2) != "EXPANDER_2_INDEX" {
		t.Fatalf("unit index = %q", green.Symbols.UnitIndex(2))
	}
	if green.Source != "platforms.yaml" {
		t.Fatalf("source = %q", green.Source)
	}
}

func TestLoadFS_Formats(t *testing.T) {
	fsys := fstest.MapFS{
		"boards/yellow.yaml": {Data: []byte(`
platforms:
  yellow:
    units: 2
    pins: 8
    prefix: board_gpio
    symbols:
      pinTable: yellowPins
`)},
		"boards/blue.json": {Data: []byte(`{"platforms":{"blue":{"units":1,"pins":4,"addressing":"pin-table"}}}`)},
		"boards/orange.hcl": {Data: []byte(`
platform "orange" {
  description = "two expanders"
  units       = 2
  pins        = 16
  suffix      = "ordinal"

  symbols {
    index_constant = "ORANGE_{unit}_IDX"
  }
}
`)},
		"boards/README.md": {Data: []byte("ignored")},
	}

	store, err := platform.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := strings.Join(store.Names(), ","); got != "blue,orange,yellow" {
		t.Fatalf("names = %q", got)
	}

	yellow, _ := store.Platform("yellow")
	if !yellow.MultiUnit() {
		t.Fatalf("yellow should default to ordinal suffix for 2 units")
	}
	if yellow.Prefix != "board_gpio" || yellow.Symbols.PinTable != "yellowPins" || yellow.Symbols.Driver != "gpioExpander" {
		t.Fatalf("yellow defaults not applied: %+v", yellow)
	}

	blue, _ := store.Platform("blue")
	if blue.MultiUnit() || blue.Addressing != "pin-table" || blue.Prefix != platform.DefaultPrefix {
		t.Fatalf("unexpected blue: %+v", blue)
	}

	orange, _ := store.Platform("orange")
	if orange.Description != "two expanders" || orange.Symbols.UnitIndex(1) != "ORANGE_1_IDX" {
		t.Fatalf("unexpected orange: %+v", orange)
	}
	if orange.Addressing != platform.DefaultAddressing {
		t.Fatalf("orange addressing = %q", orange.Addressing)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file":   {"a.yaml": {Data: []byte("  \n")}},
		"no platforms": {"a.yaml": {Data: []byte("other: 1\n")}},
		"bad hcl":      {"a.hcl": {Data: []byte(`platform "x" {`)}},
		"duplicate": {
			"a.yaml": {Data: []byte("platforms:\n  x:\n    units: 1\n    pins: 1\n")},
			"b.yaml": {Data: []byte("platforms:\n  x:\n    units: 1\n    pins: 2\n")},
		},
		"omit with many units": {"a.yaml": {Data: []byte("platforms:\n  x:\n    units: 2\n    pins: 4\n    suffix: omit\n")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := platform.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		p    platform.Platform
	}{
		{"no units", platform.Platform{Name: "x", Units: 0, Pins: 1}},
		{"no pins", platform.Platform{Name: "x", Units: 1, Pins: 0}},
		{"omit many", platform.Platform{Name: "x", Units: 3, Pins: 16, Suffix: platform.SuffixOmit}},
		{"bad suffix", platform.Platform{Name: "x", Units: 1, Pins: 1, Suffix: "roman"}},
		{"bad prefix", platform.Platform{Name: "x", Units: 1, Pins: 1, Prefix: "9lives"}},
		{"bad index", platform.Platform{Name: "x", Units: 1, Pins: 1, Symbols: platform.Symbols{IndexConstant: "EXPANDER_INDEX"}}},
		{"no name", platform.Platform{Units: 1, Pins: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := platform.NewStore(tc.p)
			if !errors.Is(err, platform.ErrInvalidPlatform) {
				t.Fatalf("expected ErrInvalidPlatform, got %v", err)
			}
		})
	}
}

func TestStore_Merge(t *testing.T) {
	extra, err := platform.NewStore(platform.Platform{Name: "red", Units: 1, Pins: 8})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	merged := platform.Builtin().Merge(extra)

	red, _ := merged.Platform("red")
	if red.Pins != 8 {
		t.Fatalf("override not applied: %+v", red)
	}
	if _, ok := merged.Platform("green"); !ok {
		t.Fatalf("green lost in merge")
	}
}
