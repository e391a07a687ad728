package addressing_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-gpiogen/pkg/addressing"
	"github.com/goliatone/go-gpiogen/pkg/platform"
)

func TestStrategies_Locate(t *testing.T) {
	symbols := platform.DefaultSymbols()
	single := platform.Coordinate{Pin: 5}
	multi := platform.Coordinate{Unit: 2, Pin: 5}

	cases := []struct {
		name     string
		strategy addressing.Strategy
		c        platform.Coordinate
		inline   string
		lines    string
	}{
		{"descriptor single", addressing.NewDescriptor(symbols), single, "&GpioExpander, 5", "&GpioExpander,\n    5"},
		{"descriptor multi", addressing.NewDescriptor(symbols), multi, "&GpioExpanders[EXPANDER_2_INDEX], 5", "&GpioExpanders[EXPANDER_2_INDEX],\n    5"},
		{"pin-table single", addressing.NewPinTable(symbols), single, "&expanderPinSpecs[5]", "&expanderPinSpecs[5]"},
		{"pin-table multi", addressing.NewPinTable(symbols), multi, "&expanderPinSpecs[EXPANDER_2_INDEX][5]", "&expanderPinSpecs[EXPANDER_2_INDEX][5]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr := tc.strategy.Locate(tc.c)
			if got := expr.Inline(); got != tc.inline {
				t.Fatalf("inline = %q, want %q", got, tc.inline)
			}
			if got := expr.Lines("    "); got != tc.lines {
				t.Fatalf("lines = %q, want %q", got, tc.lines)
			}
		})
	}
}

func TestHandlerRecord(t *testing.T) {
	symbols := platform.DefaultSymbols()
	if got := addressing.HandlerRecord(symbols, platform.Coordinate{Pin: 15}); got != "&handlerRecords[15]" {
		t.Fatalf("single = %q", got)
	}
	if got := addressing.HandlerRecord(symbols, platform.Coordinate{Unit: 3, Pin: 0}); got != "&handlerRecords[EXPANDER_3_INDEX][0]" {
		t.Fatalf("multi = %q", got)
	}
}

func TestRegistry(t *testing.T) {
	r := addressing.DefaultRegistry()
	if got := strings.Join(r.List(), ","); got != "descriptor,pin-table" {
		t.Fatalf("list = %q", got)
	}

	if err := r.Register("descriptor", addressing.NewDescriptor); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := r.Register(" ", addressing.NewDescriptor); err == nil {
		t.Fatalf("expected empty name error")
	}

	_, err := r.Build("flat", platform.DefaultSymbols())
	if !errors.Is(err, addressing.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}

	custom := addressing.StrategyFunc(func(c platform.Coordinate) addressing.Expression {
		return addressing.Expression{"pins(" + c.String() + ")"}
	})
	if err := r.Register("custom", func(platform.Symbols) addressing.Strategy { return custom }); err != nil {
		t.Fatalf("register custom: %v", err)
	}
	s, err := r.Build("custom", platform.DefaultSymbols())
	if err != nil {
		t.Fatalf("build custom: %v", err)
	}
	if got := s.Locate(platform.Coordinate{Unit: 1, Pin: 2}).Inline(); got != "pins(unit 1 pin 2)" {
		t.Fatalf("custom locate = %q", got)
	}
}
