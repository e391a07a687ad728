package addressing

import (
	"strings"

	"github.com/goliatone/go-gpiogen/pkg/platform"
)

// Strategy produces the expression that locates a coordinate's runtime
// storage in every forwarding call.
type Strategy interface {
	Locate(c platform.Coordinate) Expression
}

// Factory builds a Strategy bound to a platform's storage symbols.
type Factory func(symbols platform.Symbols) Strategy

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(c platform.Coordinate) Expression

// Locate calls f(c).
func (f StrategyFunc) Locate(c platform.Coordinate) Expression {
	return f(c)
}

// Expression is the ordered list of call arguments that identify a pin.
type Expression []string

// Inline joins the arguments for a single-line call: "&GpioExpander, 5".
func (e Expression) Inline() string {
	return strings.Join(e, ", ")
}

// Lines joins the arguments one per line, each continuation line prefixed by
// indent.
func (e Expression) Lines(indent string) string {
	return strings.Join(e, ",\n"+indent)
}

// HandlerRecord renders the address of the change-handler record slot for a
// coordinate. It does not depend on the addressing strategy.
func HandlerRecord(symbols platform.Symbols, c platform.Coordinate) string {
	if !c.HasUnit() {
		return "&" + symbols.HandlerRecords + "[" + itoa(c.Pin) + "]"
	}
	return "&" + symbols.HandlerRecords + "[" + symbols.UnitIndex(c.Unit) + "][" + itoa(c.Pin) + "]"
}
