package addressing

import (
	"strconv"

	"github.com/goliatone/go-gpiogen/pkg/platform"
)

// DescriptorName registers the descriptor strategy.
const DescriptorName = "descriptor"

// Descriptor addresses a pin through its expander's descriptor object plus
// the numeric pin: "&GpioExpander, 5" or "&GpioExpanders[EXPANDER_2_INDEX], 5".
type Descriptor struct {
	Symbols platform.Symbols
}

// NewDescriptor is the Factory for Descriptor.
func NewDescriptor(symbols platform.Symbols) Strategy {
	return Descriptor{Symbols: symbols}
}

// Locate implements Strategy.
func (d Descriptor) Locate(c platform.Coordinate) Expression {
	if !c.HasUnit() {
		return Expression{"&" + d.Symbols.Descriptor, itoa(c.Pin)}
	}
	return Expression{
		"&" + d.Symbols.DescriptorArray + "[" + d.Symbols.UnitIndex(c.Unit) + "]",
		itoa(c.Pin),
	}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
