package addressing

import "github.com/goliatone/go-gpiogen/pkg/platform"

// PinTableName registers the pin-table strategy.
const PinTableName = "pin-table"

// PinTable addresses a pin through a table of pin descriptors indexed by unit
// and pin: "&expanderPinSpecs[5]" or "&expanderPinSpecs[EXPANDER_2_INDEX][5]".
type PinTable struct {
	Symbols platform.Symbols
}

// NewPinTable is the Factory for PinTable.
func NewPinTable(symbols platform.Symbols) Strategy {
	return PinTable{Symbols: symbols}
}

// Locate implements Strategy.
func (p PinTable) Locate(c platform.Coordinate) Expression {
	if !c.HasUnit() {
		return Expression{"&" + p.Symbols.PinTable + "[" + itoa(c.Pin) + "]"}
	}
	return Expression{"&" + p.Symbols.PinTable + "[" + p.Symbols.UnitIndex(c.Unit) + "][" + itoa(c.Pin) + "]"}
}
