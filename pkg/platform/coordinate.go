package platform

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Coordinate addresses one pin of one expander unit. Unit is the 1-based
// ordinal; zero means the platform has a single implicit unit.
type Coordinate struct {
	Unit int
	Pin  int
}

// HasUnit reports whether the coordinate carries a unit ordinal.
func (c Coordinate) HasUnit() bool {
	return c.Unit > 0
}

func (c Coordinate) String() string {
	if !c.HasUnit() {
		return fmt.Sprintf("pin %d", c.Pin)
	}
	return fmt.Sprintf("unit %d pin %d", c.Unit, c.Pin)
}

// Coordinates returns the platform's coordinate space: units ascending in the
// outer loop, pins ascending in the inner loop. The sequence restarts from the
// first coordinate on every range.
func (p Platform) Coordinates() iter.Seq[Coordinate] {
	units := p.UnitOrdinals()
	pins := p.Pins
	return func(yield func(Coordinate) bool) {
		for _, unit := range units {
			for pin := 0; pin < pins; pin++ {
				if !yield(Coordinate{Unit: unit, Pin: pin}) {
					return
				}
			}
		}
	}
}

// Contains reports whether c belongs to the platform's coordinate space.
func (p Platform) Contains(c Coordinate) bool {
	if c.Pin < 0 || c.Pin >= p.Pins {
		return false
	}
	if !p.MultiUnit() {
		return c.Unit == 0
	}
	return c.Unit >= 1 && c.Unit <= p.Units
}

// Base renders the identifier stem shared by every function of a coordinate:
// <prefix><unit>Pin<pin>. The literal "Pin" separates the unit digits from the
// pin digits, which keeps the mapping injective.
func Base(prefix string, c Coordinate) string {
	var b strings.Builder
	b.WriteString(prefix)
	if c.HasUnit() {
		b.WriteString(strconv.Itoa(c.Unit))
	}
	b.WriteString("Pin")
	b.WriteString(strconv.Itoa(c.Pin))
	return b.String()
}

// Identifier renders <prefix><unit>Pin<pin>_<suffix>. An empty suffix returns
// the bare stem.
func Identifier(prefix string, c Coordinate, suffix string) string {
	base := Base(prefix, c)
	if suffix == "" {
		return base
	}
	return base + "_" + suffix
}
