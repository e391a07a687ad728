package platform

import (
	"strconv"
	"strings"
)

// SuffixMode controls whether the expander unit ordinal appears in generated
// identifiers and storage expressions.
type SuffixMode string

const (
	// SuffixOmit drops the unit entirely. Only valid for single-unit platforms.
	SuffixOmit SuffixMode = "omit"
	// SuffixOrdinal embeds the 1-based unit ordinal in names and indices.
	SuffixOrdinal SuffixMode = "ordinal"
)

const (
	// DefaultPrefix is the identifier prefix used by the mangOH GPIO expander
	// service APIs.
	DefaultPrefix = "mangoh_gpioExp"
	// DefaultAddressing names the addressing strategy used when a platform
	// definition does not pick one.
	DefaultAddressing = "descriptor"
	// UnitPlaceholder is substituted with the unit ordinal in
	// Symbols.IndexConstant.
	UnitPlaceholder = "{unit}"
)

// Platform describes one hardware variant: how many expander units exist, how
// many pins each unit has, and how units are reflected in generated names.
type Platform struct {
	Name        string
	Description string
	Units       int
	Pins        int
	Suffix      SuffixMode
	// Addressing names the default addressing strategy for this platform.
	Addressing string
	// Prefix is prepended to every generated identifier.
	Prefix  string
	Symbols Symbols
	// Source records the file the definition was loaded from.
	Source string
}

// Symbols names the C symbols the generated forwarding calls reference.
type Symbols struct {
	Driver          string `json:"driver" yaml:"driver"`
	Descriptor      string `json:"descriptor" yaml:"descriptor"`
	DescriptorArray string `json:"descriptorArray" yaml:"descriptorArray"`
	PinTable        string `json:"pinTable" yaml:"pinTable"`
	HandlerRecords  string `json:"handlerRecords" yaml:"handlerRecords"`
	IndexConstant   string `json:"indexConstant" yaml:"indexConstant"`
}

// DefaultSymbols returns the symbol names used by the gpioExpander service.
func DefaultSymbols() Symbols {
	return Symbols{
		Driver:          "gpioExpander",
		Descriptor:      "GpioExpander",
		DescriptorArray: "GpioExpanders",
		PinTable:        "expanderPinSpecs",
		HandlerRecords:  "handlerRecords",
		IndexConstant:   "EXPANDER_" + UnitPlaceholder + "_INDEX",
	}
}

// WithDefaults fills empty symbol names from DefaultSymbols.
func (s Symbols) WithDefaults() Symbols {
	def := DefaultSymbols()
	fill := func(v *string, fallback string) {
		if strings.TrimSpace(*v) == "" {
			*v = fallback
			return
		}
		*v = strings.TrimSpace(*v)
	}
	fill(&s.Driver, def.Driver)
	fill(&s.Descriptor, def.Descriptor)
	fill(&s.DescriptorArray, def.DescriptorArray)
	fill(&s.PinTable, def.PinTable)
	fill(&s.HandlerRecords, def.HandlerRecords)
	fill(&s.IndexConstant, def.IndexConstant)
	return s
}

// UnitIndex renders the index constant for a 1-based unit ordinal, e.g.
// EXPANDER_2_INDEX.
func (s Symbols) UnitIndex(unit int) string {
	return strings.ReplaceAll(s.IndexConstant, UnitPlaceholder, strconv.Itoa(unit))
}

// MultiUnit reports whether unit identity is embedded in generated output.
func (p Platform) MultiUnit() bool {
	return p.Suffix == SuffixOrdinal
}

// Size returns the number of coordinates the platform spans.
func (p Platform) Size() int {
	return p.Units * p.Pins
}

// UnitOrdinals lists the unit ordinals in iteration order. Single-unit
// platforms without a suffix yield a single zero entry.
func (p Platform) UnitOrdinals() []int {
	if !p.MultiUnit() {
		return []int{0}
	}
	out := make([]int, 0, p.Units)
	for unit := 1; unit <= p.Units; unit++ {
		out = append(out, unit)
	}
	return out
}

// Identifier renders the generated identifier for a coordinate.
func (p Platform) Identifier(c Coordinate, suffix string) string {
	return Identifier(p.Prefix, c, suffix)
}

// withDefaults normalises optional fields after decoding.
func (p Platform) withDefaults() Platform {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Addressing = strings.TrimSpace(p.Addressing)
	p.Prefix = strings.TrimSpace(p.Prefix)
	if p.Suffix == "" {
		p.Suffix = SuffixOmit
		if p.Units > 1 {
			p.Suffix = SuffixOrdinal
		}
	}
	if p.Addressing == "" {
		p.Addressing = DefaultAddressing
	}
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	p.Symbols = p.Symbols.WithDefaults()
	return p
}
