package platform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPlatform is returned when a platform definition cannot produce a
// collision-free coordinate space.
var ErrInvalidPlatform = errors.New("platform: invalid definition")

var cIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the definition. Suffix-less platforms must have exactly one
// unit, otherwise distinct units would render identical identifiers.
func (p Platform) Validate() error {
	var problems []string

	if p.Name == "" {
		problems = append(problems, "name is required")
	}
	if p.Units < 1 {
		problems = append(problems, fmt.Sprintf("units must be >= 1 (got %d)", p.Units))
	}
	if p.Pins < 1 {
		problems = append(problems, fmt.Sprintf("pins must be >= 1 (got %d)", p.Pins))
	}
	switch p.Suffix {
	case SuffixOmit:
		if p.Units != 1 {
			problems = append(problems, fmt.Sprintf("suffix %q requires exactly one unit (got %d)", SuffixOmit, p.Units))
		}
	case SuffixOrdinal:
	default:
		problems = append(problems, fmt.Sprintf("unknown suffix mode %q", p.Suffix))
	}
	if !cIdentifier.MatchString(p.Prefix) {
		problems = append(problems, fmt.Sprintf("prefix %q is not a C identifier", p.Prefix))
	}

	symbols := map[string]string{
		"driver":          p.Symbols.Driver,
		"descriptor":      p.Symbols.Descriptor,
		"descriptorArray": p.Symbols.DescriptorArray,
		"pinTable":        p.Symbols.PinTable,
		"handlerRecords":  p.Symbols.HandlerRecords,
	}
	for _, key := range []string{"driver", "descriptor", "descriptorArray", "pinTable", "handlerRecords"} {
		if !cIdentifier.MatchString(symbols[key]) {
			problems = append(problems, fmt.Sprintf("symbol %s %q is not a C identifier", key, symbols[key]))
		}
	}
	if !strings.Contains(p.Symbols.IndexConstant, UnitPlaceholder) {
		problems = append(problems, fmt.Sprintf("symbol indexConstant %q must contain %s", p.Symbols.IndexConstant, UnitPlaceholder))
	} else if !cIdentifier.MatchString(p.Symbols.UnitIndex(1)) {
		problems = append(problems, fmt.Sprintf("symbol indexConstant %q does not render a C identifier", p.Symbols.IndexConstant))
	}

	if len(problems) == 0 {
		return nil
	}
	name := p.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Errorf("%w %q: %s", ErrInvalidPlatform, name, strings.Join(problems, "; "))
}
