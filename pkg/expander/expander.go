package expander

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-gpiogen/internal/ctxlog"
	"github.com/goliatone/go-gpiogen/pkg/addressing"
	"github.com/goliatone/go-gpiogen/pkg/functionset"
	"github.com/goliatone/go-gpiogen/pkg/platform"
	"github.com/goliatone/go-gpiogen/pkg/render/template"
)

var (
	// ErrUnknownPlatform is returned for a variant name no store knows.
	ErrUnknownPlatform = errors.New("expander: unknown platform")
	// ErrCoordinateOutOfRange is returned when rendering a coordinate outside
	// the platform's space.
	ErrCoordinateOutOfRange = errors.New("expander: coordinate out of range")
	// ErrIncompleteFunctionSet is returned when a rendered block does not
	// declare every function of the set in order.
	ErrIncompleteFunctionSet = errors.New("expander: rendered block does not declare the full function set")
	// ErrDuplicateIdentifier is returned when two coordinates render the same
	// identifier.
	ErrDuplicateIdentifier = errors.New("expander: duplicate identifier")
)

// Option customises an Expander.
type Option func(*Expander)

// WithWorkers renders blocks on up to n goroutines. Output order is unchanged.
func WithWorkers(n int) Option {
	return func(e *Expander) {
		if n > 0 {
			e.workers = n
		}
	}
}

// Expander renders one function-set block per coordinate of a platform.
type Expander struct {
	platform platform.Platform
	strategy addressing.Strategy
	set      functionset.Template
	renderer template.TemplateRenderer
	workers  int
}

// New binds a platform, an addressing strategy, and a function set to a
// template renderer.
func New(p platform.Platform, strategy addressing.Strategy, set functionset.Template, renderer template.TemplateRenderer, options ...Option) (*Expander, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, errors.New("expander: addressing strategy is required")
	}
	if renderer == nil {
		return nil, errors.New("expander: template renderer is required")
	}
	if set.Path == "" || len(set.Functions) == 0 {
		return nil, fmt.Errorf("expander: function set %q is empty", set.Name)
	}

	e := &Expander{
		platform: p,
		strategy: strategy,
		set:      set,
		renderer: renderer,
		workers:  1,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// SelectCoordinateSpace resolves a variant name to its coordinate sequence.
// Unknown names fail; there is no default variant.
func SelectCoordinateSpace(store *platform.Store, name string) (iter.Seq[platform.Coordinate], error) {
	p, ok := store.Platform(name)
	if !ok {
		return nil, UnknownPlatformError(store, name)
	}
	return p.Coordinates(), nil
}

// UnknownPlatformError wraps ErrUnknownPlatform with the accepted names.
func UnknownPlatformError(store *platform.Store, name string) error {
	return fmt.Errorf("%w %q: expected one of %s", ErrUnknownPlatform, name, quoteList(store.Names()))
}

// Platform returns the bound platform.
func (e *Expander) Platform() platform.Platform {
	return e.platform
}

// Coordinates returns the bound platform's coordinate space.
func (e *Expander) Coordinates() iter.Seq[platform.Coordinate] {
	return e.platform.Coordinates()
}

// Identifiers lists, in declaration order, the identifiers the block for c
// declares.
func (e *Expander) Identifiers(c platform.Coordinate) []string {
	out := make([]string, 0, len(e.set.Functions))
	for _, fn := range e.set.Functions {
		out = append(out, e.platform.Identifier(c, fn))
	}
	return out
}

// Render substitutes c into the function-set template. The block ends with a
// single newline.
func (e *Expander) Render(c platform.Coordinate) (string, error) {
	if !e.platform.Contains(c) {
		return "", fmt.Errorf("%w: %s on platform %q", ErrCoordinateOutOfRange, c, e.platform.Name)
	}

	out, err := e.renderer.RenderTemplate(e.set.Path, e.blockData(c))
	if err != nil {
		return "", fmt.Errorf("expander: render %s: %w", c, err)
	}
	block := strings.TrimRight(out, "\n") + "\n"

	if err := checkDeclarationOrder(block, e.Identifiers(c)); err != nil {
		return "", fmt.Errorf("%w: %s (function set %q): %v", ErrIncompleteFunctionSet, c, e.set.Name, err)
	}
	return block, nil
}

// Prelude renders the function set's prelude, or "" when it has none.
func (e *Expander) Prelude() (string, error) {
	if !e.set.HasPrelude() {
		return "", nil
	}
	out, err := e.renderer.RenderTemplate(e.set.Prelude, e.preludeData())
	if err != nil {
		return "", fmt.Errorf("expander: render prelude: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// Generate renders every block in coordinate order, separated by one blank
// line. Nothing is returned unless every block rendered.
func (e *Expander) Generate(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("expander: context is required")
	}
	logger := ctxlog.FromContext(ctx)

	coords := slices.Collect(e.platform.Coordinates())
	blocks, err := e.renderAll(ctx, coords)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]platform.Coordinate, len(coords)*len(e.set.Functions))
	for _, c := range coords {
		for _, id := range e.Identifiers(c) {
			if prev, dup := seen[id]; dup {
				return nil, fmt.Errorf("%w %q (%s and %s)", ErrDuplicateIdentifier, id, prev, c)
			}
			seen[id] = c
		}
	}

	var buf bytes.Buffer
	for i, block := range blocks {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(block)
	}

	logger.Debug("expanded function set",
		"platform", e.platform.Name,
		"function_set", e.set.Name,
		"blocks", len(blocks),
		"identifiers", len(seen),
		"workers", e.workers,
	)
	return buf.Bytes(), nil
}

// Expand writes the full expansion to w in a single write.
func (e *Expander) Expand(ctx context.Context, w io.Writer) error {
	out, err := e.Generate(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (e *Expander) renderAll(ctx context.Context, coords []platform.Coordinate) ([]string, error) {
	blocks := make([]string, len(coords))

	if e.workers <= 1 {
		for i, c := range coords {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			block, err := e.Render(c)
			if err != nil {
				return nil, err
			}
			blocks[i] = block
		}
		return blocks, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, c := range coords {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			block, err := e.Render(c)
			if err != nil {
				return err
			}
			blocks[i] = block
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (e *Expander) blockData(c platform.Coordinate) map[string]any {
	symbols := e.platform.Symbols
	unitIndex := ""
	if c.HasUnit() {
		unitIndex = symbols.UnitIndex(c.Unit)
	}
	return map[string]any{
		"unit":           c.Unit,
		"pin":            c.Pin,
		"multi":          e.platform.MultiUnit(),
		"prefix":         e.platform.Prefix,
		"api":            platform.Base(e.platform.Prefix, c),
		"driver":         symbols.Driver,
		"locate":         []string(e.strategy.Locate(c)),
		"handler_record": addressing.HandlerRecord(symbols, c),
		"unit_index":     unitIndex,
	}
}

func (e *Expander) preludeData() map[string]any {
	symbols := e.platform.Symbols
	units := make([]map[string]any, 0, e.platform.Units)
	if e.platform.MultiUnit() {
		for i, unit := range e.platform.UnitOrdinals() {
			units = append(units, map[string]any{
				"ordinal":        unit,
				"index":          i,
				"index_constant": symbols.UnitIndex(unit),
			})
		}
	}
	return map[string]any{
		"multi":            e.platform.MultiUnit(),
		"units":            units,
		"unit_count":       e.platform.Units,
		"pins":             e.platform.Pins,
		"driver":           symbols.Driver,
		"handler_records":  symbols.HandlerRecords,
		"pin_table":        symbols.PinTable,
		"descriptor":       symbols.Descriptor,
		"descriptor_array": symbols.DescriptorArray,
		"prefix":           e.platform.Prefix,
	}
}

// checkDeclarationOrder verifies each identifier appears as a whole word and
// that their first occurrences ascend.
func checkDeclarationOrder(block string, identifiers []string) error {
	last := -1
	for _, id := range identifiers {
		at := indexWord(block, id)
		if at < 0 {
			return fmt.Errorf("missing %s", id)
		}
		if at <= last {
			return fmt.Errorf("%s declared out of order", id)
		}
		last = at
	}
	return nil
}

func indexWord(s, word string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], word)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(word)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return start
		}
		offset = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func quoteList(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}
	return strings.Join(quoted, ", ")
}
