package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-gpiogen/internal/ctxlog"
	"github.com/goliatone/go-gpiogen/pkg/addressing"
	"github.com/goliatone/go-gpiogen/pkg/expander"
	"github.com/goliatone/go-gpiogen/pkg/functionset"
	"github.com/goliatone/go-gpiogen/pkg/platform"
	"github.com/goliatone/go-gpiogen/pkg/render/template"
	"github.com/goliatone/go-gpiogen/pkg/render/template/gotemplate"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithPlatforms replaces the platform store. The built-in red and green
// definitions are not added.
func WithPlatforms(store *platform.Store) Option {
	return func(o *Orchestrator) {
		o.platforms = store
	}
}

// WithPlatformsFS loads extra platform definitions from fsys and overlays them
// on the configured store. Names already defined are overridden.
func WithPlatformsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		if fsys != nil {
			o.platformFS = append(o.platformFS, fsys)
		}
	}
}

// WithStrategies injects an addressing strategy registry.
func WithStrategies(registry *addressing.Registry) Option {
	return func(o *Orchestrator) {
		o.strategies = registry
	}
}

// WithTemplates replaces the function-set store.
func WithTemplates(store *functionset.Store) Option {
	return func(o *Orchestrator) {
		o.templates = store
	}
}

// WithTemplatesFS loads extra function sets from fsys and overlays them on
// the configured store.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		if fsys != nil {
			o.templateFS = append(o.templateFS, fsys)
		}
	}
}

// WithDefaultTemplate overrides the function set used when a request omits
// one.
func WithDefaultTemplate(name string) Option {
	return func(o *Orchestrator) {
		o.defaultTemplate = name
	}
}

// WithRenderer renders every function set through renderer instead of a
// per-set pongo2 engine.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithWorkers sets the default render parallelism for expanders built by the
// orchestrator.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		o.workers = n
	}
}

// WithLogger attaches logger to contexts that do not already carry one.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator resolves a Request into an expander and runs it. Defaults are
// the embedded platforms and function sets plus the descriptor and pin-table
// strategies.
type Orchestrator struct {
	platforms       *platform.Store
	platformFS      []fs.FS
	strategies      *addressing.Registry
	templates       *functionset.Store
	templateFS      []fs.FS
	defaultTemplate string
	renderer        template.TemplateRenderer
	workers         int
	logger          *slog.Logger
	initialiseErr   error

	mu      sync.Mutex
	engines map[string]template.TemplateRenderer
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultTemplate: functionset.DefaultTemplate,
		workers:         1,
		engines:         make(map[string]template.TemplateRenderer),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request names the platform, addressing strategy, and function set to
// expand.
type Request struct {
	// Platform selects the variant. Required; there is no default.
	Platform string

	// Addressing names the strategy. Empty uses the platform's configured
	// default.
	Addressing string

	// Template names the function set. Empty uses the orchestrator default.
	Template string

	// Prelude emits the function set's prelude ahead of the blocks.
	Prelude bool
}

// Generate expands the requested platform and returns the generated source.
// Nothing is returned when any step fails.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = o.withLogger(ctx)

	exp, err := o.Expander(req)
	if err != nil {
		return nil, err
	}

	body, err := exp.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if !req.Prelude {
		return body, nil
	}

	prelude, err := exp.Prelude()
	if err != nil {
		return nil, err
	}
	if prelude == "" {
		return body, nil
	}

	out := make([]byte, 0, len(prelude)+1+len(body))
	out = append(out, prelude...)
	out = append(out, '\n')
	out = append(out, body...)
	return out, nil
}

// Expander resolves req into a bound expander. Extra options are applied
// after the orchestrator's defaults.
func (o *Orchestrator) Expander(req Request, options ...expander.Option) (*expander.Expander, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	p, ok := o.platforms.Platform(req.Platform)
	if !ok {
		return nil, expander.UnknownPlatformError(o.platforms, req.Platform)
	}

	strategyName := req.Addressing
	if strategyName == "" {
		strategyName = p.Addressing
	}
	strategy, err := o.strategies.Build(strategyName, p.Symbols)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: platform %q: %w", p.Name, err)
	}

	templateName := req.Template
	if templateName == "" {
		templateName = o.defaultTemplate
	}
	set, err := o.templates.Lookup(templateName)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	renderer, err := o.rendererFor(set)
	if err != nil {
		return nil, err
	}

	opts := append([]expander.Option{expander.WithWorkers(o.workers)}, options...)
	return expander.New(p, strategy, set, renderer, opts...)
}

// Platforms returns the resolved platform store.
func (o *Orchestrator) Platforms() *platform.Store {
	return o.platforms
}

// Strategies returns the addressing strategy registry.
func (o *Orchestrator) Strategies() *addressing.Registry {
	return o.strategies
}

// Templates returns the resolved function-set store.
func (o *Orchestrator) Templates() *functionset.Store {
	return o.templates
}

// Err reports a configuration error found while applying defaults, such as
// an unreadable platform directory.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

func (o *Orchestrator) withLogger(ctx context.Context) context.Context {
	if o.logger == nil {
		return ctx
	}
	return ctxlog.WithLogger(ctx, o.logger)
}

func (o *Orchestrator) rendererFor(set functionset.Template) (template.TemplateRenderer, error) {
	if o.renderer != nil {
		return o.renderer, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if engine, ok := o.engines[set.Name]; ok {
		return engine, nil
	}
	engine, err := newRenderer(set)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: template engine for %q: %w", set.Name, err)
	}
	o.engines[set.Name] = engine
	return engine, nil
}

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// newRenderer builds the engine a function set's manifest asks for.
func newRenderer(set functionset.Template) (template.TemplateRenderer, error) {
	switch set.Engine {
	case functionset.EngineGoTemplate:
		engine, err := gotemplatepkg.NewRenderer(
			gotemplatepkg.WithFS(set.Files),
			gotemplatepkg.WithExtension(gotemplate.Extension),
			gotemplatepkg.WithTemplateFunc(gotemplate.Filters()),
		)
		if err != nil {
			return nil, err
		}
		return engine, nil
	case functionset.EnginePongo2, "":
		engine, err := gotemplate.New(gotemplate.WithFS(set.Files))
		if err != nil {
			return nil, err
		}
		return engine, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", set.Engine)
	}
}

func (o *Orchestrator) applyDefaults() {
	if o.platforms == nil {
		o.platforms = platform.Builtin()
	}
	for _, fsys := range o.platformFS {
		extra, err := platform.LoadFS(fsys)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load platforms: %w", err)
			return
		}
		o.platforms = o.platforms.Merge(extra)
	}

	if o.strategies == nil {
		o.strategies = addressing.DefaultRegistry()
	}

	if o.templates == nil {
		o.templates = functionset.Builtin()
	}
	for _, fsys := range o.templateFS {
		extra, err := functionset.LoadFS(fsys)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load function sets: %w", err)
			return
		}
		o.templates = o.templates.Merge(extra)
	}

	if o.defaultTemplate == "" {
		o.defaultTemplate = functionset.DefaultTemplate
	}
	if o.workers < 1 {
		o.workers = 1
	}
}
