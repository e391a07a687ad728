// Command gpioexp-gen generates GPIO expander forwarding APIs with full
// control over platform, addressing strategy, function set, and output.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-gpiogen/internal/cli"
	"github.com/goliatone/go-gpiogen/internal/ctxlog"
	"github.com/goliatone/go-gpiogen/internal/prompt"
	"github.com/goliatone/go-gpiogen/pkg/orchestrator"
	"github.com/goliatone/go-gpiogen/pkg/splice"
)

// newDriver builds the prompt driver for -interactive.
var newDriver = func() prompt.PromptDriver {
	return prompt.NewSurveyDriver()
}

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]))
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) int {
	cfg, shouldExit, err := cli.ParseGen(args, stderr)
	if err != nil {
		return report(stderr, err)
	}
	if shouldExit {
		return 0
	}

	logger := ctxlog.New(stderr, cfg.LogFormat, cfg.LogLevel)
	ctx = ctxlog.WithLogger(ctx, logger)

	orch := orchestrator.New(orchestratorOptions(cfg, logger)...)
	if err := orch.Err(); err != nil {
		return report(stderr, err)
	}

	if cfg.List {
		if err := list(stdout, orch); err != nil {
			return report(stderr, err)
		}
		return 0
	}

	req := orchestrator.Request{
		Platform:   cfg.Platform,
		Addressing: cfg.Addressing,
		Template:   cfg.Template,
		Prelude:    cfg.Prelude,
	}
	var driver prompt.PromptDriver
	if cfg.Interactive {
		driver = newDriver()
		selection, err := prompt.Ask(ctx, driver, choices(orch), prompt.Selection{
			Platform:   req.Platform,
			Addressing: req.Addressing,
			Template:   req.Template,
			Prelude:    req.Prelude,
		})
		if err != nil {
			return report(stderr, err)
		}
		req = orchestrator.Request{
			Platform:   selection.Platform,
			Addressing: selection.Addressing,
			Template:   selection.Template,
			Prelude:    selection.Prelude,
		}
	}

	out, err := orch.Generate(ctx, req)
	if err != nil {
		return report(stderr, err)
	}

	switch {
	case cfg.Splice != "" && cfg.Check:
		return check(stderr, cfg.Splice, out)
	case cfg.Splice != "":
		if driver != nil {
			ok, err := prompt.ConfirmSplice(ctx, driver, cfg.Splice)
			if err != nil {
				return report(stderr, err)
			}
			if !ok {
				logger.Info("splice skipped", "file", cfg.Splice)
				return 0
			}
		}
		if err := splice.File(cfg.Splice, out); err != nil {
			return report(stderr, err)
		}
		logger.Info("spliced generated code", "file", cfg.Splice, "platform", req.Platform, "bytes", len(out))
	case cfg.Output != "":
		if err := splice.WriteAtomic(cfg.Output, out, 0o644); err != nil {
			return report(stderr, err)
		}
		logger.Info("wrote generated code", "file", cfg.Output, "platform", req.Platform, "bytes", len(out))
	default:
		if _, err := stdout.Write(out); err != nil {
			return report(stderr, err)
		}
	}
	return 0
}

func orchestratorOptions(cfg *cli.GenConfig, logger *slog.Logger) []orchestrator.Option {
	opts := []orchestrator.Option{
		orchestrator.WithWorkers(cfg.Workers),
		orchestrator.WithLogger(logger),
	}
	if cfg.PlatformsDir != "" {
		opts = append(opts, orchestrator.WithPlatformsFS(os.DirFS(cfg.PlatformsDir)))
	}
	if cfg.TemplatesDir != "" {
		opts = append(opts, orchestrator.WithTemplatesFS(os.DirFS(cfg.TemplatesDir)))
	}
	return opts
}

func check(stderr io.Writer, path string, generated []byte) int {
	src, err := os.ReadFile(path)
	if err != nil {
		return report(stderr, err)
	}
	region, err := splice.Region(src)
	if err != nil {
		return report(stderr, fmt.Errorf("%s: %w", path, err))
	}
	if !bytes.Equal(region, generated) {
		fmt.Fprintf(stderr, "%s: generated code is out of date\n", path)
		return 1
	}
	return 0
}

func list(w io.Writer, orch *orchestrator.Orchestrator) error {
	var buf bytes.Buffer

	buf.WriteString("platforms:\n")
	for _, name := range orch.Platforms().Names() {
		p, _ := orch.Platforms().Platform(name)
		fmt.Fprintf(&buf, "  %-12s %d x %d pins, %s addressing", name, p.Units, p.Pins, p.Addressing)
		if p.Description != "" {
			fmt.Fprintf(&buf, "  # %s", p.Description)
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("strategies:\n")
	for _, name := range orch.Strategies().List() {
		fmt.Fprintf(&buf, "  %s\n", name)
	}

	buf.WriteString("function sets:\n")
	for _, name := range orch.Templates().Names() {
		t, _ := orch.Templates().Template(name)
		fmt.Fprintf(&buf, "  %-12s %d functions", name, len(t.Functions))
		if t.HasPrelude() {
			buf.WriteString(", prelude")
		}
		if t.Description != "" {
			fmt.Fprintf(&buf, "  # %s", t.Description)
		}
		buf.WriteByte('\n')
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func choices(orch *orchestrator.Orchestrator) prompt.Choices {
	var c prompt.Choices
	for _, name := range orch.Platforms().Names() {
		p, _ := orch.Platforms().Platform(name)
		c.Platforms = append(c.Platforms, prompt.Option{Name: name, Description: p.Description})
	}
	for _, name := range orch.Strategies().List() {
		c.Strategies = append(c.Strategies, prompt.Option{Name: name})
	}
	for _, name := range orch.Templates().Names() {
		t, _ := orch.Templates().Template(name)
		c.Templates = append(c.Templates, prompt.Option{Name: name, Description: t.Description})
	}
	c.DefaultAddressing = func(name string) string {
		p, _ := orch.Platforms().Platform(name)
		return p.Addressing
	}
	return c
}

func report(stderr io.Writer, err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(stderr, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(stderr, err)
	return 1
}
