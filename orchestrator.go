// Package gpiogen generates per-pin GPIO expander forwarding APIs for
// mangOH-style platforms. It re-exports the orchestrator entry points.
package gpiogen

import (
	"context"

	"github.com/goliatone/go-gpiogen/pkg/orchestrator"
)

// Request aliases orchestrator.Request for callers using the root package.
type Request = orchestrator.Request

// Option aliases orchestrator.Option.
type Option = orchestrator.Option

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate expands a platform with the named addressing strategy and the
// default function set. An empty addressing uses the platform's default.
func Generate(ctx context.Context, platform, addressing string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Platform:   platform,
		Addressing: addressing,
	})
}

// GenerateWithPrelude is Generate preceded by the function set's prelude.
func GenerateWithPrelude(ctx context.Context, platform, addressing string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Platform:   platform,
		Addressing: addressing,
		Prelude:    true,
	})
}
