package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gpiogen/pkg/expander"
	"github.com/goliatone/go-gpiogen/pkg/functionset"
	"github.com/goliatone/go-gpiogen/pkg/orchestrator"
	"github.com/goliatone/go-gpiogen/pkg/platform"
)

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// MustPlatform returns a built-in platform definition.
func MustPlatform(t *testing.T, name string) platform.Platform {
	t.Helper()
	p, ok := platform.Builtin().Platform(name)
	if !ok {
		t.Fatalf("builtin platform %q missing", name)
	}
	return p
}

// MustExpander builds an expander for a built-in platform, the named
// addressing strategy, and the built-in legato-c function set.
func MustExpander(t *testing.T, platformName, strategy string, options ...expander.Option) *expander.Expander {
	t.Helper()

	orch := orchestrator.New()
	exp, err := orch.Expander(orchestrator.Request{
		Platform:   platformName,
		Addressing: strategy,
		Template:   functionset.DefaultTemplate,
	}, options...)
	if err != nil {
		t.Fatalf("build expander: %v", err)
	}
	return exp
}
