package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun_Platforms(t *testing.T) {
	cases := []struct {
		name   string
		blocks int
		first  string
	}{
		{"red", 16, "// GPIO expander GPIO 0\nle_result_t mangoh_gpioExpPin0_SetInput\n"},
		{"green", 48, "// GPIO expander #1 GPIO 0\nle_result_t mangoh_gpioExp1Pin0_SetInput\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), &stdout, &stderr, []string{tc.name}); code != 0 {
				t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
			}
			out := stdout.String()
			if !strings.HasPrefix(out, tc.first) {
				t.Fatalf("unexpected start: %q", out[:min(len(out), 80)])
			}
			if got := strings.Count(out, "// GPIO expander "); got != tc.blocks {
				t.Fatalf("expected %d blocks, got %d", tc.blocks, got)
			}
			if stderr.Len() != 0 {
				t.Fatalf("unexpected stderr: %q", stderr.String())
			}
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	if code := run(context.Background(), &first, &bytes.Buffer{}, []string{"green"}); code != 0 {
		t.Fatalf("first run exit %d", code)
	}
	if code := run(context.Background(), &second, &bytes.Buffer{}, []string{"green"}); code != 0 {
		t.Fatalf("second run exit %d", code)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("runs differ")
	}
}

func TestRun_Rejects(t *testing.T) {
	cases := map[string][]string{
		"no args":  nil,
		"two args": {"red", "green"},
		"empty":    {""},
		"numeric":  {"2"},
		"unknown":  {"blue"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), &stdout, &stderr, args)
			if code == 0 {
				t.Fatalf("expected non-zero exit")
			}
			if stdout.Len() != 0 {
				t.Fatalf("stdout not empty: %q", stdout.String())
			}
			if !strings.Contains(stderr.String(), "usage: gpioexp-api <green|red>") {
				t.Fatalf("stderr does not name accepted values: %q", stderr.String())
			}
		})
	}
}
