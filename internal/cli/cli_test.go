package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gpiogen/internal/cli"
)

var names = []string{"green", "red"}

func TestParseAPI(t *testing.T) {
	got, err := cli.ParseAPI([]string{"green"}, names)
	if err != nil || got != "green" {
		t.Fatalf("ParseAPI(green) = %q, %v", got, err)
	}
}

func TestParseAPI_Rejects(t *testing.T) {
	cases := map[string][]string{
		"no args":   nil,
		"two args":  {"red", "green"},
		"empty":     {""},
		"numeric":   {"2"},
		"unknown":   {"blue"},
		"uppercase": {"RED"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := cli.ParseAPI(args, names)
			var exitErr *cli.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("expected ExitError, got %v", err)
			}
			if exitErr.Code != 1 {
				t.Fatalf("exit code = %d", exitErr.Code)
			}
			if !strings.Contains(exitErr.Message, "usage: gpioexp-api <green|red>") {
				t.Fatalf("message does not name accepted values: %q", exitErr.Message)
			}
		})
	}
}

func TestParseGen(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.ParseGen([]string{
		"-addressing", "pin-table",
		"-prelude",
		"-workers", "4",
		"-log-level", "DEBUG",
		"-output", "out.c",
		"red",
	}, &out)
	if err != nil || exit {
		t.Fatalf("parse: exit=%v err=%v", exit, err)
	}

	want := &cli.GenConfig{
		Platform:   "red",
		Addressing: "pin-table",
		Prelude:    true,
		Output:     "out.c",
		Workers:    4,
		LogLevel:   "debug",
		LogFormat:  "text",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGen_Help(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.ParseGen([]string{"-h"}, &out)
	if err != nil || !exit || cfg != nil {
		t.Fatalf("help: cfg=%v exit=%v err=%v", cfg, exit, err)
	}
	if !strings.Contains(out.String(), "gpioexp-gen [options] [PLATFORM]") {
		t.Fatalf("usage not printed: %q", out.String())
	}
}

func TestParseGen_ListNeedsNoPlatform(t *testing.T) {
	cfg, _, err := cli.ParseGen([]string{"-list"}, &bytes.Buffer{})
	if err != nil || !cfg.List {
		t.Fatalf("list: cfg=%+v err=%v", cfg, err)
	}
}

func TestParseGen_Errors(t *testing.T) {
	cases := map[string][]string{
		"no platform":     {},
		"unknown flag":    {"-colour", "red"},
		"two positionals": {"red", "green"},
		"conflict":        {"-platform", "red", "green"},
		"log format":      {"-log-format", "xml", "red"},
		"log level":       {"-log-level", "trace", "red"},
		"workers":         {"-workers", "0", "red"},
		"splice+output":   {"-splice", "a.c", "-output", "b.c", "red"},
		"check alone":     {"-check", "red"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := cli.ParseGen(args, &bytes.Buffer{})
			var exitErr *cli.ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != 2 {
				t.Fatalf("expected ExitError code 2, got %v", err)
			}
		})
	}
}
