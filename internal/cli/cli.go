package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// APIUsage is the usage line of gpioexp-api for the accepted platform names.
func APIUsage(names []string) string {
	return fmt.Sprintf("usage: gpioexp-api <%s>", strings.Join(names, "|"))
}

// ParseAPI validates the single positional argument of gpioexp-api against
// the accepted platform names. There is no default; anything else is an
// ExitError with code 1 whose message is the usage line.
func ParseAPI(args []string, names []string) (string, error) {
	if len(args) != 1 {
		return "", &ExitError{Code: 1, Message: APIUsage(names)}
	}
	name := args[0]
	if !slices.Contains(names, name) {
		return "", &ExitError{Code: 1, Message: fmt.Sprintf("unknown platform %q\n%s", name, APIUsage(names))}
	}
	return name, nil
}

// GenConfig holds the parsed gpioexp-gen options.
type GenConfig struct {
	Platform     string
	Addressing   string
	Template     string
	PlatformsDir string
	TemplatesDir string
	Prelude      bool
	Splice       string
	Check        bool
	Output       string
	Workers      int
	Interactive  bool
	List         bool
	LogLevel     string
	LogFormat    string
}

// ParseGen parses gpioexp-gen arguments. It returns the config, whether the
// program should exit cleanly (help was requested), or an ExitError.
func ParseGen(args []string, output io.Writer) (*GenConfig, bool, error) {
	flagSet := flag.NewFlagSet("gpioexp-gen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gpioexp-gen - generate per-pin GPIO expander forwarding APIs.

Usage:
  gpioexp-gen [options] [PLATFORM]

Arguments:
  PLATFORM
    Platform name (same as -platform), e.g. red or green.

Options:
`)
		flagSet.PrintDefaults()
	}

	cfg := &GenConfig{}
	flagSet.StringVar(&cfg.Platform, "platform", "", "Platform to expand.")
	flagSet.StringVar(&cfg.Addressing, "addressing", "", "Addressing strategy. Empty uses the platform default.")
	flagSet.StringVar(&cfg.Template, "template", "", "Function set to render. Empty uses legato-c.")
	flagSet.StringVar(&cfg.PlatformsDir, "platforms", "", "Directory of extra platform definitions (.yaml, .json, .hcl).")
	flagSet.StringVar(&cfg.TemplatesDir, "templates", "", "Directory of extra function sets (.yaml manifest + .tpl).")
	flagSet.BoolVar(&cfg.Prelude, "prelude", false, "Emit unit index constants and handler storage before the blocks.")
	flagSet.StringVar(&cfg.Splice, "splice", "", "Replace the generated region of this C file instead of printing.")
	flagSet.BoolVar(&cfg.Check, "check", false, "With -splice, fail if the generated region is out of date instead of rewriting it.")
	flagSet.StringVar(&cfg.Output, "output", "", "Write the expansion to this file instead of stdout.")
	flagSet.IntVar(&cfg.Workers, "workers", 1, "Number of blocks rendered concurrently.")
	flagSet.BoolVar(&cfg.Interactive, "interactive", false, "Choose platform, strategy, and function set interactively.")
	flagSet.BoolVar(&cfg.List, "list", false, "List platforms, strategies, and function sets, then exit.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", "warn", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	switch flagSet.NArg() {
	case 0:
	case 1:
		if cfg.Platform != "" && cfg.Platform != flagSet.Arg(0) {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("conflicting platforms %q and %q", cfg.Platform, flagSet.Arg(0))}
		}
		cfg.Platform = flagSet.Arg(0)
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one platform argument, got %d", flagSet.NArg())}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if cfg.Workers < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
	}
	if cfg.Splice != "" && cfg.Output != "" {
		return nil, false, &ExitError{Code: 2, Message: "-splice and -output are mutually exclusive"}
	}
	if cfg.Check && cfg.Splice == "" {
		return nil, false, &ExitError{Code: 2, Message: "-check requires -splice"}
	}
	if cfg.Platform == "" && !cfg.List && !cfg.Interactive {
		return nil, false, &ExitError{Code: 2, Message: "a platform is required (use -platform, a positional argument, -interactive, or -list)"}
	}

	return cfg, false, nil
}
