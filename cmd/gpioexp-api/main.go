// Command gpioexp-api prints the per-pin forwarding API for one GPIO expander
// platform.
//
//	gpioexp-api <green|red>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-gpiogen/internal/cli"
	"github.com/goliatone/go-gpiogen/internal/ctxlog"
	"github.com/goliatone/go-gpiogen/pkg/orchestrator"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]))
}

// run writes the expansion to stdout and returns the process exit code. On
// any failure stdout is left untouched.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) int {
	logger := ctxlog.New(stderr, "text", "warn")
	ctx = ctxlog.WithLogger(ctx, logger)

	orch := orchestrator.New()
	if err := orch.Err(); err != nil {
		return report(stderr, err)
	}

	name, err := cli.ParseAPI(args, orch.Platforms().Names())
	if err != nil {
		return report(stderr, err)
	}

	out, err := orch.Generate(ctx, orchestrator.Request{Platform: name})
	if err != nil {
		return report(stderr, err)
	}
	if _, err := stdout.Write(out); err != nil {
		logger.Error("write output", "error", err)
		return 1
	}
	return 0
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
