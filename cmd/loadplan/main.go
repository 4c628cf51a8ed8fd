// LoadPlan plans how cargo boxes are loaded into a container.
//
// Without arguments it opens the desktop application; see `loadplan --help`
// for the batch planning commands.
//
// Build:
//
//	go build -o loadplan ./cmd/loadplan
//
// Version information is injected at build time:
//
//	go build -ldflags "-X main.version=1.2.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/loadplan
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/LoadPlan/internal/cli"
	"github.com/piwi3910/LoadPlan/internal/ui"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx, ui.Run); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
