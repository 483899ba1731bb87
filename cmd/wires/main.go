// Command wires builds attribute graphs from CUE definitions and manages
// facts in a six-way indexed triple store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/wires/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
