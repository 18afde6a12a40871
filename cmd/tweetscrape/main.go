// Command tweetscrape polls search for tracked topic/query pairs and stores
// new results in a local SQLite database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/tweetscrape/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewRootCommand(), os.Args[1:])
	stop()
	os.Exit(code)
}
