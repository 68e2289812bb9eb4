// Command janitor purges expired one-time codes and trusted devices on the
// CLEANUP_INTERVAL schedule until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/bootstrap"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/janitor"
)

func main() {
	once := flag.Bool("once", false, "run a single cleanup and exit")
	flag.Parse()

	if err := run(*once); err != nil {
		fmt.Fprintf(os.Stderr, "janitor: %v\n", err)
		os.Exit(1)
	}
}

func run(once bool) error {
	settings, err := bootstrap.LoadSettings()
	if err != nil {
		return err
	}
	log := bootstrap.NewLogger(settings.App, "janitor")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, settings, log)
	if err != nil {
		return err
	}
	defer app.Close()

	j, err := janitor.FromConfig(app.Manager, settings.Janitor, janitor.WithLogger(log))
	if err != nil {
		return err
	}

	if once {
		_, err := j.RunOnce(ctx)
		return err
	}
	if err := j.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
