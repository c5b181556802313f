package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// run serves until ctx is done. The startup line is the only output written
// to stdout.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	var configFile, listen, root string

	// Parse configuration file from command line
	flags := flag.NewFlagSet("devserve", flag.ContinueOnError)
	flags.StringVar(&configFile, "config", "devserve.yml",
		"Location of the configuration file")
	flags.StringVar(&listen, "listen", "", "Socket to listen on, overriding the configuration")
	flags.StringVar(&root, "root", "", "Document root, overriding the configuration")
	if err := flags.Parse(args); err != nil {
		return err
	}

	config, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	if listen != "" {
		config.Listen = listen
	}
	if root != "" {
		config.Root = root
	}

	app, err := NewDevServeApp(config)
	if err != nil {
		return err
	}

	listener, err := app.Listen()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Dev server: %s (no-cache)\n", app.URL())

	served := make(chan error, 1)
	go func() {
		served <- app.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		app.Stop()
		<-served
		return nil
	case err := <-served:
		app.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
