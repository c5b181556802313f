package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/oftn-oswg/socket"
)

type DevServeApp struct {
	Config  *DevServeConfig
	Server  *http.Server
	Handler http.Handler

	network  string
	address  string
	listener net.Listener
}

// NewDevServeApp validates the configuration and assembles the handler
// chain. The document root is resolved to an absolute path here, so later
// changes of the working directory do not affect it.
func NewDevServeApp(config *DevServeConfig) (app *DevServeApp, err error) {
	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", config.Root, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("document root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document root %s is not a directory", root)
	}
	config.Root = root

	app = &DevServeApp{
		Config: config,
		Server: &http.Server{},
	}

	app.Handler = &LoggingHandler{
		Next: &NoCacheHandler{
			Next: NewStaticHandler(root),
		},
	}
	app.Server.Handler = app.Handler

	return app, nil
}

// Listen binds the configured socket. Bind failures are returned as is;
// nothing is retried.
func (d *DevServeApp) Listen() (net.Listener, error) {
	network, address := socket.Parse(d.Config.Listen)
	listener, err := socket.Listen(network, address, os.FileMode(d.Config.SocketPermissions))
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", d.Config.Listen, err)
	}
	d.network, d.address, d.listener = network, address, listener
	return listener, nil
}

// Serve accepts connections on listener until the server is stopped.
func (d *DevServeApp) Serve(listener net.Listener) error {
	return d.Server.Serve(noCacheListener{listener})
}

// Start binds the configured socket and serves on it in the background.
func (d *DevServeApp) Start() error {
	listener, err := d.Listen()
	if err != nil {
		return err
	}

	go func() {
		err := d.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("serve: %s", err)
		}
	}()

	return nil
}

// URL returns the address the application is reachable at once bound.
func (d *DevServeApp) URL() string {
	if d.listener == nil {
		return ""
	}
	// The unix listener reports the temporary name it was bound under.
	if d.network == "unix" {
		return "unix:" + d.address
	}
	return ListenURL(d.listener.Addr())
}

func (d *DevServeApp) Stop() {
	d.Server.Shutdown(context.Background())
	if d.listener != nil {
		d.listener.Close()
		if d.network == "unix" {
			os.Remove(d.address)
		}
	}
}
