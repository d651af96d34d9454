/*
This is an example application that uses the engine package to load a few
assets asynchronously and keep them hot-reloadable.
*/
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/atlas/engine"
	"github.com/spaghettifunk/atlas/testbed"
)

func main() {
	cfg, err := engine.LoadConfig("atlas.toml")
	if errors.Is(err, fs.ErrNotExist) {
		cfg = engine.DefaultConfig()
	} else if err != nil {
		panic(err)
	}

	pipeline, err := engine.New(cfg)
	if err != nil {
		panic(err)
	}

	demo := testbed.NewDemo(pipeline)
	demo.LoadTexture("textures/checker.png")
	demo.LoadTexture("textures/grass.png")
	demo.LoadMaterial("materials/grass.toml")

	// signal channel to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := demo.Run(ctx); err != nil {
		panic(err)
	}

	if err := pipeline.Shutdown(); err != nil {
		os.Exit(1)
	}
}
