// Command glbasics runs one tutorial chapter in a window.
//
//	glbasics [-config file] [-v|-vv|-q] [-list] <chapter>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"glbasics/internal/app"
	"glbasics/internal/chapters"
	"glbasics/internal/config"
	"glbasics/internal/logging"
	"glbasics/internal/material"
	"glbasics/internal/platform/glfwhost"

	"github.com/xlab/closer"
)

func init() {
	// glfw and GL calls must all come from the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "configuration file")
	verbose := flag.Bool("v", false, "log info messages")
	debug := flag.Bool("vv", false, "log debug messages")
	quiet := flag.Bool("q", false, "log errors only")
	list := flag.Bool("list", false, "list chapters and exit")
	flag.Usage = usage
	flag.Parse()

	if *list {
		for _, c := range chapters.All() {
			fmt.Printf("%-18s %s\n", c.Name, c.Summary)
		}
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	level := new(slog.LevelVar)
	level.Set(logging.LevelFromFlags(*debug, *verbose, *quiet))
	log := logging.New(os.Stderr, level)
	slog.SetDefault(log)

	chapter, err := chapters.Lookup(flag.Arg(0))
	if err != nil {
		closer.Fatalln(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		closer.Fatalln(err)
	}
	config.Apply(cfg)
	if l, ok := logging.ParseLevel(cfg.LogLevel); ok && !*debug && !*verbose && !*quiet {
		level.Set(l)
	}
	clearColor, err := material.ParseColor(cfg.ClearColor)
	if err != nil {
		closer.Fatalln("clear_color:", err)
	}
	if c, ok := cfg.Canvas(config.DefaultCanvasID); ok {
		c.Title += " - " + chapter.Name
		cfg.Canvases[config.DefaultCanvasID] = c
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	closer.Bind(stopWatch)
	go func() {
		if err := config.Watch(watchCtx, *configPath, log, nil); err != nil {
			log.Debug("config not watched", "err", err)
		}
	}()

	host, err := glfwhost.New(cfg, log)
	if err != nil {
		closer.Fatalln(err)
	}

	ctx, err := app.Bootstrap(host, app.Options{
		CanvasID:   config.DefaultCanvasID,
		Logger:     log,
		ClearColor: clearColor,
		ClearAlpha: cfg.ClearAlpha,
	})
	if err != nil {
		host.Close()
		if errors.Is(err, app.ErrCanvasNotFound) {
			closer.Fatalln(fmt.Sprintf("canvas element %q not found", config.DefaultCanvasID))
		}
		closer.Fatalln(err)
	}

	frame, err := chapter.Setup(ctx)
	if err != nil {
		ctx.Dispose()
		host.Close()
		closer.Fatalln(fmt.Errorf("chapter %s: %w", chapter.Name, err))
	}
	ctx.Log.Info("chapter started", "chapter", chapter.Name)

	err = ctx.Run(frame)
	ctx.Dispose()
	host.Close()
	if err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [flags] <chapter>\n\nchapters:\n", os.Args[0])
	for _, c := range chapters.All() {
		fmt.Fprintf(out, "  %-18s %s\n", c.Name, c.Summary)
	}
	fmt.Fprintln(out, "\nflags:")
	flag.PrintDefaults()
}
