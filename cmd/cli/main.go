package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/billio/internal/buildinfo"
	"github.com/dmitrijs2005/billio/internal/client/cli"
	"github.com/dmitrijs2005/billio/internal/client/config"
	"github.com/dmitrijs2005/billio/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	// unblock the REPL's read on Ctrl-C
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	app.Run(ctx)

}
