package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Its-donkey/menu-restore/internal/config"
	"github.com/Its-donkey/menu-restore/internal/ui/server"
	"github.com/Its-donkey/menu-restore/logging"
)

func main() {
	configPath := flag.String("config", "", "path to an optional JSON config file")
	listen := flag.String("listen", "", "address to serve the UI (overrides config)")
	assetsDir := flag.String("assets", "", "directory holding index.html, styles.css and the wasm bundle (overrides config)")
	logLevel := flag.String("log-level", "", "minimum log level (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *assetsDir != "" {
		cfg.App.Assets = *assetsDir
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	addr := cfg.Server.ListenAddr()
	if *listen != "" {
		addr = *listen
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	logger := logging.New(level, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = server.Run(ctx, server.Options{
		Listen:    addr,
		AssetsDir: cfg.App.Assets,
		ShellFile: cfg.App.Shell,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("server", "ui server stopped", err, nil)
		os.Exit(1)
	}
}
