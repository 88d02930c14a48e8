package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgilberg1988/my-surf-spots/internal/catalog"
	"github.com/dgilberg1988/my-surf-spots/internal/config"
	"github.com/dgilberg1988/my-surf-spots/internal/logger"
	"github.com/dgilberg1988/my-surf-spots/internal/marine"
	"github.com/dgilberg1988/my-surf-spots/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	addr := flag.String("addr", "", "Listen address (default from config)")
	sortMode := flag.String("sort", "", "Default sort: \"waves\" or \"distance\"")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Web.Address = *addr
	}
	if *sortMode != "" {
		cfg.Sort = *sortMode
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.New(cfg.Web, catalog.Default(), marine.NewOpenMeteoClient(cfg.Marine.BaseURL, log), cfg.SortMode(), log)
	if err := server.Run(ctx); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
