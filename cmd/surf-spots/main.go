package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/dgilberg1988/my-surf-spots/internal/catalog"
	"github.com/dgilberg1988/my-surf-spots/internal/config"
	"github.com/dgilberg1988/my-surf-spots/internal/database"
	"github.com/dgilberg1988/my-surf-spots/internal/flights"
	"github.com/dgilberg1988/my-surf-spots/internal/geolocation"
	"github.com/dgilberg1988/my-surf-spots/internal/logger"
	"github.com/dgilberg1988/my-surf-spots/internal/marine"
	"github.com/dgilberg1988/my-surf-spots/internal/ui"
)

// Fixes older than this are dropped at startup
const fixRetention = 24 * time.Hour

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	location := flag.String("location", "", "Your location (zipcode or city, state) for distances")
	sortMode := flag.String("sort", "", "Sort by \"waves\" or \"distance\"")
	noGeo := flag.Bool("no-geo", false, "Skip geolocation; distances are hidden")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *location != "" {
		cfg.Geolocation.Query = *location
	}
	if *sortMode != "" {
		cfg.Sort = *sortMode
	}
	if *noGeo {
		cfg.Geolocation.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(cfg.Log.File, "")
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logger.New(logFile, cfg.Log.Level, false)

	// The browser launcher echoes to stdout, which belongs to the alt screen
	browser.Stdout = logFile
	browser.Stderr = logFile

	opener := flights.NewOpener(log)
	model := ui.NewModel(ui.Options{
		Catalog:  catalog.Default(),
		Fetcher:  marine.NewOpenMeteoClient(cfg.Marine.BaseURL, log),
		Probe:    buildProbe(cfg, log),
		Opener:   opener,
		SortMode: cfg.SortMode(),
		Logger:   log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

// buildProbe returns nil when geolocation is disabled
func buildProbe(cfg config.Config, log *slog.Logger) ui.LocationProbe {
	if !cfg.Geolocation.Enabled {
		return nil
	}

	var precise, coarse geolocation.Locator
	if cfg.Geolocation.Query != "" {
		precise = geolocation.NewQueryLocator(cfg.Geolocation.Query, cfg.Geolocation.NominatimURL)
	}
	coarse = geolocation.NewIPLocator(cfg.Geolocation.IPLookupURL)

	return geolocation.NewProbe(cfg.ProbeOptions(), precise, coarse, openFixCache(cfg.Database.Path, log), log)
}

// openFixCache returns nil if the database is unusable; the probe then
// always asks its locator
func openFixCache(path string, log *slog.Logger) geolocation.FixCache {
	db, err := database.Open(path)
	if err != nil {
		log.Warn("fix cache unavailable", "path", path, "error", err)
		return nil
	}

	store := geolocation.NewSQLiteFixStore(db)
	if n, err := store.Prune(context.Background(), time.Now().Add(-fixRetention)); err != nil {
		log.Warn("pruning fix cache", "error", err)
	} else if n > 0 {
		log.Debug("pruned old fixes", "count", n)
	}
	return store
}
