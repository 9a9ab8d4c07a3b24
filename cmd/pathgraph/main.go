package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph/pipeline"
	"github.com/banshee-data/pathgraph/internal/pathgraph/presentation"
	"github.com/banshee-data/pathgraph/internal/pgobserve"
	"github.com/banshee-data/pathgraph/internal/posestore/sqlite"
)

var (
	dbFile     = flag.String("db", "poses.db", "path to the SQLite pose store")
	configFile = flag.String("config", "", "path to a tuning config JSON file (defaults to config/tuning.defaults.json)")
	outFile    = flag.String("out", "", "path to write the result JSON (default: stdout)")
	verbose    = flag.Bool("verbose", false, "enable debug-level logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	pgobserve.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.MustLoadDefaultConfig()
	if *configFile != "" {
		loaded, err := config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("pathgraph: load config: %v", err)
		}
		cfg = loaded
	}

	store, err := sqlite.Open(*dbFile)
	if err != nil {
		log.Fatalf("pathgraph: open pose store: %v", err)
	}
	defer store.Close()

	p := pipeline.New(store, cfg)
	p.Namer = presentation.FloorName

	result, err := p.Run(context.Background())
	if err != nil {
		log.Fatalf("pathgraph: run: %v", err)
	}

	out := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			log.Fatalf("pathgraph: create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("pathgraph: encode result: %v", err)
	}
}
