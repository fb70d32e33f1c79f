// Package main is the entry point for roomcarver.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/roomcarver/internal/game"
	"github.com/samdwyer/roomcarver/internal/gamedata"
	"github.com/samdwyer/roomcarver/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()

	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Maps will be generated without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	registry, err := gamedata.LoadPresetRegistry()
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}

	cfg, err := game.LoadConfig(registry, os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Piped output gets a single uncolored map instead of the interactive screen
	cfg.Color = term.IsTerminal(int(os.Stdout.Fd()))
	if !cfg.Color {
		cfg.Dump = true
	}

	g := game.New(cfg)

	if cfg.Dump {
		if err := g.Dump(ctx, os.Stdout); err != nil {
			log.Fatalf("Dump error: %v", err)
		}
		return
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Run error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// It reports whether an API key is available to export traces with.
func setupOTelEnv() bool {
	apiKey := os.Getenv("ROOMCARVER_HONEYCOMB_API_KEY")
	if apiKey == "" {
		return false
	}

	dataset := os.Getenv("ROOMCARVER_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = "roomcarver" // default dataset name
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
