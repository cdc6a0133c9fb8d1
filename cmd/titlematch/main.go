package main

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/baggage"

	"github.com/ryanm101/titlematch/cache"
	"github.com/ryanm101/titlematch/catalog"
	"github.com/ryanm101/titlematch/config"
	"github.com/ryanm101/titlematch/logging"
	"github.com/ryanm101/titlematch/match"
	"github.com/ryanm101/titlematch/provider"
	"github.com/ryanm101/titlematch/tracing"
)

var cfg *config.Config

func main() {
	ctx := context.Background()

	// Set global baggage
	m, _ := baggage.NewMember("app.version", "1.0.0")
	b, _ := baggage.New(m)
	ctx = baggage.ContextWithBaggage(ctx, b)

	var err error
	cfg, err = config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	logging.Setup(logging.Config{
		Format: cfg.Logging.Format,
		Level:  cfg.Logging.Level,
	})

	shutdown, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logging.Error("failed to setup tracing", "error", err)
	}
	defer func() {
		if shutdown != nil {
			if err := shutdown(ctx); err != nil {
				logging.Error("failed to shutdown tracing", "error", err)
			}
		}
	}()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "search":
		handleSearch(ctx, os.Args[2:])
	case "best":
		handleBest(ctx, os.Args[2:])
	case "stats":
		handleStats(ctx, os.Args[2:])
	case "batch":
		handleBatch(ctx, os.Args[2:])
	case "enrich":
		handleEnrich(ctx, os.Args[2:])
	case "platforms":
		handlePlatforms()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("titlematch - cross-platform game identity resolution")
	fmt.Println()
	fmt.Println("Usage: titlematch <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  search <platform> <query>     Rank dataset titles against a query")
	fmt.Println("  best <platform> <query>       Show only the top match")
	fmt.Println("  stats <platform>              Show provider dataset statistics")
	fmt.Println("  batch <platform> <id>...      Resolve ids against the catalog")
	fmt.Println("  enrich <game-id>              Fetch IGDB metadata for a catalog game")
	fmt.Println("  platforms                     List registered platforms")
	fmt.Println("  help                          Show this help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  TITLEMATCH_CONFIG             Config file path")
	fmt.Println("  TITLEMATCH_DB                 Catalog database path (default: titlematch.db)")
}

// buildRegistry wires one provider per platform with a configured dataset.
// Platforms without a dataset path are left unregistered.
func buildRegistry() *provider.Registry {
	registry := provider.NewRegistry()
	for platformID, path := range cfg.Datasets {
		platform, err := provider.ParsePlatform(platformID)
		if err != nil {
			logging.Warn("skipping dataset for unknown platform", "platform", platformID)
			continue
		}
		ds := provider.NewFileDataset(path)
		switch platform {
		case provider.PlatformSwitch:
			registry.Register(provider.NewSwitch(ds))
		case provider.Platform3DS:
			registry.Register(provider.New3DS(ds))
		case provider.PlatformSteam:
			registry.Register(provider.NewSteam(ds))
		}
	}
	return registry
}

func openCatalog(ctx context.Context) (*catalog.DB, error) {
	return catalog.Open(ctx, cfg.GetDBPath())
}

func newCache() *cache.Cache {
	return cache.New(cfg.GetCacheCapacity(), cfg.GetCacheTTL())
}

func newScorer() match.Scorer {
	return match.NewScorer()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
