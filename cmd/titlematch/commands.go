package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/ryanm101/titlematch/batch"
	"github.com/ryanm101/titlematch/catalog"
	"github.com/ryanm101/titlematch/metadata"
	"github.com/ryanm101/titlematch/provider"
	"github.com/ryanm101/titlematch/search"
)

func handleSearch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	maxResults := fs.Int("n", search.DefaultMaxResults, "maximum results to show")
	_ = fs.Parse(args)

	if fs.NArg() < 2 {
		fatalf("Usage: titlematch search [-n max] <platform> <query>")
	}

	platform, err := provider.ParsePlatform(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	svc := search.NewService(buildRegistry(), newScorer())
	svc.FetchTimeout = cfg.GetProviderTimeout()

	resp, err := svc.Search(ctx, platform, fs.Arg(1), *maxResults)
	if err != nil {
		fatalf("search failed: %v", err)
	}

	if len(resp.Results) == 0 {
		fmt.Println("No matches.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCORE\tID\tNAME\tREGION")
	for _, r := range resp.Results {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Score, r.ExternalID, r.Name, r.Region)
	}
	_ = w.Flush()
}

func handleBest(ctx context.Context, args []string) {
	if len(args) < 2 {
		fatalf("Usage: titlematch best <platform> <query>")
	}

	platform, err := provider.ParsePlatform(args[0])
	if err != nil {
		fatalf("%v", err)
	}

	svc := search.NewService(buildRegistry(), newScorer())
	svc.FetchTimeout = cfg.GetProviderTimeout()

	best, err := svc.Best(ctx, platform, args[1])
	if err != nil {
		fatalf("search failed: %v", err)
	}
	if best == nil {
		fmt.Println("No matches.")
		return
	}
	fmt.Printf("%s  %s  (score %d)\n", best.ExternalID, best.Name, best.Score)
}

func handleStats(ctx context.Context, args []string) {
	if len(args) < 1 {
		fatalf("Usage: titlematch stats <platform>")
	}

	platform, err := provider.ParsePlatform(args[0])
	if err != nil {
		fatalf("%v", err)
	}

	svc := search.NewService(buildRegistry(), newScorer())
	stats, ok, err := svc.Stats(ctx, platform)
	if err != nil {
		fatalf("stats failed: %v", err)
	}
	if !ok {
		fmt.Printf("Stats are not available for %s.\n", platform)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total games:\t%d\n", stats.TotalGames)
	_, _ = fmt.Fprintf(w, "Cache status:\t%s\n", stats.CacheStatus)
	_, _ = fmt.Fprintf(w, "Last updated:\t%s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
	_ = w.Flush()
}

func handleBatch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	emulator := fs.String("emulator", "", "keep only games with a listing for this emulator")
	maxListings := fs.Int("max-listings", 1, "listings per game (1-50)")
	nsfw := fs.Bool("nsfw", false, "include NSFW games")
	minimal := fs.Bool("minimal", false, "return the minimal game projection")
	asJSON := fs.Bool("json", false, "print the raw JSON envelope")
	_ = fs.Parse(args)

	if fs.NArg() < 2 {
		fatalf("Usage: titlematch batch [flags] <platform> <id>...")
	}

	platform, err := provider.ParsePlatform(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	db, err := openCatalog(ctx)
	if err != nil {
		fatalf("failed to open catalog: %v", err)
	}
	defer func() { _ = db.Close() }()

	pipeline := batch.NewPipeline(buildRegistry(), db, newScorer(), newCache())
	pipeline.ProviderTimeout = cfg.GetProviderTimeout()
	pipeline.CatalogTimeout = cfg.GetCatalogTimeout()

	resp, err := pipeline.Resolve(ctx, &batch.Request{
		Platform: platform,
		IDs:      fs.Args()[1:],
		Filters: batch.Filters{
			Emulator:           *emulator,
			MaxListingsPerGame: *maxListings,
			ShowNSFW:           *nsfw,
			Minimal:            *minimal,
		},
	})
	if err != nil {
		envelope := batch.ErrorResponse(err)
		if *asJSON {
			printJSON(envelope)
			os.Exit(1)
		}
		fatalf("batch failed (%s): %v", envelope.Code, err)
	}

	if *asJSON {
		printJSON(resp)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tFOUND\tTITLE\tLISTINGS")
	for _, r := range resp.Results {
		title := ""
		switch g := r.Game.(type) {
		case *catalog.Game:
			title = g.Title
		case catalog.MinimalGame:
			title = g.Title
		}
		_, _ = fmt.Fprintf(w, "%s\t%t\t%s\t%d\n", r.ID, r.Found, title, len(r.Listings))
	}
	_ = w.Flush()
	fmt.Printf("\n%d requested, %d found, %d not found\n",
		resp.TotalRequested, resp.TotalFound, resp.TotalNotFound)
}

func handleEnrich(ctx context.Context, args []string) {
	if len(args) < 1 {
		fatalf("Usage: titlematch enrich <game-id>")
	}

	gameID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatalf("invalid game id %q", args[0])
	}

	db, err := openCatalog(ctx)
	if err != nil {
		fatalf("failed to open catalog: %v", err)
	}
	defer func() { _ = db.Close() }()

	igdbProvider, err := metadata.NewIGDBProvider(ctx, cfg.IGDB.ClientID, cfg.IGDB.ClientSecret)
	if err != nil {
		fatalf("failed to create IGDB provider: %v", err)
	}

	svc := metadata.NewService(db, igdbProvider, newScorer())
	if err := svc.EnrichGame(ctx, gameID); err != nil {
		fatalf("enrich failed: %v", err)
	}
	fmt.Printf("Enriched game %d.\n", gameID)
}

func handlePlatforms() {
	registry := buildRegistry()
	platforms := registry.Platforms()
	if len(platforms) == 0 {
		fmt.Println("No providers configured. Add dataset paths to the config file.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PLATFORM\tLABEL\tSTATS\tDESCRIPTION")
	for _, id := range platforms {
		p, err := registry.Resolve(id)
		if err != nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", p.ID(), p.Label(), p.SupportsStats(), p.Description())
	}
	_ = w.Flush()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
