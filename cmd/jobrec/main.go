// Command jobrec is the CLI entrypoint wiring jobsource, repository,
// embedding, vectorindex, scoring, and evidence into the indexJobs and
// search operations spec.md §6 names, translated from
// build_vector_index.py's argparse subcommands into Go's flag package
// with flag.NewFlagSet subcommands — the idiomatic Go equivalent of
// argparse subparsers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/your-org/jobrec/internal/config"
	"github.com/your-org/jobrec/internal/embedding"
	"github.com/your-org/jobrec/internal/evidence"
	"github.com/your-org/jobrec/internal/jobsource"
	"github.com/your-org/jobrec/internal/pipeline"
	"github.com/your-org/jobrec/internal/repository"
	"github.com/your-org/jobrec/internal/repository/postgres"
	"github.com/your-org/jobrec/internal/scoring"
	"github.com/your-org/jobrec/internal/vectorindex"
	"github.com/your-org/jobrec/pkg/models"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// Exit codes per spec.md §6: 0 success, 1 operational failure
// (Configuration/Transient/VersionMismatch), 2 usage error.
func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "index":
		return runIndex(args[1:])
	case "search":
		return runSearch(args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "jobrec: unknown subcommand %q\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: jobrec <command> [flags]

commands:
  index   read jobs from a source, clean + embed them, and upsert into the vector index
  search  rank jobs in the vector index against a résumé`)
}

func runIndex(args []string) int {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	batchSizeJobs := fs.Int("batch-size-jobs", 100, "jobs read/upserted per batch")
	batchSizeEmbed := fs.Int("batch-size-embed", 32, "documents embedded per EmbedMany call")
	source := fs.String("source", "", "filter by source (e.g. 'adzuna')")
	limit := fs.Int("limit", 0, "maximum number of jobs to process (0 = no limit)")
	rebuild := fs.Bool("rebuild", false, "delete the existing collection and rebuild from scratch")
	verbose := fs.Bool("v", false, "enable verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Printf("jobrec: configuration error: %v", err)
		return 1
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Printf("jobrec: %v", err)
		return 1
	}
	embedCfg, err := embedder.Config(context.Background())
	if err != nil {
		log.Printf("jobrec: failed to load embedding config: %v", err)
		return 1
	}

	index, err := buildIndex(cfg, embedCfg.VersionID)
	if err != nil {
		log.Printf("jobrec: %v", err)
		return 1
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Printf("jobrec: %v", err)
		return 1
	}
	defer store.Close()

	if cfg.JobSourcePath == "" {
		log.Println("jobrec: JOBREC_JOB_SOURCE_PATH must name a newline-delimited JSON job file")
		return 1
	}
	src := jobsource.NewJSONFileSource(cfg.JobSourcePath)

	indexer := pipeline.NewIndexer(src, store, embedder, index)
	counts, err := indexer.IndexJobs(context.Background(), pipeline.IndexJobsOptions{
		Source:         *source,
		Limit:          *limit,
		Rebuild:        *rebuild,
		BatchSizeJobs:  *batchSizeJobs,
		BatchSizeEmbed: *batchSizeEmbed,
		Verbose:        *verbose,
	})
	if err != nil {
		log.Printf("jobrec: indexJobs failed: %v", err)
		return 1
	}

	log.Printf("indexJobs complete: read=%d skipped=%d embedded=%d upserted=%d duration=%s",
		counts.Read, counts.Skipped, counts.Embedded, counts.Upserted, counts.Duration)
	return 0
}

func runSearch(args []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	resumePath := fs.String("resume", "", "path to a plain-text résumé file (required)")
	topK := fs.Int("top-k", 20, "number of results to return (1-200)")
	minScore := fs.Float64("min-score", 0, "minimum total score to include a result")
	recencyDays := fs.Int("recency-days", 0, "only include jobs posted within this many days (0 = no filter)")
	preferredLocation := fs.String("preferred-location", "", "preferred job location")
	minSalary := fs.Float64("min-salary", 0, "minimum desired salary")
	sources := fs.String("sources", "", "comma-separated list of sources to include")
	verbose := fs.Bool("v", false, "enable verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *resumePath == "" {
		fmt.Fprintln(os.Stderr, "jobrec search: --resume is required")
		return 2
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		log.Printf("jobrec: failed to read résumé file: %v", err)
		return 2
	}

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Printf("jobrec: configuration error: %v", err)
		return 1
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Printf("jobrec: %v", err)
		return 1
	}
	embedCfg, err := embedder.Config(context.Background())
	if err != nil {
		log.Printf("jobrec: failed to load embedding config: %v", err)
		return 1
	}

	index, err := buildIndex(cfg, embedCfg.VersionID)
	if err != nil {
		log.Printf("jobrec: %v", err)
		return 1
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Printf("jobrec: %v", err)
		return 1
	}
	defer store.Close()

	scorer := scoring.New(models.DefaultScoringWeights())
	extractor := evidence.New(embedder, 0, 0)
	searcher := pipeline.NewSearcher(embedder, index, store, scorer, extractor)

	opts := pipeline.SearchOptions{
		TopK:     *topK,
		MinScore: *minScore,
		Verbose:  *verbose,
	}
	if *recencyDays > 0 {
		opts.RecencyDays = recencyDays
	}
	if *preferredLocation != "" {
		opts.PreferredLocation = preferredLocation
	}
	if *minSalary > 0 {
		opts.MinSalary = minSalary
	}
	if *sources != "" {
		opts.Sources = strings.Split(*sources, ",")
	}

	result, err := searcher.Search(context.Background(), string(resumeBytes), opts)
	if err != nil {
		log.Printf("jobrec: search failed: %v", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Printf("jobrec: failed to encode results: %v", err)
		return 1
	}
	return 0
}

func buildEmbedder(cfg *config.Settings) (embedding.Service, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		return embedding.NewOpenAIService(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	default:
		return embedding.NewLocalService(), nil
	}
}

func buildIndex(cfg *config.Settings, embeddingVersion string) (vectorindex.Index, error) {
	switch cfg.VectorIndexBackend {
	case "chroma":
		return vectorindex.NewChromaIndex(context.Background(), cfg.ChromaBasePath, cfg.CollectionBase, embeddingVersion)
	default:
		return vectorindex.NewMemoryIndex(cfg.CollectionBase, embeddingVersion), nil
	}
}

func buildStore(cfg *config.Settings) (repository.JobStore, error) {
	switch cfg.MetadataBackend {
	case "postgres":
		return postgres.NewJobStore(cfg.DatabaseURL)
	default:
		return repository.NewMemoryJobStore(), nil
	}
}
