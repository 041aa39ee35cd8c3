// Command strata is the structure-aware indexing and retrieval CLI.
package main

import (
	"fmt"
	"os"

	configfile "github.com/strata-labs/strata/internal/adapters/driven/config/file"
	"github.com/strata-labs/strata/internal/adapters/driven/embedding/ollama"
	"github.com/strata-labs/strata/internal/adapters/driven/embedding/openai"
	"github.com/strata-labs/strata/internal/adapters/driven/rerank/flashrank"
	sqlitestore "github.com/strata-labs/strata/internal/adapters/driven/vectorstore/sqlite"
	"github.com/strata-labs/strata/internal/adapters/driving/cli"
	"github.com/strata-labs/strata/internal/core/ports/driven"
	"github.com/strata-labs/strata/internal/core/services"
	"github.com/strata-labs/strata/internal/parser/markdown"
	"github.com/strata-labs/strata/internal/postprocessors"
	"github.com/strata-labs/strata/internal/postprocessors/chunker"
	"github.com/strata-labs/strata/internal/postprocessors/tablemeta"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	store, err := sqlitestore.NewStore(cfg.GetString(configfile.KeyDataDir))
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	defer store.Close()

	var reranker driven.Reranker
	if cfg.GetBool(configfile.KeyRerankEnabled) {
		reranker = flashrank.NewReranker(flashrank.Config{
			BaseURL: cfg.GetString(configfile.KeyRerankBaseURL),
			Model:   cfg.GetString(configfile.KeyRerankModel),
		})
		defer reranker.Close()
	}

	fallback := buildFallbackChunker(cfg)
	pipeline := postprocessors.NewPipeline(tablemeta.New())

	router := services.NewIndexRouter(embedder, store)
	ingestSvc := services.NewIngestService(
		markdown.New(),
		services.NewUnitClassifier(),
		fallback,
		pipeline,
		router,
	)
	querySvc := services.NewQueryService(embedder, store, reranker)
	adminSvc := services.NewAdminService(store)

	cli.SetServices(ingestSvc, querySvc, adminSvc)
	cli.SetVersion(version)

	return cli.Execute()
}

// buildEmbedder selects the embedding provider from configuration.
// Ollama is the default so the tool works locally with no API key.
func buildEmbedder(cfg *configfile.ConfigStore) (driven.EmbeddingService, error) {
	switch provider := cfg.GetString(configfile.KeyEmbeddingProvider); provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.GetString(configfile.KeyEmbeddingAPIKey),
			BaseURL: cfg.GetString(configfile.KeyEmbeddingBaseURL),
			Model:   cfg.GetString(configfile.KeyEmbeddingModel),
		})
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.GetString(configfile.KeyEmbeddingBaseURL),
			Model:   cfg.GetString(configfile.KeyEmbeddingModel),
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

func buildFallbackChunker(cfg *configfile.ConfigStore) driven.PostProcessor {
	var opts []chunker.Option
	if size := cfg.GetInt(configfile.KeyChunkWindowSize); size > 0 {
		opts = append(opts, chunker.WithWindowSize(size))
	}
	if overlap := cfg.GetInt(configfile.KeyChunkOverlap); overlap > 0 {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	return chunker.New(opts...)
}

