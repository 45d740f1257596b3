// Command folio parses, indexes and searches PDF and DOCX documents.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/folio/internal/adapters/driven/ai"
	"github.com/custodia-labs/folio/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio/internal/adapters/driven/storage/artifacts"
	"github.com/custodia-labs/folio/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/folio/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/services"
	"github.com/custodia-labs/folio/internal/indexer"
	"github.com/custodia-labs/folio/internal/logger"
	"github.com/custodia-labs/folio/internal/parsers"
	"github.com/custodia-labs/folio/internal/postprocessors"
	"github.com/custodia-labs/folio/internal/retrieval"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cli.SetVersion(version)

	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Error("open config: %v", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("load settings: %v", err)
		return err
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		logger.Error("open catalog: %v", err)
		return err
	}
	defer store.Close()

	artifactStore, err := artifacts.NewStore(settings.Storage.ArtifactsURL)
	if err != nil {
		logger.Error("open artifacts: %v", err)
		return err
	}

	chunkers := chunkerBuilder(settings.Chunking)

	// Parse, chunk, settings and the catalog work without an embedding provider.
	var graphIndexer driven.GraphIndexer
	var retriever driven.ContextRetriever
	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		logger.Warn("embedding unavailable: %v", err)
	} else if embedder != nil {
		defer embedder.Close()

		fine, err := chunkers(settings.Search.FineMaxTokens)
		if err != nil {
			logger.Error("build fine chunker: %v", err)
			return err
		}
		graphIndexer = indexer.New(embedder)
		retriever = retrieval.NewSearcher(embedder,
			retrieval.WithTopNodes(settings.Search.TopNodes),
			retrieval.WithFineChunker(fine),
		)
	}

	catalog := store.DocumentCatalog()
	cli.SetServices(cli.Services{
		Document: services.NewDocumentService(parsers.NewDefaultRegistry(), chunkers, graphIndexer, artifactStore, catalog),
		Search:   services.NewSearchService(retriever, artifactStore, catalog, settings.Search.MaxTokens),
		Settings: settingsService,
	})

	return cli.Execute(ctx)
}

// chunkerBuilder builds overlapping chunkers from the configured settings.
func chunkerBuilder(s domain.ChunkingSettings) driven.ChunkerBuilder {
	registry := postprocessors.NewDefaultRegistry()
	return func(maxTokens int) (driven.Chunker, error) {
		c, err := registry.Build(postprocessors.ChunkerName, postprocessors.ChunkerConfig(s, maxTokens))
		if err != nil {
			return nil, fmt.Errorf("chunker: %w", err)
		}
		return c, nil
	}
}
