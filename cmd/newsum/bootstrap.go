package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/newsum/internal/adapters/driven/ai"
	"github.com/custodia-labs/newsum/internal/adapters/driven/cache"
	"github.com/custodia-labs/newsum/internal/adapters/driven/config/env"
	"github.com/custodia-labs/newsum/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsum/internal/adapters/driven/news"
	"github.com/custodia-labs/newsum/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/newsum/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/newsum/internal/adapters/driving/cli"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/core/services"
	"github.com/custodia-labs/newsum/internal/logger"
	"github.com/custodia-labs/newsum/internal/postprocessors"
)

// closers runs cleanup funcs in reverse registration order.
type closers []func()

func (c *closers) add(f func()) { *c = append(*c, f) }

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// bootstrap wires adapters into services once global flags are known.
// Capabilities whose provider cannot be created are disabled with a warning
// so that commands not needing them still run.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	configDir, dataDir := file.DefaultConfigDir(), file.DefaultDataDir()
	if opts.ConfigDir != "" {
		configDir, dataDir = opts.ConfigDir, opts.ConfigDir
	}

	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	configStore := env.NewConfigStore(fileStore, env.DefaultBindings())
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}
	logger.Section("Bootstrap")
	logger.Debug("config dir: %s, data dir: %s", configDir, dataDir)

	var cleanup closers

	aiServices := ai.Init(ctx, settings, false)
	cleanup.add(aiServices.Close)

	source, err := news.CreateSource(settings.News)
	if err != nil {
		logger.Debug("news source unavailable: %v", err)
	}

	summaryCache, err := cache.CreateSummaryCache(ctx, settings.Cache)
	if err != nil {
		logger.Warn("summary cache disabled: %v", err)
		summaryCache = nil
	}
	if summaryCache != nil {
		cleanup.add(func() { _ = summaryCache.Close() })
	}

	var store driven.ArticleStore = memory.NewArticleStore()
	if settings.Index.Persist {
		sqliteStore, err := sqlite.NewStore(dataDir)
		if err != nil {
			logger.Warn("persistent index unavailable, using memory: %v", err)
		} else {
			store = sqliteStore
			cleanup.add(func() { _ = sqliteStore.Close() })
		}
	}

	dimensions := 0
	if aiServices.EmbeddingService != nil {
		dimensions = aiServices.EmbeddingService.Dimensions()
	}
	vectors := memory.NewVectorIndex(dimensions)
	cleanup.add(func() { _ = vectors.Close() })

	indexService := services.NewIndexService(
		store,
		vectors,
		aiServices.EmbeddingService,
		postprocessors.NewDefaultPipeline(settings.Index),
		settings.Index.Oversample,
	)
	if settings.Index.Persist {
		n, err := indexService.Rebuild(ctx)
		if err != nil {
			logger.Warn("rebuilding index: %v", err)
		} else {
			logger.Debug("loaded %d stored chunks", n)
		}
	}

	prompts := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if settings.Prompts.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		cleanup.add(cancel)
		go func() {
			if err := prompts.Watch(watchCtx, nil); err != nil {
				logger.Warn("prompt watcher stopped: %v", err)
			}
		}()
	}

	// A failed load keeps defaults; the service already logged it.
	preferenceService, _ := services.NewPreferenceService(
		file.NewPreferenceStore(dataDir),
		settings.History.MaxEntries,
	)

	summaryService := services.NewSummaryService(aiServices.LLMService, prompts,
		services.WithSummaryCache(summaryCache, settings.Cache.TTL),
		services.WithTemperature(settings.LLM.Temperature),
		services.WithArticleLookup(indexService),
		services.WithSplitter(postprocessors.NewChunker(settings.Index)),
	)
	newsService := services.NewNewsService(source, preferenceService)
	session := services.NewSession(newsService, indexService, summaryService, preferenceService)

	return &cli.Services{
		News:        newsService,
		Index:       indexService,
		Summary:     summaryService,
		Preferences: preferenceService,
		Session:     session,
		Settings:    settingsService,
	}, cleanup.close, nil
}
