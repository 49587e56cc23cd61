package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadsign/internal/catalog"
	"github.com/abhisek/roadsign/internal/config"
	"github.com/abhisek/roadsign/internal/jobs"
	"github.com/abhisek/roadsign/internal/llm"
	"github.com/abhisek/roadsign/internal/quizgen"
	"github.com/abhisek/roadsign/internal/roadsign"
	"github.com/abhisek/roadsign/internal/selection"
	"github.com/abhisek/roadsign/internal/store"
	"github.com/abhisek/roadsign/internal/vision"
)

// app bundles the components shared by the server and the one-shot
// commands.
type app struct {
	cfg     *config.Config
	store   *store.Store
	catalog *catalog.Catalog
	jobs    *jobs.Runner
	svc     *roadsign.Service
	logger  *slog.Logger
}

// newApp wires the service. When requireLLM is false a missing provider
// configuration is tolerated and generation calls fail instead.
func newApp(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, requireLLM bool) (*app, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := buildProvider(ctx, st, logger)
	if err != nil {
		if requireLLM {
			st.Close()
			return nil, err
		}
		logger.Debug("LLM provider not configured", "error", err)
		provider = llm.NewMockProvider()
	}

	runner := jobs.New(jobs.Config{
		Workers:   cfg.JobWorkers,
		QueueSize: cfg.JobQueue,
		Timeout:   cfg.JobTimeout,
	}, logger)

	svc := roadsign.NewService(roadsign.Deps{
		Catalog:    cat,
		History:    st,
		Generator:  quizgen.New(provider, quizgen.DefaultConfig()),
		Recognizer: vision.New(provider),
		Sampler:    selection.NewDefault(),
		Jobs:       runner,
		Logger:     logger,
	}, roadsign.Options{GenerationTimeout: cfg.GenerationTimeout})

	return &app{cfg: cfg, store: st, catalog: cat, jobs: runner, svc: svc, logger: logger}, nil
}

// Close drains background writes before closing the database.
func (a *app) Close() {
	a.jobs.Close()
	a.store.Close()
}

func buildProvider(ctx context.Context, st *store.Store, logger *slog.Logger) (llm.Provider, error) {
	cfg, err := llm.Resolve()
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return llm.NewProvider(ctx, cfg, st, logger)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// cliApp wires an app for a one-shot command, logging to the default logger.
func cliApp(cmd *cobra.Command, requireLLM bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cmd, cfg, slog.Default(), requireLLM)
}
