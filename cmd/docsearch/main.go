package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"docsearch/internal/corpus"
	"docsearch/internal/index"
	"docsearch/internal/search"
	"docsearch/internal/vocab"
	"docsearch/pkg/config"
	pkgerrors "docsearch/pkg/errors"
	"docsearch/pkg/logger"
	"docsearch/pkg/metrics"
	"docsearch/pkg/postgres"
	pkgredis "docsearch/pkg/redis"
	"docsearch/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	corpusPath := flag.String("corpus", "", "corpus file, one document per line (overrides config)")
	queriesPath := flag.String("queries", "", "query file, one query per line")
	workers := flag.Int("workers", 0, "worker count (0 = number of CPUs, overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(pkgerrors.ExitInvalidInput)
	}
	if *corpusPath != "" {
		cfg.Corpus.Source = config.SourceFile
		cfg.Corpus.Path = *corpusPath
	}
	if *workers > 0 {
		cfg.Search.Workers = *workers
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if *queriesPath == "" {
		fmt.Fprintln(os.Stderr, "usage: docsearch -queries <file> [-corpus <file>] [-config <file>]")
		os.Exit(pkgerrors.ExitInvalidInput)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *queriesPath); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(pkgerrors.ExitCode(err))
	}
}

func run(ctx context.Context, cfg *config.Config, queriesPath string) error {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			slog.Info("metrics endpoint listening", "addr", addr)
			if err := http.ListenAndServe(addr, m.Handler()); err != nil {
				slog.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	c, err := loadCorpus(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	if c.Len() == 0 {
		return pkgerrors.New(pkgerrors.ErrEmptyCorpus, "no documents to index")
	}
	slog.Info("corpus loaded", "source", cfg.Corpus.Source, "documents", c.Len())

	queries, err := search.LoadQueries(queriesPath)
	if err != nil {
		return fmt.Errorf("loading queries: %w", err)
	}
	if len(queries) == 0 {
		return pkgerrors.New(pkgerrors.ErrEmptyQuerySet, "no queries to process")
	}

	v := vocab.Build(c)
	builderOpts := []index.Option{index.WithWorkers(cfg.Search.Workers)}
	if m != nil {
		builderOpts = append(builderOpts, index.WithMetrics(m))
	}
	idx, err := index.NewBuilder(builderOpts...).Build(ctx, c, v)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	engineOpts := []search.Option{
		search.WithWorkers(cfg.Search.Workers),
		search.WithQueryTimeout(cfg.Search.QueryTimeout),
	}
	if m != nil {
		engineOpts = append(engineOpts, search.WithMetrics(m))
	}
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, query caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			engineOpts = append(engineOpts, search.WithCache(search.NewCache(redisClient, cfg.Redis, m)))
			slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	engine := search.NewEngine(idx, c, v, engineOpts...)
	defer engine.Close()

	return engine.RunAll(ctx, queries, os.Stdout)
}

func loadCorpus(ctx context.Context, cfg *config.Config) (*corpus.Corpus, error) {
	switch cfg.Corpus.Source {
	case config.SourcePostgres:
		var client *postgres.Client
		err := resilience.Retry(ctx, "postgres-connect", resilience.RetryConfig{}, func() error {
			var connErr error
			client, connErr = postgres.New(cfg.Postgres)
			return connErr
		})
		if err != nil {
			return nil, err
		}
		defer client.Close()
		return corpus.LoadPostgres(ctx, client, cfg.Corpus)
	default:
		return corpus.LoadFile(cfg.Corpus.Path)
	}
}
