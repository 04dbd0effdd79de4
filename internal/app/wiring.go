package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexikon-backend/internal/adapter/postgres"
	pglexicon "github.com/heartmarshall/lexikon-backend/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/lexikon-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/lexikon-backend/internal/adapter/provider/mymemory"
	"github.com/heartmarshall/lexikon-backend/internal/config"
	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/lexicon"
	"github.com/heartmarshall/lexikon-backend/internal/provider"
	"github.com/heartmarshall/lexikon-backend/internal/service/dictionary"
	"github.com/heartmarshall/lexikon-backend/internal/service/translation"
)

// Deps is the wired dependency graph shared by the server and the CLI.
type Deps struct {
	Lexicon     *lexicon.Lexicon
	Dictionary  *dictionary.Service
	Translation *translation.Service
	// Pool is nil unless the lexicon is loaded from PostgreSQL.
	Pool *pgxpool.Pool
}

// Close releases resources held by the dependencies.
func (d *Deps) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
}

// Build loads the lexicon and wires providers and services from cfg.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Deps, error) {
	lex, pool, err := loadLexicon(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	dictProvider := freedict.NewProvider(cfg.Providers.FreeDict, logger)
	transProvider := mymemory.NewProvider(cfg.Providers.MyMemory, logger)

	dictSvc := dictionary.NewService(logger, lex, dictProvider, transProvider, dictionary.Config{
		CallTimeout: cfg.Resolver.CallTimeout,
		Pair: provider.LangPair{
			Source: cfg.Providers.MyMemory.SourceLang,
			Target: cfg.Providers.MyMemory.TargetLang,
		},
	})
	transSvc := translation.NewService(logger, transProvider, cfg.Providers.MyMemory.SupportedLangs, cfg.Resolver.CallTimeout)

	return &Deps{
		Lexicon:     lex,
		Dictionary:  dictSvc,
		Translation: transSvc,
		Pool:        pool,
	}, nil
}

func loadLexicon(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*lexicon.Lexicon, *pgxpool.Pool, error) {
	var (
		lex  *lexicon.Lexicon
		pool *pgxpool.Pool
		err  error
	)

	switch cfg.Lexicon.Source {
	case config.LexiconSourceFile:
		lex, err = lexicon.LoadFile(cfg.Lexicon.Path)
	case config.LexiconSourcePostgres:
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		var entries []domain.LexiconEntry
		repo := pglexicon.New(pool)
		err = postgres.NewTxManager(pool).RunReadOnly(ctx, func(ctx context.Context) error {
			var listErr error
			entries, listErr = repo.ListAll(ctx)
			return listErr
		})
		if err == nil {
			lex, err = lexicon.New(entries)
		}
	default:
		lex, err = lexicon.LoadEmbedded()
	}
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, nil, fmt.Errorf("load lexicon (%s): %w", cfg.Lexicon.Source, err)
	}

	logger.Info("lexicon loaded",
		slog.String("source", cfg.Lexicon.Source),
		slog.Int("entries", lex.Len()),
	)
	return lex, pool, nil
}
