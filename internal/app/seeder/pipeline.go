package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/lexicon"
)

const (
	PhaseMigrate = "migrate"
	PhaseLexicon = "lexicon"
)

// allPhases defines the canonical execution order.
var allPhases = []string{PhaseMigrate, PhaseLexicon}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates migrations and the lexicon import.
type Pipeline struct {
	log     *slog.Logger
	repo    LexiconRepo
	tx      TxManager
	migrate MigrateFunc
	cfg     Config
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo LexiconRepo, tx TxManager, migrate MigrateFunc, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		tx:      tx,
		migrate: migrate,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run. A failed migration stops the pipeline since the import needs the schema.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseMigrate:
			result = p.runMigrate(ctx)
		case PhaseLexicon:
			result = p.runLexicon(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			if phase == PhaseMigrate {
				return fmt.Errorf("migrate: %w", result.Err)
			}
			continue
		}

		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}

	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		if !slices.Contains(allPhases, ph) {
			return nil, fmt.Errorf("unknown phase %q", ph)
		}
		filter[ph] = true
	}

	var filtered []string
	for _, ph := range allPhases {
		if filter[ph] {
			filtered = append(filtered, ph)
		}
	}
	return filtered, nil
}

func (p *Pipeline) runMigrate(ctx context.Context) PhaseResult {
	if p.cfg.DryRun {
		return PhaseResult{Skipped: 1}
	}

	applied, err := p.migrate(ctx)
	if err != nil {
		return PhaseResult{Err: err}
	}
	for _, v := range applied {
		p.log.Info("migration applied", slog.Int64("version", v))
	}
	return PhaseResult{Inserted: len(applied)}
}

// runLexicon validates the source file through lexicon.New and upserts all
// entries in one transaction.
func (p *Pipeline) runLexicon(ctx context.Context) PhaseResult {
	entries, err := p.readEntries()
	if err != nil {
		return PhaseResult{Err: err}
	}

	lex, err := lexicon.New(entries)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("validate lexicon: %w", err)}
	}
	entries = lex.Entries()
	p.log.Info("lexicon parsed", slog.Int("entries", len(entries)))

	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(entries)}
	}

	var inserted int
	err = p.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := batchProcess(entries, p.cfg.BatchSize, func(offset int, batch []domain.LexiconEntry) (int, error) {
			return p.repo.Upsert(txCtx, offset, batch)
		})
		inserted = n
		return err
	})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("upsert lexicon: %w", err)}
	}

	if total, err := p.repo.Count(ctx); err == nil {
		p.log.Info("lexicon stored", slog.Int("total", total))
	}

	return PhaseResult{Inserted: inserted}
}

func (p *Pipeline) readEntries() ([]domain.LexiconEntry, error) {
	if p.cfg.LexiconPath == "" {
		return lexicon.EmbeddedEntries()
	}
	return lexicon.ReadFile(p.cfg.LexiconPath)
}

// batchProcess splits items into chunks of batchSize and calls fn with each
// chunk and its offset. Returns the total count from all fn calls.
func batchProcess[T any](items []T, batchSize int, fn func(offset int, batch []T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(i, items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
