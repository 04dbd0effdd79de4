// Package lexicon persists curated lexicon entries in PostgreSQL. Rows are
// read once at startup and frozen into an in-memory lexicon.
package lexicon

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lexikon-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexikon-backend/internal/domain"
)

const table = "lexicon_entries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lexicon repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type definitionJSON struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// ListAll returns every entry ordered by its authored position.
func (r *Repo) ListAll(ctx context.Context) ([]domain.LexiconEntry, error) {
	query, args, err := psql.
		Select("word", "pronunciation", "part_of_speech", "etymology", "frequency", "definitions").
		From(table).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lexicon_entry", "*")
	}
	defer rows.Close()

	entries := []domain.LexiconEntry{}
	for rows.Next() {
		var (
			e         domain.LexiconEntry
			frequency string
			rawDefs   []byte
		)
		if err := rows.Scan(&e.Word, &e.Pronunciation, &e.PartOfSpeech, &e.Etymology, &frequency, &rawDefs); err != nil {
			return nil, fmt.Errorf("scan lexicon entry: %w", err)
		}
		e.Frequency = domain.Frequency(frequency)

		defs, err := decodeDefinitions(rawDefs)
		if err != nil {
			return nil, fmt.Errorf("lexicon entry %q: %w", e.Word, err)
		}
		e.Definitions = defs
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lexicon_entry", "*")
	}

	return entries, nil
}

// Upsert inserts or updates entries keyed by normalized headword. An entry's
// position is offset plus its slice index, so batches of one import keep the
// authored order. All statements go out in one pgx batch; run it inside
// TxManager.RunInTx to make an import atomic. The returned count is the
// number of entries written before the first failure.
func (r *Repo) Upsert(ctx context.Context, offset int, entries []domain.LexiconEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i, e := range entries {
		defs, err := encodeDefinitions(e.Definitions)
		if err != nil {
			return 0, fmt.Errorf("lexicon entry %q: %w", e.Word, err)
		}

		frequency := e.Frequency
		if frequency == "" {
			frequency = domain.FrequencyCommon
		}

		query, args, err := psql.
			Insert(table).
			Columns("position", "word", "word_normalized", "pronunciation", "part_of_speech", "etymology", "frequency", "definitions").
			Values(offset+i, e.Word, e.Key(), e.Pronunciation, e.PartOfSpeech, e.Etymology, string(frequency), defs).
			Suffix(`ON CONFLICT (word_normalized) DO UPDATE SET
				position = EXCLUDED.position,
				word = EXCLUDED.word,
				pronunciation = EXCLUDED.pronunciation,
				part_of_speech = EXCLUDED.part_of_speech,
				etymology = EXCLUDED.etymology,
				frequency = EXCLUDED.frequency,
				definitions = EXCLUDED.definitions,
				updated_at = now()`).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build upsert query: %w", err)
		}
		batch.Queue(query, args...)
	}

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	for i, e := range entries {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return i, postgres.MapError(err, "lexicon_entry", e.Key())
		}
	}
	if err := results.Close(); err != nil {
		return len(entries), postgres.MapError(err, "lexicon_entry", "*")
	}

	return len(entries), nil
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "lexicon_entry", "*")
	}
	return n, nil
}

func encodeDefinitions(defs []domain.Definition) ([]byte, error) {
	out := make([]definitionJSON, 0, len(defs))
	for _, d := range defs {
		out = append(out, definitionJSON{
			Definition: d.Definition,
			Example:    d.Example,
			Synonyms:   nonNil(d.Synonyms),
			Antonyms:   nonNil(d.Antonyms),
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode definitions: %w", err)
	}
	return b, nil
}

func decodeDefinitions(raw []byte) ([]domain.Definition, error) {
	var in []definitionJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode definitions: %w", err)
	}
	out := make([]domain.Definition, 0, len(in))
	for _, d := range in {
		out = append(out, domain.Definition{
			Definition: d.Definition,
			Example:    d.Example,
			Synonyms:   nonNil(d.Synonyms),
			Antonyms:   nonNil(d.Antonyms),
		})
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
