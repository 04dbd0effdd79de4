package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockLexicon struct {
	LookupFunc    func(normalized string) []domain.LexiconEntry
	HeadwordsFunc func() []string
}

func (m *mockLexicon) Lookup(normalized string) []domain.LexiconEntry {
	if m.LookupFunc == nil {
		return []domain.LexiconEntry{}
	}
	return m.LookupFunc(normalized)
}

func (m *mockLexicon) Headwords() []string {
	return m.HeadwordsFunc()
}

type mockDictionaryProvider struct {
	FetchEntryFunc func(ctx context.Context, word string) (*provider.DefinitionResult, error)
	calls          atomic.Int32
}

func (m *mockDictionaryProvider) FetchEntry(ctx context.Context, word string) (*provider.DefinitionResult, error) {
	m.calls.Add(1)
	return m.FetchEntryFunc(ctx, word)
}

type mockTranslationProvider struct {
	TranslateFunc func(ctx context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error)
	calls         atomic.Int32
}

func (m *mockTranslationProvider) Translate(ctx context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error) {
	m.calls.Add(1)
	return m.TranslateFunc(ctx, text, pair)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(lex *mockLexicon, dict *mockDictionaryProvider, trans *mockTranslationProvider) *Service {
	if lex == nil {
		lex = &mockLexicon{}
	}
	return NewService(slog.Default(), lex, dict, trans, Config{CallTimeout: time.Second})
}

func failingDict(t *testing.T) *mockDictionaryProvider {
	return &mockDictionaryProvider{
		FetchEntryFunc: func(context.Context, string) (*provider.DefinitionResult, error) {
			t.Error("definition service must not be called")
			return nil, nil
		},
	}
}

func failingTrans(t *testing.T) *mockTranslationProvider {
	return &mockTranslationProvider{
		TranslateFunc: func(context.Context, string, provider.LangPair) (*provider.TranslationResult, error) {
			t.Error("translation service must not be called")
			return nil, nil
		},
	}
}

func hausEntry() domain.LexiconEntry {
	return domain.LexiconEntry{
		Word:          "Haus",
		Pronunciation: "/haʊs/",
		PartOfSpeech:  "Substantiv (n)",
		Frequency:     domain.FrequencyCommon,
		Definitions:   []domain.Definition{{Definition: "Gebäude"}},
	}
}

func definitionResult(word string) *provider.DefinitionResult {
	return &provider.DefinitionResult{
		Word:         word,
		PartOfSpeech: "noun",
		Definitions:  []provider.DefinitionSense{{Definition: "table"}},
	}
}

// ---------------------------------------------------------------------------
// Resolve tests
// ---------------------------------------------------------------------------

func TestService_Resolve_LocalHit(t *testing.T) {
	t.Parallel()

	var gotKey string
	lex := &mockLexicon{LookupFunc: func(normalized string) []domain.LexiconEntry {
		gotKey = normalized
		return []domain.LexiconEntry{hausEntry()}
	}}

	svc := newTestService(lex, failingDict(t), failingTrans(t))
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "  Haus ", AllowExternal: true})

	require.NoError(t, err)
	assert.Equal(t, "haus", gotKey)
	require.Len(t, entries, 1)
	assert.Equal(t, "Haus", entries[0].Word)
	assert.Equal(t, domain.SourceLocal, entries[0].Source)
	assert.Equal(t, domain.FrequencyCommon, entries[0].Frequency)
}

func TestService_Resolve_LocalReturnsAllMatchesInOrder(t *testing.T) {
	t.Parallel()

	second := hausEntry()
	second.Word = "Rathaus"
	lex := &mockLexicon{LookupFunc: func(string) []domain.LexiconEntry {
		return []domain.LexiconEntry{hausEntry(), second}
	}}

	svc := newTestService(lex, failingDict(t), failingTrans(t))
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "haus"})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Haus", entries[0].Word)
	assert.Equal(t, "Rathaus", entries[1].Word)
	for _, e := range entries {
		assert.Equal(t, domain.SourceLocal, e.Source)
	}
}

func TestService_Resolve_EmptyTerm(t *testing.T) {
	t.Parallel()

	for _, term := range []string{"", "   ", "\t\n"} {
		lookups := 0
		lex := &mockLexicon{LookupFunc: func(string) []domain.LexiconEntry {
			lookups++
			return nil
		}}

		svc := newTestService(lex, failingDict(t), failingTrans(t))
		_, err := svc.Resolve(context.Background(), ResolveInput{Term: term, AllowExternal: true})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		var ve *domain.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Zero(t, lookups)
	}
}

func TestService_Resolve_NoLocalMatch_ExternalDisabled(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, failingDict(t), failingTrans(t))
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "xyzzy"})

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Resolve_DefinitionServiceHit(t *testing.T) {
	t.Parallel()

	var gotWord string
	dict := &mockDictionaryProvider{FetchEntryFunc: func(ctx context.Context, word string) (*provider.DefinitionResult, error) {
		gotWord = word
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline, "external probe must be bounded")
		return definitionResult("Tisch"), nil
	}}

	svc := newTestService(nil, dict, failingTrans(t))
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "TISCH", AllowExternal: true})

	require.NoError(t, err)
	assert.Equal(t, "tisch", gotWord)
	require.Len(t, entries, 1)
	assert.Equal(t, "Tisch", entries[0].Word)
	assert.Equal(t, domain.SourceDefinitionService, entries[0].Source)
	assert.Equal(t, domain.FrequencyRare, entries[0].Frequency)
}

func TestService_Resolve_FallsBackToTranslation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *provider.DefinitionResult
		err    error
	}{
		{"not found", nil, fmt.Errorf("freedict: %w", domain.ErrNotFound)},
		{"service error", nil, fmt.Errorf("freedict: %w", domain.ErrServiceUnavailable)},
		{"empty result", &provider.DefinitionResult{Word: "fernweh"}, nil},
		{"only blank definitions", &provider.DefinitionResult{Word: "fernweh", Definitions: []provider.DefinitionSense{{Definition: " "}}}, nil},
		{"nil result", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dict := &mockDictionaryProvider{FetchEntryFunc: func(context.Context, string) (*provider.DefinitionResult, error) {
				return tt.result, tt.err
			}}
			var gotText string
			var gotPair provider.LangPair
			trans := &mockTranslationProvider{TranslateFunc: func(_ context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error) {
				gotText = text
				gotPair = pair
				return &provider.TranslationResult{Text: "wanderlust"}, nil
			}}

			svc := newTestService(nil, dict, trans)
			entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "Fernweh", AllowExternal: true})

			require.NoError(t, err)
			assert.Equal(t, "fernweh", gotText)
			assert.Equal(t, provider.LangPair{Source: "de", Target: "en"}, gotPair)
			require.Len(t, entries, 1)
			assert.Equal(t, domain.SourceTranslationService, entries[0].Source)
			assert.Equal(t, "Fernweh", entries[0].Word)
			require.NotNil(t, entries[0].Translation)
			assert.Equal(t, "wanderlust", *entries[0].Translation)
			assert.Len(t, entries[0].Definitions, 2)
			assert.Equal(t, int32(1), dict.calls.Load())
		})
	}
}

func TestService_Resolve_DefinitionServiceWithoutWord(t *testing.T) {
	t.Parallel()

	dict := &mockDictionaryProvider{FetchEntryFunc: func(context.Context, string) (*provider.DefinitionResult, error) {
		return definitionResult(""), nil
	}}

	svc := newTestService(nil, dict, failingTrans(t))
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "  Tisch ", AllowExternal: true})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Tisch", entries[0].Word)
	assert.Equal(t, domain.SourceDefinitionService, entries[0].Source)
}

func TestService_Resolve_TranslationKeepsSurfaceForm(t *testing.T) {
	t.Parallel()

	dict := &mockDictionaryProvider{FetchEntryFunc: func(context.Context, string) (*provider.DefinitionResult, error) {
		return nil, fmt.Errorf("freedict: %w", domain.ErrNotFound)
	}}
	var gotText string
	trans := &mockTranslationProvider{TranslateFunc: func(_ context.Context, text string, _ provider.LangPair) (*provider.TranslationResult, error) {
		gotText = text
		return &provider.TranslationResult{Text: "cat"}, nil
	}}

	svc := newTestService(nil, dict, trans)
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: " Katze  ", AllowExternal: true})

	require.NoError(t, err)
	assert.Equal(t, "katze", gotText)
	require.Len(t, entries, 1)
	assert.Equal(t, "Katze", entries[0].Word)
	require.Len(t, entries[0].Definitions, 2)
	assert.Equal(t, "Deutsche Bedeutung: Katze", entries[0].Definitions[0].Definition)
	assert.Equal(t, `Beispiel: "Katze" wird in deutschen Sätzen verwendet.`, entries[0].Definitions[0].Example)
}

func TestService_Resolve_AllSourcesFail(t *testing.T) {
	t.Parallel()

	dict := &mockDictionaryProvider{FetchEntryFunc: func(context.Context, string) (*provider.DefinitionResult, error) {
		return nil, fmt.Errorf("freedict: %w", domain.ErrNotFound)
	}}
	trans := &mockTranslationProvider{TranslateFunc: func(context.Context, string, provider.LangPair) (*provider.TranslationResult, error) {
		return nil, fmt.Errorf("mymemory: %w", domain.ErrServiceUnavailable)
	}}

	svc := newTestService(nil, dict, trans)
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "qwxz", AllowExternal: true})

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Equal(t, int32(1), dict.calls.Load())
	assert.Equal(t, int32(1), trans.calls.Load())
}

func TestService_Resolve_PerCallTimeout(t *testing.T) {
	t.Parallel()

	dict := &mockDictionaryProvider{FetchEntryFunc: func(ctx context.Context, _ string) (*provider.DefinitionResult, error) {
		<-ctx.Done()
		return nil, fmt.Errorf("freedict: %w: %w", domain.ErrServiceUnavailable, ctx.Err())
	}}
	trans := &mockTranslationProvider{TranslateFunc: func(ctx context.Context, _ string, _ provider.LangPair) (*provider.TranslationResult, error) {
		require.NoError(t, ctx.Err(), "translation probe gets its own budget")
		return &provider.TranslationResult{Text: "slow"}, nil
	}}

	svc := NewService(slog.Default(), &mockLexicon{}, dict, trans, Config{CallTimeout: 20 * time.Millisecond})
	start := time.Now()
	entries, err := svc.Resolve(context.Background(), ResolveInput{Term: "langsam", AllowExternal: true})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SourceTranslationService, entries[0].Source)
}

func TestService_Resolve_CallerCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	dict := &mockDictionaryProvider{FetchEntryFunc: func(ctx context.Context, _ string) (*provider.DefinitionResult, error) {
		cancel()
		<-ctx.Done()
		return nil, fmt.Errorf("freedict: %w: %w", domain.ErrServiceUnavailable, ctx.Err())
	}}

	svc := newTestService(nil, dict, failingTrans(t))
	entries, err := svc.Resolve(ctx, ResolveInput{Term: "abbruch", AllowExternal: true})

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Resolve_Idempotent(t *testing.T) {
	t.Parallel()

	lex := &mockLexicon{LookupFunc: func(string) []domain.LexiconEntry {
		return []domain.LexiconEntry{hausEntry()}
	}}
	svc := newTestService(lex, failingDict(t), failingTrans(t))

	first, err := svc.Resolve(context.Background(), ResolveInput{Term: "Haus"})
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), ResolveInput{Term: "HAUS"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_Suggestions(t *testing.T) {
	t.Parallel()

	lex := &mockLexicon{HeadwordsFunc: func() []string { return []string{"Hallo", "Haus"} }}
	svc := newTestService(lex, nil, nil)

	assert.Equal(t, []string{"Hallo", "Haus"}, svc.Suggestions())
}

func TestNewService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockLexicon{}, nil, nil, Config{})

	assert.Equal(t, DefaultCallTimeout, svc.callTimeout)
	assert.Equal(t, provider.LangPair{Source: "de", Target: "en"}, svc.pair)
}
