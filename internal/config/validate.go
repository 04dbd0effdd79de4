package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Lexicon.validate(c.Database); err != nil {
		return fmt.Errorf("lexicon: %w", err)
	}

	if c.Providers.FreeDict.BaseURL == "" {
		return fmt.Errorf("providers.freedict.base_url is required")
	}
	if c.Providers.FreeDict.Timeout <= 0 {
		return fmt.Errorf("providers.freedict.timeout must be > 0 (got %v)", c.Providers.FreeDict.Timeout)
	}

	if err := c.Providers.MyMemory.validate(); err != nil {
		return fmt.Errorf("providers.mymemory: %w", err)
	}

	if c.Resolver.CallTimeout <= 0 {
		return fmt.Errorf("resolver.call_timeout must be > 0 (got %v)", c.Resolver.CallTimeout)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (l *LexiconConfig) validate(db DatabaseConfig) error {
	switch l.Source {
	case LexiconSourceEmbedded:
	case LexiconSourceFile:
		if l.Path == "" {
			return fmt.Errorf("path is required for source %q", l.Source)
		}
	case LexiconSourcePostgres:
		if db.DSN == "" {
			return fmt.Errorf("database.dsn is required for source %q", l.Source)
		}
	default:
		return fmt.Errorf("unknown source %q", l.Source)
	}
	return nil
}

func (m *MyMemoryConfig) validate() error {
	if m.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", m.Timeout)
	}
	if m.SourceLang == m.TargetLang {
		return fmt.Errorf("source_lang and target_lang must differ (both %q)", m.SourceLang)
	}

	langs := ParseLanguageList(m.SupportedLangsRaw)
	for _, lang := range []string{m.SourceLang, m.TargetLang} {
		if !slices.Contains(langs, lang) {
			return fmt.Errorf("language %q is not in supported_languages", lang)
		}
	}
	m.SupportedLangs = langs

	return nil
}

// ParseLanguageList parses a comma-separated list of language codes
// (e.g. "de, en,fr") into lower-cased codes, dropping blanks and duplicates.
// An empty string returns a nil slice.
func ParseLanguageList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	langs := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || slices.Contains(langs, p) {
			continue
		}
		langs = append(langs, p)
	}

	return langs
}
