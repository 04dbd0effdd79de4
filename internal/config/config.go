package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`
	Providers ProvidersConfig `yaml:"providers"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is only required when the lexicon is loaded from PostgreSQL.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Lexicon source kinds.
const (
	LexiconSourceEmbedded = "embedded"
	LexiconSourceFile     = "file"
	LexiconSourcePostgres = "postgres"
)

// LexiconConfig selects where the curated local lexicon is loaded from.
type LexiconConfig struct {
	Source   string `yaml:"source"   env:"LEXICON_SOURCE"   env-default:"embedded"`
	Path     string `yaml:"path"     env:"LEXICON_PATH"`
	Language string `yaml:"language" env:"LEXICON_LANGUAGE" env-default:"de"`
}

// ProvidersConfig holds settings for the external lookup services.
type ProvidersConfig struct {
	FreeDict FreeDictConfig `yaml:"freedict"`
	MyMemory MyMemoryConfig `yaml:"mymemory"`
}

// FreeDictConfig configures the definition service client.
type FreeDictConfig struct {
	BaseURL string        `yaml:"base_url" env:"FREEDICT_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/de"`
	Timeout time.Duration `yaml:"timeout"  env:"FREEDICT_TIMEOUT"  env-default:"5s"`
}

// MyMemoryConfig configures the translation service client.
type MyMemoryConfig struct {
	BaseURL           string        `yaml:"base_url"            env:"MYMEMORY_BASE_URL"            env-default:"https://api.mymemory.translated.net"`
	Timeout           time.Duration `yaml:"timeout"             env:"MYMEMORY_TIMEOUT"             env-default:"5s"`
	SourceLang        string        `yaml:"source_lang"         env:"MYMEMORY_SOURCE_LANG"         env-default:"de"`
	TargetLang        string        `yaml:"target_lang"         env:"MYMEMORY_TARGET_LANG"         env-default:"en"`
	Email             string        `yaml:"email"               env:"MYMEMORY_EMAIL"`
	SupportedLangsRaw string        `yaml:"supported_languages" env:"MYMEMORY_SUPPORTED_LANGUAGES" env-default:"de,en,fr,es,it,pt,ru,zh,ja,ar"`

	// SupportedLangs is parsed from SupportedLangsRaw during validation.
	SupportedLangs []string `yaml:"-" env:"-"`
}

// ResolverConfig holds dictionary resolution settings.
type ResolverConfig struct {
	CallTimeout time.Duration `yaml:"call_timeout" env:"RESOLVER_CALL_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP rate limiting settings.
// RequestsPerMinute of 0 disables rate limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"120"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"   env-default:"20"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}
