package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/lexikon-backend/internal/config"
	"github.com/heartmarshall/lexikon-backend/internal/transport/middleware"
	"github.com/heartmarshall/lexikon-backend/internal/transport/rest"
)

// NewRouter registers all HTTP routes and wraps the API in the middleware
// chain. The returned stop func releases the rate limiter.
func NewRouter(cfg *config.Config, deps *Deps, logger *slog.Logger) (http.Handler, func()) {
	dictHandler := rest.NewDictionaryHandler(deps.Dictionary, cfg.Lexicon.Language, logger)
	transHandler := rest.NewTranslationHandler(deps.Translation, logger)

	var healthHandler *rest.HealthHandler
	if deps.Pool != nil {
		healthHandler = rest.NewHealthHandler(deps.Lexicon, deps.Pool, BuildVersion())
	} else {
		healthHandler = rest.NewHealthHandler(deps.Lexicon, nil, BuildVersion())
	}

	api := http.NewServeMux()
	api.HandleFunc("GET /api/dictionary", dictHandler.Lookup)
	api.HandleFunc("GET /api/dictionary/suggestions", dictHandler.Suggestions)
	api.HandleFunc("GET /api/translate", transHandler.Translate)
	api.HandleFunc("GET /api/translate/languages", transHandler.Languages)

	var limit middleware.Middleware
	stop := func() {}
	if cfg.RateLimit.RequestsPerMinute > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		limit = rl.Limit()
		stop = rl.Stop
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limit,
	)

	mux := http.NewServeMux()
	mux.Handle("/api/", chain(api))
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux, stop
}
