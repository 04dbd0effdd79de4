// Command seeder applies the schema migrations and imports a curated
// lexicon into PostgreSQL. It is run offline, not by the server.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: all)
//	--dry-run        validate the lexicon without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/lexikon-backend/internal/adapter/postgres"
	pglexicon "github.com/heartmarshall/lexikon-backend/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/lexikon-backend/internal/app"
	"github.com/heartmarshall/lexikon-backend/internal/app/seeder"
	"github.com/heartmarshall/lexikon-backend/internal/config"
)

// Compile-time interface assertion.
var _ seeder.LexiconRepo = (*pglexicon.Repo)(nil)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "validate the lexicon without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	if appCfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN is required for seeding")
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	migrate := func(ctx context.Context) ([]int64, error) {
		return postgres.Migrate(ctx, appCfg.Database.DSN)
	}

	pipeline := seeder.NewPipeline(logger, pglexicon.New(pool), postgres.NewTxManager(pool), migrate, *seederCfg)
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
