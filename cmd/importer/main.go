package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"damq_travel/internal/adapters/observability"
	"damq_travel/internal/app"
	"damq_travel/internal/shared"
	mysqlrepo "damq_travel/internal/storage/mysql"
)

// Imports a JSON export of the old site's document store into MySQL.
func main() {
	path := flag.String("file", "export.json", "path to the legacy JSON export")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("open export failed")
	}
	defer f.Close()

	export, err := app.ParseLegacyExport(f)
	if err != nil {
		log.Fatal().Err(err).Msg("parse export failed")
	}
	jobs := export.Jobs()
	log.Info().Int("jobs", len(jobs)).Int("workers", cfg.Workers).Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	imp := app.NewImportService(mysqlrepo.New(db), mysqlrepo.NewReviews(db))
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	var mu sync.Mutex
	imported, failed := 0, 0

	for i, job := range jobs {
		i, job := i, job

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := imp.Import(ctx, job); err != nil {
				log.Warn().Int("job", i).Err(err).Msg("import failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			imported++
			mu.Unlock()
		}()
	}

	wg.Wait()
	log.Info().Int("imported", imported).Int("failed", failed).Msg("import completed")
}
