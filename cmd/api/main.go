package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"damq_travel/internal/adapters/auth"
	server "damq_travel/internal/adapters/http_server"
	"damq_travel/internal/adapters/imagestore"
	"damq_travel/internal/adapters/observability"
	redisad "damq_travel/internal/adapters/redis"
	"damq_travel/internal/app"
	"damq_travel/internal/shared"
	mysqlrepo "damq_travel/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	tours := mysqlrepo.New(db)
	reviews := mysqlrepo.NewReviews(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, responses will not be cached")
	}
	images := imagestore.NewDisk(cfg.UploadsDir, cfg.UploadsURL)

	pub := app.NewPublicService(tours, reviews, cache, cfg.CacheTTL)
	admin := app.NewAdminService(tours, reviews, images, cache)

	sessions := auth.New(cfg.AdminEmail, cfg.AdminPassHash, []byte(cfg.JWTSecret), cfg.SessionTTL)
	sessions.Subscribe(func(st auth.State) {
		log.Info().Bool("logged_in", st.LoggedIn).Str("email", st.Email).Msg("auth state")
	})

	// warm the back-office snapshots; failures are retried on demand
	warmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := admin.ReloadAll(warmCtx); err != nil {
		log.Warn().Err(err).Msg("initial catalog load failed")
	}
	cancel()

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountStatic(cfg.UploadsURL, cfg.UploadsDir)
	srv.MountHandlers(&server.Handlers{Pub: pub})
	srv.MountAdmin(&server.AdminHandlers{Admin: admin, Auth: sessions})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
