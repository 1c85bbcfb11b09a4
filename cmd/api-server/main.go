package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"binger-server/internal/config"
	"binger-server/internal/jobs"
	"binger-server/internal/migrate"
	"binger-server/internal/repos"
	"binger-server/internal/server"
	"binger-server/pkg/cache"
	pkgdb "binger-server/pkg/db"
	"binger-server/pkg/signer"
	"binger-server/pkg/tmdb"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pkgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	if err := migrate.Up(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	if cfg.TMDBAPIKey == "" {
		log.Warn().Msg("TMDB_API_KEY not set; catalog reads will degrade to empty results")
	}
	catalogClient := tmdb.New(cfg.TMDBAPIKey, cfg.TMDBLanguage, cfg.TMDBFallbackLanguage)

	repository := repos.New(pool)
	cursorSigner := signer.NewHMAC(cfg.CursorSecret)
	api := server.New(repository, c, cursorSigner, catalogClient, cfg.CORSAllowedOrigins)

	// Keep the trending-upcoming feed warm for the calendar and the
	// recommendation fallback path.
	jobs.StartTrendingRefresh(ctx, catalogClient, c, cfg.TrendingRefresh)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}
