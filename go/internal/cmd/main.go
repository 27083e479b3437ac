package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/draftops/warroom/go/internal/dbconfig"
	"github.com/draftops/warroom/go/internal/events"
	"github.com/draftops/warroom/go/internal/gateway"
	"github.com/draftops/warroom/go/internal/scoring"
	"github.com/draftops/warroom/go/internal/session"
	"github.com/draftops/warroom/go/internal/session/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := loadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules := scoring.DefaultRules()
	if cfg.ScoringRulesPath != "" {
		var err error
		rules, err = scoring.LoadRules(cfg.ScoringRulesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ScoringRulesPath).Msg("failed to load scoring rules")
		}
		log.Info().Str("path", cfg.ScoringRulesPath).Msg("loaded scoring rules")
	}

	var sink gateway.EventSink
	if cfg.NATSURL != "" {
		pub, err := events.NewPublisher(cfg.NATSURL)
		if err != nil {
			log.Fatal().Err(err).Str("nats_url", cfg.NATSURL).Msg("failed to connect event publisher")
		}
		defer pub.Close()
		sink = pub
		log.Info().Str("nats_url", cfg.NATSURL).Msg("event publishing enabled")
	}

	var pickLog gateway.PickLog
	if cfg.PersistPicks {
		dbCfg := dbconfig.NewConfigFromEnv()
		pool, err := pgxpool.New(ctx, dbCfg.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		repo := repository.NewPickRepository(pool)
		if err := repo.Setup(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to set up pick log")
		}
		pickLog = repo
		log.Info().Str("database", dbCfg.Database).Msg("pick-log persistence enabled")
	}

	clock := clockwork.NewRealClock()
	sess := session.New(clock)
	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	service := gateway.NewService(sess, rules, cm, sink, pickLog, clock)

	timer := gateway.NewTimerLoop(service, clock)
	go timer.Run(ctx)

	server := setupServer(cfg.Port, service)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("warroom listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
