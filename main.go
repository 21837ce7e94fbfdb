package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/steamguess/go-server/internal/catalog"
	"github.com/steamguess/go-server/internal/game"
	"github.com/steamguess/go-server/internal/httpserver"
	"github.com/steamguess/go-server/internal/rules"
	"github.com/steamguess/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg, err := rules.Load(os.Getenv("RULES_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load comparison rules")
	}
	if err := catalog.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load game catalog")
	}
	log.Info().Int("games", catalog.Size()).Msg("catalog loaded")

	eng, err := game.NewEngine(cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build comparison engine")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/steamguess.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, eng, cfg)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting steamguess server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
