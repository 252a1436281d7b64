package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "koridor-relay/internal/api/http"
	"koridor-relay/internal/api/ws"
	"koridor-relay/internal/config"
	"koridor-relay/internal/relay"
	"koridor-relay/internal/store"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg := config.Load()
	ctx := context.Background()

	var gateway relay.Store
	if cfg.MongoURI != "" {
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to mongo failed")
		}
		defer ms.Close(ctx)
		gateway = ms
	} else {
		log.Warn().Msg("MONGO_URI not set, rooms persist in memory only")
		gateway = store.NewMemoryStore()
	}

	registry := relay.NewRegistry(gateway, relay.NewCodeGenerator())
	if cfg.RoomTTL > 0 {
		go registry.Janitor(ctx, time.Minute, cfg.RoomTTL)
	}

	hub := ws.NewHub(registry, cfg.AllowedOrigins)
	hub.SetRelay(relay.NewRelay(registry, hub))
	registry.SetSweepNotifier(hub.RoomSwept)

	r := httpapi.NewRouter(gateway, hub, cfg)
	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
