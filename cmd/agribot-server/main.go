package main

import (
	"net/http"

	"agribot-wa-relay/internal/config"
	"agribot-wa-relay/internal/logging"
	"agribot-wa-relay/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logging.Base()
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Configure(cfg.LogLevel, nil)
	log := logging.Base()

	s := server.NewServer(cfg)
	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("agribot relay listening")
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
