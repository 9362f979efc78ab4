package main

import (
	"github.com/rs/zerolog/log"

	"github.com/neonarcade/doodle-server/api"
	"github.com/neonarcade/doodle-server/game"
	"github.com/neonarcade/doodle-server/token"
	"github.com/neonarcade/doodle-server/util"
	"github.com/neonarcade/doodle-server/words"
	"github.com/neonarcade/doodle-server/ws"
)

func main() {
	util.InitValidator()

	config, err := util.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	util.SetupLogger(config.LogLevel)

	tokenMaker, err := token.NewPasetoMaker(config.TokenSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("token maker setup failed")
	}

	manager := ws.NewManager(tokenMaker, config.CORSOrigins)
	coordinator := game.NewCoordinator(manager, words.Provider{}, game.NewTimerFactory())
	manager.BindCoordinator(coordinator)

	server := api.NewServer(config, tokenMaker, manager, coordinator)

	log.Fatal().Err(server.Start()).Msg("server stopped")
}
