package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/neonarcade/doodle-server/game"
	"github.com/neonarcade/doodle-server/token"
	"github.com/neonarcade/doodle-server/util"
	"github.com/neonarcade/doodle-server/ws"
)

// Server is the HTTP surface: auth endpoints, room lookups and the
// websocket upgrade.
type Server struct {
	config     *util.Config
	tokenMaker token.Maker
	wsManager  *ws.Manager
	game       *game.Coordinator
	router     *gin.Engine
}

func NewServer(config *util.Config, tokenMaker token.Maker, wsManager *ws.Manager, coordinator *game.Coordinator) *Server {
	router := gin.Default()

	server := &Server{
		config:     config,
		tokenMaker: tokenMaker,
		wsManager:  wsManager,
		game:       coordinator,
		router:     router,
	}

	router.POST("/auth/username", server.TokenGenerator)
	router.GET("/auth/me", server.AuthMiddleware, server.GetTokenData)
	router.GET("/rooms/:code", server.CheckRoom)
	router.Any("/ws", server.wsManager.ServeWS)

	return server
}

func (s *Server) Start() error {
	handler := cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(s.router)

	addr := fmt.Sprintf(":%v", s.config.Port)
	log.Info().Str("addr", addr).Msg("server listening")

	return http.ListenAndServe(addr, handler)
}
