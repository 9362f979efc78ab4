package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/neonarcade/doodle-server/http_utils"
)

const tokenDuration = 24 * time.Hour

type usernameRequest struct {
	Username string `json:"username" binding:"required,min=2,max=24"`
}

// TokenGenerator issues a token for the username in the request body. No
// account needed; the identity lives as long as the token.
func (s *Server) TokenGenerator(c *gin.Context) {
	var data usernameRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.NewErrorResponse(err.Error()))
		return
	}

	token, payload, err := s.tokenMaker.CreateToken(data.Username, tokenDuration)
	if err != nil {
		log.Error().Err(err).Msg("token creation failed")
		c.JSON(http.StatusInternalServerError, http_utils.NewErrorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, http_utils.NewDataResponse("Auth data", gin.H{
		"id":       payload.ID,
		"username": payload.Username,
		"token":    token,
	}))
}

func (s *Server) GetTokenData(c *gin.Context) {
	payload, ok := GetPayload(c)
	if !ok {
		log.Error().Msg("auth payload missing from request context")
		c.JSON(http.StatusInternalServerError, http_utils.NewErrorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, http_utils.NewDataResponse("success", payload))
}

type checkRoomRequest struct {
	Code string `uri:"code" binding:"required,len=6"`
}

// CheckRoom reports a room's occupancy so a client can validate an invite
// code before connecting.
func (s *Server) CheckRoom(c *gin.Context) {
	var data checkRoomRequest

	if err := c.ShouldBindUri(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.NewErrorResponse(err.Error()))
		return
	}

	info, ok := s.game.GetRoomInfo(data.Code)
	if !ok {
		c.JSON(http.StatusNotFound, http_utils.NewErrorResponse("room not found"))
		return
	}

	c.JSON(http.StatusOK, http_utils.NewDataResponse("room data", info))
}
