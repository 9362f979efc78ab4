package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neonarcade/doodle-server/http_utils"
)

type contextkey string

const authContextKey contextkey = "auth_payload"

func (s *Server) AuthMiddleware(c *gin.Context) {
	header := c.Request.Header.Get("authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, http_utils.NewErrorResponse("unauthorized"))
		c.Abort()
		return
	}

	fields := strings.Fields(header)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "bearer") {
		c.JSON(http.StatusUnauthorized, http_utils.NewErrorResponse("unauthorized"))
		c.Abort()
		return
	}

	payload, err := s.tokenMaker.VerifyToken(fields[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, http_utils.NewErrorResponse("invalid bearer token"))
		c.Abort()
		return
	}

	c.Set(string(authContextKey), payload)

	c.Next()
}
