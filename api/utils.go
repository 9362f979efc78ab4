package api

import (
	"github.com/gin-gonic/gin"

	"github.com/neonarcade/doodle-server/token"
)

const ErrorMessage500 = "Something went wrong!"

func GetPayload(ctx *gin.Context) (*token.Payload, bool) {
	v, ok := ctx.Get(string(authContextKey))
	if !ok {
		return nil, false
	}

	payload, ok := v.(*token.Payload)
	return payload, ok
}
