package rest

import (
	"github.com/gin-gonic/gin"
)

func (that *Server) ping(c *gin.Context) {
	SuccessResponse(c, gin.H{"content": "pong"})
}
