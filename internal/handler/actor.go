package handler

import (
	"backoffice/internal/middleware"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// currentActor maps the request identity onto the service-layer actor.
func currentActor(c *gin.Context) service.Actor {
	ident, _ := middleware.CurrentIdentity(c)
	return service.Actor{
		ID:       ident.UserID,
		Username: ident.Username,
		RoleID:   ident.RoleID,
	}
}
