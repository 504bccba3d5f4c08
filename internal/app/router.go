package app

import (
	"github.com/gin-gonic/gin"

	"github.com/valuesearchapp/backend/internal/server"
)

func wireRouter(handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       handlerset.Auth,
		AuthMiddleware:    middlewareset.Auth,
		UserHandler:       handlerset.User,
		ValueHandler:      handlerset.Value,
		HistoryHandler:    handlerset.History,
		PreferenceHandler: handlerset.Preference,
	})
}
