package app

import (
	"github.com/valuesearchapp/backend/internal/handlers"
	"github.com/valuesearchapp/backend/internal/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Value      *handlers.ValueHandler
	History    *handlers.HistoryHandler
	Preference *handlers.PreferenceHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		User:       handlers.NewUserHandler(serviceset.User),
		Value:      handlers.NewValueHandler(serviceset.Value),
		History:    handlers.NewHistoryHandler(serviceset.History),
		Preference: handlers.NewPreferenceHandler(serviceset.Preference),
	}
}
