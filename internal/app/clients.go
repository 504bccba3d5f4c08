package app

import (
	"github.com/valuesearchapp/backend/internal/clients/redis"
	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/platform/sendgrid"
)

type Clients struct {
	SendGrid sendgrid.Client
	Cache    redis.Cache
}

// wireClients initializes the optional external clients. Both are allowed to
// be absent: without SendGrid the signup and reset flows report email as
// unconfigured, and without Redis every read goes to the database.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	var clients Clients

	sg, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("SendGrid unavailable, email sending disabled", "error", err)
	} else {
		clients.SendGrid = sg
	}

	cache, err := redis.NewCache(log)
	if err != nil {
		log.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		clients.Cache = cache
	}

	return clients
}
