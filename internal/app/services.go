package app

import (
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/services"
)

type Services struct {
	Mailer     services.MailerService
	Auth       services.AuthService
	User       services.UserService
	Value      services.ValueService
	History    services.HistoryService
	Preference services.PreferenceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	mailerService := services.NewMailerService(log, clients.SendGrid)
	authService := services.NewAuthService(
		db,
		log,
		reposet.User,
		reposet.UserToken,
		reposet.AccountReq,
		reposet.PasswordReset,
		mailerService,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(log, reposet.User)
	valueService := services.NewValueService(log, reposet.Assessment, clients.Cache)
	historyService := services.NewHistoryService(log, reposet.History, clients.Cache)
	preferenceService := services.NewPreferenceService(log, reposet.Preference, reposet.Assessment)

	return Services{
		Mailer:     mailerService,
		Auth:       authService,
		User:       userService,
		Value:      valueService,
		History:    historyService,
		Preference: preferenceService,
	}
}
