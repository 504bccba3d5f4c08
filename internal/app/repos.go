package app

import (
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/repos"
)

type Repos struct {
	User          repos.UserRepo
	UserToken     repos.UserTokenRepo
	AccountReq    repos.AccountRequestRepo
	PasswordReset repos.PasswordResetRequestRepo
	Assessment    repos.AssessmentRepo
	History       repos.HistoryRepo
	Preference    repos.PreferenceRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		UserToken:     repos.NewUserTokenRepo(db, log),
		AccountReq:    repos.NewAccountRequestRepo(db, log),
		PasswordReset: repos.NewPasswordResetRequestRepo(db, log),
		Assessment:    repos.NewAssessmentRepo(db, log),
		History:       repos.NewHistoryRepo(db, log),
		Preference:    repos.NewPreferenceRepo(db, log),
	}
}
