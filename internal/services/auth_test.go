package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/repos"
	"github.com/valuesearchapp/backend/internal/requestdata"
	"github.com/valuesearchapp/backend/internal/types"
)

func newTestAuthService(t *testing.T) (AuthService, *fakeMailer, *gorm.DB) {
	t.Helper()
	db, log := setupTestDB(t)
	mailer := &fakeMailer{}
	svc := NewAuthService(
		db,
		log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		repos.NewAccountRequestRepo(db, log),
		repos.NewPasswordResetRequestRepo(db, log),
		mailer,
		"test-secret",
		time.Hour,
		24*time.Hour,
	)
	return svc, mailer, db
}

func signup(t *testing.T, svc AuthService, mailer *fakeMailer, email string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.RequestAccount(ctx, email))
	require.Len(t, mailer.lastCode, 6)
	require.NoError(t, svc.CreateAccount(ctx, email, mailer.lastCode, "Jane", "Doe", "secret123"))
}

func approve(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	require.NoError(t, db.Model(&types.User{}).
		Where("email = ?", email).
		Update("approved", true).Error)
}

func TestSignupFlow(t *testing.T) {
	svc, mailer, db := newTestAuthService(t)
	ctx := context.Background()

	signup(t, svc, mailer, "jane@example.com")

	t.Run("new account awaits approval", func(t *testing.T) {
		_, _, err := svc.LoginUser(ctx, "jane@example.com", "secret123")
		assert.ErrorIs(t, err, ErrNotApproved)
	})

	t.Run("verification code is single use", func(t *testing.T) {
		err := svc.CreateAccount(ctx, "jane@example.com", mailer.lastCode, "Jane", "Doe", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("duplicate email is rejected at request time", func(t *testing.T) {
		err := svc.RequestAccount(ctx, "jane@example.com")
		assert.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("login succeeds after approval", func(t *testing.T) {
		approve(t, db, "jane@example.com")
		access, refresh, err := svc.LoginUser(ctx, "jane@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.LoginUser(ctx, "jane@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		_, _, err := svc.LoginUser(ctx, "  JANE@Example.COM ", "secret123")
		assert.NoError(t, err)
	})
}

func TestCreateAccountValidation(t *testing.T) {
	svc, mailer, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestAccount(ctx, "a@b.co"))

	t.Run("wrong code", func(t *testing.T) {
		err := svc.CreateAccount(ctx, "a@b.co", "000000", "Jane", "Doe", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})
	t.Run("blank first name", func(t *testing.T) {
		err := svc.CreateAccount(ctx, "a@b.co", mailer.lastCode, "  ", "Doe", "secret123")
		assert.Error(t, err)
	})
	t.Run("short password", func(t *testing.T) {
		err := svc.CreateAccount(ctx, "a@b.co", mailer.lastCode, "Jane", "Doe", "abc")
		assert.Error(t, err)
	})
	t.Run("invalid email at request time", func(t *testing.T) {
		assert.Error(t, svc.RequestAccount(ctx, "not-an-email"))
	})
}

func TestTokenLifecycle(t *testing.T) {
	svc, mailer, db := newTestAuthService(t)
	ctx := context.Background()

	signup(t, svc, mailer, "jane@example.com")
	approve(t, db, "jane@example.com")
	access, refresh, err := svc.LoginUser(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)

	t.Run("access token resolves request identity", func(t *testing.T) {
		authed, err := svc.SetContextFromToken(ctx, access)
		require.NoError(t, err)
		rd := requestdata.GetRequestData(authed)
		require.NotNil(t, rd)
		assert.Equal(t, access, rd.TokenString)
		assert.Equal(t, refresh, rd.RefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.SetContextFromToken(ctx, "not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("refresh rotates both tokens", func(t *testing.T) {
		authed, err := svc.SetContextFromToken(ctx, access)
		require.NoError(t, err)
		newAccess, newRefresh, err := svc.RefreshUser(authed)
		require.NoError(t, err)
		assert.NotEqual(t, refresh, newRefresh)

		// The consumed refresh token is gone.
		_, _, err = svc.RefreshUser(authed)
		assert.ErrorIs(t, err, ErrUnauthorized)

		access, refresh = newAccess, newRefresh
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		authed, err := svc.SetContextFromToken(ctx, access)
		require.NoError(t, err)
		require.NoError(t, svc.LogoutUser(authed))

		_, err = svc.SetContextFromToken(ctx, access)
		assert.Error(t, err)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mailer, db := newTestAuthService(t)
	ctx := context.Background()

	t.Run("unknown email is reported", func(t *testing.T) {
		err := svc.RequestPasswordReset(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	signup(t, svc, mailer, "jane@example.com")
	approve(t, db, "jane@example.com")

	require.NoError(t, svc.RequestPasswordReset(ctx, "jane@example.com"))
	resetCode := mailer.lastCode

	t.Run("wrong code is rejected", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "jane@example.com", "999999", "newpassword")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("reset swaps the password", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(ctx, "jane@example.com", resetCode, "newpassword"))

		_, _, err := svc.LoginUser(ctx, "jane@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.LoginUser(ctx, "jane@example.com", "newpassword")
		assert.NoError(t, err)
	})

	t.Run("reset code is single use", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "jane@example.com", resetCode, "anotherpass")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})
}
