package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/normalization"
	"github.com/valuesearchapp/backend/internal/repos"
	"github.com/valuesearchapp/backend/internal/requestdata"
	"github.com/valuesearchapp/backend/internal/types"
)

const minPasswordLength = 6

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RequestAccount(ctx context.Context, email string) error
	CreateAccount(ctx context.Context, email, code, firstName, lastName, password string) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db                *gorm.DB
	log               *logger.Logger
	userRepo          repos.UserRepo
	userTokenRepo     repos.UserTokenRepo
	accountReqRepo    repos.AccountRequestRepo
	passwordResetRepo repos.PasswordResetRequestRepo
	mailer            MailerService
	jwtSecretKey      string
	accessTTL         time.Duration
	refreshTTL        time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	accountReqRepo repos.AccountRequestRepo,
	passwordResetRepo repos.PasswordResetRequestRepo,
	mailer MailerService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:                db,
		log:               serviceLog,
		userRepo:          userRepo,
		userTokenRepo:     userTokenRepo,
		accountReqRepo:    accountReqRepo,
		passwordResetRepo: passwordResetRepo,
		mailer:            mailer,
		jwtSecretKey:      jwtSecretKey,
		accessTTL:         accessTTL,
		refreshTTL:        refreshTTL,
	}
}

// generateCode returns a 6-digit verification code.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; the code
		// is short-lived and emailed, a uuid tail keeps it usable.
		return uuid.New().String()[:6]
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func validEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

func (as *authService) RequestAccount(ctx context.Context, email string) error {
	normalized := normalization.ParseInputString(email)
	if !validEmail(normalized) {
		return fmt.Errorf("valid email is required")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, normalized)
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return ErrEmailInUse
	}

	code := generateCode()
	if err := as.accountReqRepo.Replace(ctx, nil, normalized, code); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return as.mailer.SendVerificationCode(ctx, normalized, code)
}

func (as *authService) CreateAccount(ctx context.Context, email, code, firstName, lastName, password string) error {
	normalized := normalization.ParseInputString(email)
	trimmedCode := strings.TrimSpace(code)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if normalized == "" || trimmedCode == "" || firstName == "" || lastName == "" || password == "" {
		return fmt.Errorf("all fields are required")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := as.accountReqRepo.GetByEmailAndCode(ctx, tx, normalized, trimmedCode)
		if err != nil {
			return fmt.Errorf("failed to check verification code: %w", err)
		}
		if request == nil {
			return ErrInvalidCode
		}

		exists, err := as.userRepo.EmailExists(ctx, tx, normalized)
		if err != nil {
			return fmt.Errorf("failed to check user email: %w", err)
		}
		if exists {
			return ErrEmailInUse
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &types.User{
			ID:        uuid.New(),
			Email:     normalized,
			Password:  string(hashed),
			FirstName: firstName,
			LastName:  lastName,
			Approved:  false,
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return as.accountReqRepo.DeleteByEmail(ctx, tx, normalized)
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	normalized := normalization.ParseInputString(email)
	if normalized == "" || password == "" {
		return "", "", ErrInvalidCredentials
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{normalized})
	if err != nil {
		return "", "", fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(users) == 0 {
		return "", "", ErrInvalidCredentials
	}

	user := users[0]
	if !user.Approved {
		return "", "", ErrNotApproved
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Token rotation on login: any earlier session for this user is
		// invalidated before the new one is issued.
		if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
			return fmt.Errorf("failed to clear previous tokens: %w", err)
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token error: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); err != nil {
			return fmt.Errorf("create user token error: %w", err)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", ErrUnauthorized
	}

	var accessToken string
	var newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if err != nil {
			return fmt.Errorf("error fetching refresh token: %w", err)
		}
		if len(foundTokens) == 0 {
			return ErrUnauthorized
		}
		existingToken := foundTokens[0]
		if existingToken.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); err != nil {
				return fmt.Errorf("refresh token expired, error deleting: %w", err)
			}
			return ErrUnauthorized
		}
		users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
		if err != nil {
			return fmt.Errorf("failed to load user for refresh: %w", err)
		}
		if len(users) == 0 {
			return ErrUnauthorized
		}
		user := users[0]

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("failed to generate new access token: %w", err)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newUserToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); err != nil {
			return fmt.Errorf("failed to create new user token: %w", err)
		}
		return as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID})
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return ErrUnauthorized
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, err := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if err != nil {
			return fmt.Errorf("error finding user token: %w", err)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		return as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{foundTokens[0].ID})
	})
}

func (as *authService) RequestPasswordReset(ctx context.Context, email string) error {
	normalized := normalization.ParseInputString(email)
	if !validEmail(normalized) {
		return fmt.Errorf("valid email is required")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, normalized)
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if !exists {
		return ErrAccountNotFound
	}

	code := generateCode()
	if err := as.passwordResetRepo.Replace(ctx, nil, normalized, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	return as.mailer.SendPasswordResetCode(ctx, normalized, code)
}

func (as *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	normalized := normalization.ParseInputString(email)
	trimmedCode := strings.TrimSpace(code)
	if normalized == "" || trimmedCode == "" || newPassword == "" {
		return fmt.Errorf("email, reset code, and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := as.passwordResetRepo.GetByEmailAndCode(ctx, tx, normalized, trimmedCode)
		if err != nil {
			return fmt.Errorf("failed to check reset code: %w", err)
		}
		if request == nil {
			return ErrInvalidCode
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if err := as.userRepo.UpdatePassword(ctx, tx, normalized, string(hashed)); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		// A password change ends every open session for the account.
		users, err := as.userRepo.GetByEmails(ctx, tx, []string{normalized})
		if err == nil && len(users) > 0 {
			if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{users[0].ID}); err != nil {
				return fmt.Errorf("failed to clear sessions: %w", err)
			}
		}
		return as.passwordResetRepo.DeleteByEmail(ctx, tx, normalized)
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, ErrUnauthorized
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	var refreshToken string
	foundTokens, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if err != nil {
		return ctx, fmt.Errorf("failed to fetch user token: %w", err)
	}
	if len(foundTokens) == 0 {
		// Token signature is valid but the session was revoked.
		return ctx, ErrUnauthorized
	}
	refreshToken = foundTokens[0].RefreshToken

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
