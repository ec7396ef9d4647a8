package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

func setupAuthService(t *testing.T) (*gorm.DB, AuthService) {
	t.Helper()

	db := openTestDB(t, "auth_service", &models.Profile{})

	svc := NewAuthService(
		repository.NewProfileRepository(db),
		AuthConfig{
			Secret:        "access-secret",
			RefreshSecret: "refresh-secret",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    7 * 24 * time.Hour,
		},
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)

	return db, svc
}

func seedAccount(t *testing.T, db *gorm.DB, email, password, role string) models.Profile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	profile := models.Profile{
		Email:        email,
		FullName:     "Account Holder",
		Role:         role,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&profile).Error)

	return profile
}

func TestAuthServiceLogin(t *testing.T) {
	db, svc := setupAuthService(t)
	account := seedAccount(t, db, "login@academy.test", "sekret1", models.RoleAdmin)

	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "login@academy.test",
		Password: "sekret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.EqualValues(t, 900, pair.ExpiresIn)
	require.Equal(t, account.ID, pair.Profile.ID)
	require.Equal(t, models.RoleAdmin, pair.Profile.Role)

	token, err := jwt.Parse(pair.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, models.RoleAdmin, claims["role"])
}

func TestAuthServiceLoginRejectsBadPassword(t *testing.T) {
	db, svc := setupAuthService(t)
	seedAccount(t, db, "badpass@academy.test", "sekret1", models.RoleStudent)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "badpass@academy.test",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	_, svc := setupAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ghost@academy.test",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRefresh(t *testing.T) {
	db, svc := setupAuthService(t)
	account := seedAccount(t, db, "refresh@academy.test", "sekret1", models.RoleStudent)

	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "refresh@academy.test",
		Password: "sekret1",
	})
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, renewed.AccessToken)
	require.Equal(t, account.ID, renewed.Profile.ID)
}

func TestAuthServiceRefreshRejectsGarbage(t *testing.T) {
	_, svc := setupAuthService(t)

	_, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "not.a.jwt"})
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthServiceRefreshRejectsAccessToken(t *testing.T) {
	db, svc := setupAuthService(t)
	seedAccount(t, db, "cross@academy.test", "sekret1", models.RoleStudent)

	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "cross@academy.test",
		Password: "sekret1",
	})
	require.NoError(t, err)

	// signed with the access secret, must not pass refresh verification
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: pair.AccessToken})
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}
