package services

import (
	"testing"

	"vlinky_backend/internal/auth"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *memUserRepo) {
	t.Helper()
	auth.Configure("test-secret", 60)
	users := newMemUserRepo()
	return NewAuthService(users), users
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(&dto.RegisterRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	// New accounts start as fans; creator access comes from approval.
	assert.Equal(t, models.UserRoleFan, registered.User.Role)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	claims, err := auth.ParseToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, string(models.UserRoleFan), claims.Role)

	loggedIn, err := service.Login(&dto.LoginRequest{
		Email:    "alex@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture(t)

	req := &dto.RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "long-enough-password"}
	_, err := service.Register(req)
	require.NoError(t, err)

	_, err = service.Register(req)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Register(&dto.RegisterRequest{
		Name: "Alex", Email: "alex@example.com", Password: "long-enough-password",
	})
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{Email: "alex@example.com", Password: "wrong-password"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(&dto.RegisterRequest{
		Name: "Alex", Email: "alex@example.com", Password: "long-enough-password",
	})
	require.NoError(t, err)

	refreshed, err := service.Refresh(registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The presented refresh token is single-use.
	_, err = service.Refresh(registered.RefreshToken)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(&dto.RegisterRequest{
		Name: "Alex", Email: "alex@example.com", Password: "long-enough-password",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(registered.RefreshToken))

	_, err = service.Refresh(registered.RefreshToken)
	require.Error(t, err)
}
