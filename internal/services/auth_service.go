package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"vlinky_backend/internal/auth"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists(repositories.ErrUserAlreadyExists)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleFan, // creators are promoted on approval
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Account is not active")
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.New(apperrors.CodeTokenExpired, "auth", "Refresh token expired", 401)
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	// Rotate: the presented token is single-use.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
