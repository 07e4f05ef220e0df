package service

import (
	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users    *repository.UserRepository
	Activity *ActivityService
	Config   *config.Config
}

func NewAuthService(users *repository.UserRepository, activity *ActivityService, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Activity: activity, Config: cfg}
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login verifies credentials against the stored bcrypt hash and issues a
// bearer token with a fixed 24h expiry, recorded in user_sessions so it can
// be revoked before the token itself expires.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, util.ErrInvalidRequest
	}

	user, err := s.Users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	session := &model.UserSession{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.Config.JWT.ExpireTime),
	}
	if err := s.Users.CreateSession(session); err != nil {
		return nil, err
	}

	if err := s.Users.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}

	s.Activity.Log(user.ID, "login", "", "", "")

	return &LoginResult{Token: token, User: user}, nil
}

// Logout revokes the session backing the token.
func (s *AuthService) Logout(token string) error {
	return s.Users.DeleteSession(token)
}

func (s *AuthService) GetUser(id string) (*model.User, error) {
	user, err := s.Users.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return user, err
}

// HashPassword is used when provisioning users. The plaintext is never stored.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
