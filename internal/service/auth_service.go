package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Yaara40/academic-department-website-sub000/internal/auth"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
)

// MsgBadCredentials deliberately does not say whether the email or the
// password was wrong.
const MsgBadCredentials = "invalid email or password"

// LoginRequest carries admin panel credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the discriminated outcome of a login attempt.
type LoginResult struct {
	Success bool     `json:"success"`
	Token   string   `json:"token,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// AuthService authenticates admin panel users.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) *LoginResult
}

type authService struct {
	admins repository.AdminUserRepository
	tokens *auth.TokenService
	logger *logrus.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(admins repository.AdminUserRepository, tokens *auth.TokenService, logger *logrus.Logger) AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &authService{admins: admins, tokens: tokens, logger: logger}
}

// Login checks the credentials against the stored bcrypt hash and issues a
// session token.
func (s *authService) Login(ctx context.Context, req *LoginRequest) *LoginResult {
	if req == nil {
		return &LoginResult{Success: false, Errors: []string{MsgBadCredentials}}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		s.logger.WithError(err).Error("failed to load admin account")
		return &LoginResult{Success: false, Errors: []string{MsgStorageFailure}}
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return &LoginResult{Success: false, Errors: []string{MsgBadCredentials}}
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue admin token")
		return &LoginResult{Success: false, Errors: []string{MsgStorageFailure}}
	}

	return &LoginResult{Success: true, Token: token}
}
