package service

import (
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/palteria/palteria_api/internal/config"
	"github.com/palteria/palteria_api/internal/utils"
)

// AdminAuthService authenticates the single admin panel account configured
// through the environment. There is no user table; the storefront itself is
// public.
type AdminAuthService struct {
	admin config.AdminConfig
}

// NewAdminAuthService creates an AdminAuthService.
func NewAdminAuthService(admin config.AdminConfig) *AdminAuthService {
	return &AdminAuthService{admin: admin}
}

// Login verifies credentials and issues a JWT for the admin routes.
func (s *AdminAuthService) Login(email, password string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.admin.Email) {
		log.Warn().Str("email", email).Msg("login attempt for unknown account")
		return "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.admin.Email)
	if err != nil {
		return "", err
	}

	log.Info().Str("email", s.admin.Email).Msg("admin login successful")
	return token, nil
}
