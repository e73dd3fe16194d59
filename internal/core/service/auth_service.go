package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
	"github.com/agencyos/order-desk/internal/pkg/metrics"
)

// AuthService implements sign-in by email against the seeded team.
type AuthService struct {
	store  ports.RecordStore
	logger zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(store ports.RecordStore, logger zerolog.Logger) *AuthService {
	return &AuthService{store: store, logger: logger}
}

// Login returns the user registered under email. Surrounding whitespace is
// ignored; the comparison itself is case-sensitive.
func (s *AuthService) Login(_ context.Context, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return domain.User{}, domain.ErrAuthenticationFailed
	}

	user, ok := s.store.Authenticate(email)
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		s.logger.Info().Str("email", email).Msg("login rejected")
		return domain.User{}, domain.ErrAuthenticationFailed
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return user, nil
}

// Resolve maps a user id from a request back to the user.
func (s *AuthService) Resolve(_ context.Context, userID string) (domain.User, error) {
	user, ok := s.store.FindUser(userID)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) Users(_ context.Context) []domain.User {
	return s.store.ListUsers()
}

func (s *AuthService) Developers(_ context.Context) []domain.User {
	return s.store.ListDevelopers()
}
