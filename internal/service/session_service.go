package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
	"pickupgames/signup/pkg/crypto"
	jwtpkg "pickupgames/signup/pkg/jwt"
)

// Session is a signed bearer token handed to a client after login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService implements the two shared-secret logins. Neither is a hardened credential:
// organizers share one code, players prove an email plus their phone digits.
type SessionService interface {
	OrganizerLogin(ctx context.Context, code string) (*Session, error)
	PlayerLogin(ctx context.Context, accessCode, email, phone string) (*Session, *model.Registration, error)
	Validate(ctx context.Context, token string) (*jwtpkg.Claims, error)
	Logout(ctx context.Context, claims *jwtpkg.Claims) error
}

type sessionService struct {
	jwtManager        *jwtpkg.Manager
	revocations       repository.RevocationStore
	registrations     RegistrationService
	organizerCodeHash string
}

func NewSessionService(
	jwtManager *jwtpkg.Manager,
	revocations repository.RevocationStore,
	registrations RegistrationService,
	organizerCodeHash string,
) SessionService {
	return &sessionService{
		jwtManager:        jwtManager,
		revocations:       revocations,
		registrations:     registrations,
		organizerCodeHash: organizerCodeHash,
	}
}

func (s *sessionService) OrganizerLogin(_ context.Context, code string) (*Session, error) {
	code = strings.TrimSpace(code)
	if code == "" || !crypto.CheckSecret(code, s.organizerCodeHash) {
		return nil, ErrWrongCredentials
	}
	token, claims, err := s.jwtManager.GenerateOrganizerToken()
	if err != nil {
		return nil, fmt.Errorf("sign organizer token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *sessionService) PlayerLogin(ctx context.Context, accessCode, email, phone string) (*Session, *model.Registration, error) {
	reg, err := s.registrations.Authenticate(ctx, accessCode, email, phone)
	if err != nil {
		return nil, nil, err
	}
	token, claims, err := s.jwtManager.GeneratePlayerToken(reg.ID, accessCode)
	if err != nil {
		return nil, nil, fmt.Errorf("sign player token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, reg, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*jwtpkg.Claims, error) {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrSessionInvalid
	}
	return claims, nil
}

func (s *sessionService) Logout(ctx context.Context, claims *jwtpkg.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

var _ SessionService = (*sessionService)(nil)
