// Package auth composes the credential and session managers into the four
// account operations the transport layer exposes: register, login, logout,
// and whoami. Failures are reported through sentinel errors from
// internal/shared; the transport layer maps them to status-shaped results.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/twinsight/dashboard-auth/internal/logging"
	"github.com/twinsight/dashboard-auth/internal/server/credentials"
	"github.com/twinsight/dashboard-auth/internal/server/sessions"
	"github.com/twinsight/dashboard-auth/internal/server/users"
	"github.com/twinsight/dashboard-auth/internal/shared"
)

// emailRegex is a permissive RFC-5322-style pattern, compiled once since
// compilation is too costly to repeat per request.
var emailRegex = regexp.MustCompile(`(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))`)

type Service struct {
	users    users.Repository
	sessions *sessions.Service
	creds    *credentials.Manager
	logger   logging.Logger
}

func NewService(userRepo users.Repository, sessionSvc *sessions.Service, creds *credentials.Manager, logger logging.Logger) *Service {
	return &Service{
		users:    userRepo,
		sessions: sessionSvc,
		creds:    creds,
		logger:   logger.With("component", "auth"),
	}
}

// Register creates an account and issues its first session.
//
// An email failing the format check yields shared.ErrorInvalidEmail; an
// email already registered yields shared.ErrorAlreadyExists. The pre-check
// read and the insert are not transactional; a concurrent registration that
// wins the race is caught by the storage-level unique constraint and
// reported as the same conflict.
func (s *Service) Register(ctx context.Context, email, password string) (*sessions.Session, error) {

	if !emailRegex.MatchString(email) {
		return nil, shared.ErrorInvalidEmail
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, shared.ErrorAlreadyExists
	}
	if !errors.Is(err, shared.ErrorNotFound) {
		return nil, s.internal(ctx, "register", err)
	}

	salt, err := s.creds.GenerateSalt()
	if err != nil {
		return nil, s.internal(ctx, "register", err)
	}

	stored, err := s.creds.HashForStorage(s.creds.DeriveHash(password, salt), salt)
	if err != nil {
		return nil, s.internal(ctx, "register", err)
	}

	userID, err := shared.MakeRandAlphanumericString(users.IDLength)
	if err != nil {
		return nil, s.internal(ctx, "register", err)
	}

	user := &users.User{
		ID:           userID,
		Email:        email,
		PasswordHash: stored,
		Salt:         salt,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, s.internal(ctx, "register", err)
	}

	session, err := s.sessions.IssueSession(ctx, user.ID)
	if err != nil {
		return nil, s.internal(ctx, "register", err)
	}

	return session, nil
}

// Login verifies credentials and issues a new session. A missing account
// and a wrong password both yield shared.ErrorUnauthorized so callers
// cannot probe for account existence.
func (s *Service) Login(ctx context.Context, email, password string) (*sessions.Session, error) {

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorUnauthorized
		}
		if errors.Is(err, shared.ErrorInconsistentState) {
			s.logger.Error(ctx, "email uniqueness invariant violated", "error", err.Error())
			return nil, shared.ErrorInternal
		}
		return nil, s.internal(ctx, "login", err)
	}

	if !s.creds.Verify(s.creds.DeriveHash(password, user.Salt), user.PasswordHash) {
		return nil, shared.ErrorUnauthorized
	}

	session, err := s.sessions.IssueSession(ctx, user.ID)
	if err != nil {
		return nil, s.internal(ctx, "login", err)
	}

	return session, nil
}

// Logout revokes the session and reports whether it existed.
func (s *Service) Logout(ctx context.Context, sessionID string) (bool, error) {

	found, err := s.sessions.RevokeSession(ctx, sessionID)
	if err != nil {
		return false, s.internal(ctx, "logout", err)
	}

	return found, nil
}

// WhoAmI resolves a session to its owning account. An absent session yields
// shared.ErrorUnauthorized, an expired one shared.ErrorSessionExpired so the
// transport can report them distinctly. A valid session whose user row no
// longer exists is a consistency violation: it is logged and denied with
// shared.ErrorInternal rather than treated as an invalid session.
func (s *Service) WhoAmI(ctx context.Context, sessionID string) (*users.User, error) {

	userID, err := s.sessions.ValidateSession(ctx, sessionID)
	switch {
	case errors.Is(err, shared.ErrorNotFound):
		return nil, shared.ErrorUnauthorized
	case errors.Is(err, shared.ErrorSessionExpired):
		return nil, shared.ErrorSessionExpired
	case err != nil:
		return nil, s.internal(ctx, "whoami", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			s.logger.Error(ctx, "validated session references missing user", "user_id", userID)
			return nil, shared.ErrorInternal
		}
		return nil, s.internal(ctx, "whoami", err)
	}

	return user, nil
}

// internal logs a storage or generation failure and returns the generic
// internal sentinel so no detail leaks to the caller.
func (s *Service) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, fmt.Sprintf("%s failed", op), "error", err.Error())
	return shared.ErrorInternal
}
