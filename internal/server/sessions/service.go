// Package sessions implements the session token lifecycle: issuance,
// validation, and revocation of opaque bearer tokens backed by the sessions
// table.
//
// A session moves from created to valid (while now < expiry) and ends either
// expired (by time passing) or revoked (by explicit deletion). There is no
// background sweeper; expired rows persist until a logout call deletes them.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twinsight/dashboard-auth/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IssueSession creates and persists a fresh session for the user with
// expiry = now + Validity.
func (s *Service) IssueSession(ctx context.Context, userID string) (*Session, error) {

	token, err := shared.MakeRandAlphanumericString(TokenLength)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	session := &Session{
		ID:     token,
		UserID: userID,
		Expiry: time.Now().Add(Validity).Unix(),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	return session, nil
}

// ValidateSession looks up the session and returns the owning user id when
// it is still valid. An absent session yields shared.ErrorNotFound, an
// expired one shared.ErrorSessionExpired; expired rows are not deleted as a
// side effect.
func (s *Service) ValidateSession(ctx context.Context, sessionID string) (string, error) {

	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", shared.ErrorNotFound
		}
		return "", fmt.Errorf("error looking up session: %w", err)
	}

	if session.IsExpiredAt(time.Now()) {
		return "", shared.ErrorSessionExpired
	}

	return session.UserID, nil
}

// RevokeSession deletes the session and reports whether it existed.
func (s *Service) RevokeSession(ctx context.Context, sessionID string) (bool, error) {

	found, err := s.repo.Delete(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("error deleting session: %w", err)
	}

	return found, nil
}
