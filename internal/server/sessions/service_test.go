package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/twinsight/dashboard-auth/internal/shared"
)

// memoryRepo is an in-memory Repository used to exercise the full session
// state machine without a database.
type memoryRepo struct {
	rows      map[string]*Session
	createErr error
	getErr    error
	deleteErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]*Session)}
}

func (m *memoryRepo) Create(_ context.Context, session *Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[session.ID] = session
	return nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (*Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.rows[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return s, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) (bool, error) {
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func TestIssueSession(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	before := time.Now().Add(Validity).Unix()
	session, err := svc.IssueSession(context.Background(), "u-1")
	after := time.Now().Add(Validity).Unix()

	require.NoError(t, err)
	require.Len(t, session.ID, TokenLength)
	require.Equal(t, "u-1", session.UserID)
	require.GreaterOrEqual(t, session.Expiry, before)
	require.LessOrEqual(t, session.Expiry, after)
	require.Contains(t, repo.rows, session.ID)
}

func TestIssueSession_StorageError(t *testing.T) {
	repo := newMemoryRepo()
	repo.createErr = errors.New("insert failed")
	svc := NewService(repo)

	_, err := svc.IssueSession(context.Background(), "u-1")
	require.Error(t, err)
}

func TestValidateSession_Valid(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	session, err := svc.IssueSession(context.Background(), "u-1")
	require.NoError(t, err)

	userID, err := svc.ValidateSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Equal(t, "u-1", userID)
}

func TestValidateSession_Unknown(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	fabricated, err := shared.MakeRandAlphanumericString(TokenLength)
	require.NoError(t, err)

	userID, err := svc.ValidateSession(context.Background(), fabricated)
	require.ErrorIs(t, err, shared.ErrorNotFound)
	require.Empty(t, userID)
}

func TestValidateSession_Expired(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	// Construct an already-expired row directly in storage.
	repo.rows["s-expired"] = &Session{
		ID:     "s-expired",
		UserID: "u-1",
		Expiry: time.Now().Add(-time.Hour).Unix(),
	}

	_, err := svc.ValidateSession(context.Background(), "s-expired")
	require.ErrorIs(t, err, shared.ErrorSessionExpired)

	// The expired row is left in place, but remains revocable.
	require.Contains(t, repo.rows, "s-expired")
	found, err := svc.RevokeSession(context.Background(), "s-expired")
	require.NoError(t, err)
	require.True(t, found)
}

func TestValidateSession_StorageError(t *testing.T) {
	repo := newMemoryRepo()
	repo.getErr = errors.New("query failed")
	svc := NewService(repo)

	_, err := svc.ValidateSession(context.Background(), "s-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrorNotFound)
	require.NotErrorIs(t, err, shared.ErrorSessionExpired)
}

func TestRevokeSession_Twice(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	session, err := svc.IssueSession(context.Background(), "u-1")
	require.NoError(t, err)

	found, err := svc.RevokeSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.True(t, found)

	found, err = svc.RevokeSession(context.Background(), session.ID)
	require.NoError(t, err, "revoking a missing session is not an error")
	require.False(t, found)
}

func TestIsExpiredAt(t *testing.T) {
	s := &Session{Expiry: 1000}

	require.False(t, s.IsExpiredAt(time.Unix(999, 0)))
	require.True(t, s.IsExpiredAt(time.Unix(1000, 0)), "expiry instant itself is invalid")
	require.True(t, s.IsExpiredAt(time.Unix(1001, 0)))
}
