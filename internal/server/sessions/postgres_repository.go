package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/twinsight/dashboard-auth/internal/shared"
)

// queryTimeout bounds every round trip so a stalled connection cannot hold
// a request forever.
const queryTimeout = 5 * time.Second

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, session *Session) error {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query :=
		`INSERT INTO sessions (session_id, user_id, expiry)
         VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, session.ID, session.UserID, session.Expiry)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Session, error) {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query :=
		`SELECT session_id, user_id, expiry FROM sessions
		 WHERE session_id = $1
		 `

	session := &Session{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&session.ID, &session.UserID, &session.Expiry)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return session, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query :=
		`DELETE FROM sessions
		 WHERE session_id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}

	return affected > 0, nil
}
