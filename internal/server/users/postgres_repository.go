package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

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

func (r *PostgresRepository) Create(ctx context.Context, user *User) error {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query :=
		`INSERT INTO users (user_id, email, password, salt)
         VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Salt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return shared.ErrorAlreadyExists
		}
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query :=
		`SELECT user_id, email, password, salt FROM users
		 WHERE email = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error performing sql request: %w", err)
		}
		return nil, shared.ErrorNotFound
	}

	user := &User{}
	if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Salt); err != nil {
		return nil, fmt.Errorf("error scanning user row: %w", err)
	}

	// More than one row for an email means the uniqueness invariant was
	// violated outside this core. Surface it, do not pick a row.
	if rows.Next() {
		return nil, fmt.Errorf("%w: multiple user rows for email", shared.ErrorInconsistentState)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query :=
		`SELECT user_id, email, password, salt FROM users
		 WHERE user_id = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Salt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}
