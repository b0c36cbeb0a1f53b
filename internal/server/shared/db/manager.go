package db

import (
	"database/sql"

	"github.com/twinsight/dashboard-auth/internal/server/sessions"
	"github.com/twinsight/dashboard-auth/internal/server/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Sessions() sessions.Repository
	Close() error
}
