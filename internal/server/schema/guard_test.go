package schema

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

const checkQuery = `(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+information_schema\.tables\s+WHERE\s+table_schema\s*=\s*current_schema\(\)\s+AND\s+table_name\s*=\s*ANY\(\$1\)\s*$`

// tableListConverter turns the []string bound to ANY($1) into a Postgres
// array literal. The pgx driver accepts slice arguments, but sqlmock's
// default converter rejects them.
type tableListConverter struct{}

func (tableListConverter) ConvertValue(v any) (driver.Value, error) {
	if names, ok := v.([]string); ok {
		return "{" + strings.Join(names, ",") + "}", nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newGuardWithMock(t *testing.T) (*Guard, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(tableListConverter{}),
	)
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewGuard(db), mock
}

func TestCheckSchema_AllTablesPresent(t *testing.T) {
	guard, mock := newGuardWithMock(t)

	mock.ExpectQuery(checkQuery).
		WithArgs("{users,sessions}").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	ok, err := guard.CheckSchema(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckSchema_TablesMissing(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"fresh database", 0},
		{"partial schema", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, mock := newGuardWithMock(t)

			mock.ExpectQuery(checkQuery).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			ok, err := guard.CheckSchema(context.Background())
			require.NoError(t, err, "missing tables are not an error")
			require.False(t, ok)
		})
	}
}

func TestCheckSchema_QueryFailure(t *testing.T) {
	guard, mock := newGuardWithMock(t)

	mock.ExpectQuery(checkQuery).
		WillReturnError(errors.New("connection refused"))

	_, err := guard.CheckSchema(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
}
