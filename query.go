package rowmap

import (
	"context"
	"database/sql"

	"github.com/Station-Manager/errors"
)

// Querier is implemented by *sql.DB, *sql.Tx, *sql.Conn and any wrapper that
// can execute a query returning rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query runs query and maps every result row onto a new T.
// It fails with ErrEmptyResult when the query returns no rows.
//
//	type User struct {
//	    ID    int64
//	    Email string
//	}
//
//	users, err := rowmap.Query[User](ctx, nil, db, `SELECT ID, Email FROM users`)
func Query[T any](ctx context.Context, m *Mapper, q Querier, query string, args ...any) (out []T, err error) {
	const op errors.Op = "rowmap.Query"
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = wrap(op, cerr)
		}
	}()
	return MapAll[T](m, NewCursor(rows))
}

// Get runs query and maps its first row. Further rows are ignored.
func Get[T any](ctx context.Context, m *Mapper, q Querier, query string, args ...any) (out T, err error) {
	const op errors.Op = "rowmap.Get"
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return out, wrap(op, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = wrap(op, cerr)
		}
	}()
	return MapNext[T](m, NewCursor(rows))
}

// LoadTableContext runs query and materializes the whole result.
func LoadTableContext(ctx context.Context, q Querier, query string, args ...any) (t *Table, err error) {
	const op errors.Op = "rowmap.LoadTableContext"
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = wrap(op, cerr)
		}
	}()
	return LoadTable(rows)
}
