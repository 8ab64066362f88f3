// Package postgres реализует хранилища пользователей и заметок поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Коды SQLSTATE, которые репозитории переводят в доменные ошибки.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// PgxPoolInterface - подмножество pgxpool.Pool, нужное репозиториям.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
