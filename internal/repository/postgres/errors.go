package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var (
	// ErrConflict is returned when an insert collides with an existing row.
	ErrConflict                 = errors.New("row already exists")
	ErrDuplicate                = errors.New("duplicate value")
	ErrFieldsNotAllowedToUpdate = errors.New("fields not allowed to update")
	// ErrUnknownReference is returned when a row points at a missing parent.
	ErrUnknownReference         = errors.New("referenced row does not exist")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
