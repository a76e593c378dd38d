package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// ErrConflict is returned when dependent rows prevent a delete.
var ErrConflict = errors.New("conflict with dependent records")

const pgUniqueViolation = "23505"

// isDuplicate recognizes unique violations from both supported drivers.
// The sqlite and postgres dialectors translate them to gorm.ErrDuplicatedKey
// when TranslateError is on; the pgconn check covers raw postgres errors.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// normalizePage clamps skip/limit pagination arguments.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return skip, limit
}
