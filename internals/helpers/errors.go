package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotApproved       = errors.New("submission is not approved")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStorage           = errors.New("storage unavailable")
	ErrStoragePermission = errors.New("storage permission denied")
)

// 23505 unique_violation
const pgUniqueViolation = "23505"

// IsUniqueViolation mendeteksi pelanggaran unique index dari Postgres
// (pgconn.PgError) maupun dari gorm (TranslateError) dan store in-memory.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") || strings.Contains(s, "duplicate key")
}

// NormalizeDBError memetakan error gorm/pg ke sentinel milik aplikasi.
func NormalizeDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case IsUniqueViolation(err):
		if errors.Is(err, ErrDuplicate) {
			return err
		}
		return errors.Join(ErrDuplicate, err)
	default:
		return err
	}
}
