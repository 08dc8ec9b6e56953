package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel kinds for storage errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("unique constraint violated")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// translate maps driver errors to the package sentinels and tags them with op.
// Dialects with TranslateError support report duplicates as
// gorm.ErrDuplicatedKey.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// errorKind labels err for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
