package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "herdbook/internal/errors"
)

// storeError maps an unexpected persistence failure to BACKEND_UNAVAILABLE.
func storeError(err error) error {
	return apperrors.Wrap(apperrors.ErrBackendUnavailable, err)
}

// isDuplicateKey reports whether err is a unique constraint violation. Drivers
// without error translation are matched on their message.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
