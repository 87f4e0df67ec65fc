package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err comes from a lookup that matched no
// row, so callers can map it to their own not-found sentinel.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
