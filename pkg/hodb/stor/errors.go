package stor

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrStaleStatus is returned by UpdateSessionStatus when the row no
	// longer carries the expected current status, meaning someone else got
	// there first.
	ErrStaleStatus = errors.New("session status changed concurrently")
)

func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
