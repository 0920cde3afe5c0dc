package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	storageAttempts = 3
	storageBackoff  = 50 * time.Millisecond
)

// withRetry runs a storage operation up to storageAttempts times. Misses
// and constraint violations (gorm.ErrRecordNotFound, gorm.ErrDuplicatedKey)
// are not transient and return immediately; anything else gets a short
// backoff and another attempt before being surfaced as ErrUnavailable.
func withRetry(op func() error) error {
	var err error
	for attempt := 0; attempt < storageAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		time.Sleep(storageBackoff * time.Duration(attempt+1))
	}
	return errors.Join(ErrUnavailable, err)
}
