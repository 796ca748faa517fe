package emit

import (
	"context"
	"errors"
	"syscall"
	"time"
)

const (
	maxAttempts = 3
	retryDelay  = 25 * time.Millisecond
)

// isTransient reports whether err is worth retrying: the filesystem was
// busy or the call was interrupted.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EINTR)
}

// withRetry runs op until it succeeds, returns a permanent error, or the
// attempt limit is reached. The delay grows linearly per attempt.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = op(); err == nil || !isTransient(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryDelay):
		}
	}
	return err
}
