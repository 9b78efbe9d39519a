package services

import (
	"errors"
	"time"

	apperrors "spotbook/errors"
	"spotbook/services/logger"
	"spotbook/store"
)

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func defaultClock(now Clock) Clock {
	if now == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return now
}

func defaultLogger(l logger.Logger) logger.Logger {
	if l == nil {
		return logger.Nop{}
	}
	return l
}

// optional turns a store miss into a nil record so the policy can report
// NotFound with the right message.
func optional[T any](v *T, err error) (*T, error) {
	if store.IsNotFound(err) {
		return nil, nil
	}
	return v, err
}

// badRequest is a validation failure with per-field messages.
func badRequest(fields map[string]string) *apperrors.AppError {
	return apperrors.NewFieldError(apperrors.ErrCodeValidation, "Bad Request", fields)
}

// fail passes AppErrors through and turns anything else into an opaque
// internal error after logging it.
func fail(log logger.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	log.Error("%s: %v", op, err)
	return apperrors.Internal(err)
}
