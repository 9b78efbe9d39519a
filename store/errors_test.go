package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("connection reset")

	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateError(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)), ErrNotFound)
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}), ErrOverlap)
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_user_spot"}), ErrDuplicate)
	assert.Equal(t, other, translateError(other))

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fk), translateError(fk))
}
