// Package availability decides whether a date range can be booked on a spot.
package availability

import (
	"spotbook/daterange"
	apperrors "spotbook/errors"
	"spotbook/models"
)

const (
	ConflictMessage      = "Sorry, this spot is already booked for the specified dates"
	StartConflictMessage = "Start date conflicts with an existing booking"
	EndConflictMessage   = "End date conflicts with an existing booking"
)

// Conflict describes why a candidate range cannot be booked.
type Conflict struct {
	BookingIDs []uint
	Fields     map[string]string
}

func (c *Conflict) Error() string {
	return ConflictMessage
}

// AppError converts the conflict to the error shape returned to clients.
func (c *Conflict) AppError() *apperrors.AppError {
	return apperrors.NewFieldError(apperrors.ErrCodeConflict, ConflictMessage, c.Fields)
}

// NewConflict is the conflict reported when the store rejects an overlapping
// write that slipped past Check.
func NewConflict(ids ...uint) *Conflict {
	return &Conflict{
		BookingIDs: ids,
		Fields: map[string]string{
			"startDate": StartConflictMessage,
			"endDate":   EndConflictMessage,
		},
	}
}

// Check tests candidate against every existing booking of one spot. The
// booking with id excluding, when given, is skipped so an edit does not
// conflict with itself. Every overlapping booking is collected. It returns
// nil when nothing overlaps.
//
// An overlapping request is rejected as a whole, so both startDate and
// endDate are reported even when only one of them lands inside an existing
// stay.
func Check(existing []models.Booking, candidate daterange.Range, excluding *uint) *Conflict {
	var ids []uint
	for i := range existing {
		b := &existing[i]
		if excluding != nil && b.ID == *excluding {
			continue
		}
		if daterange.Overlaps(b.Range(), candidate) {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return NewConflict(ids...)
}
