package models

import (
	"errors"
	"time"

	"spotbook/constants"
	"spotbook/daterange"
)

var (
	ErrBookingNotFuture = errors.New("bookings must start in the future")
	ErrBookingEnded     = errors.New("past bookings can't be modified")
	ErrBookingStarted   = errors.New("bookings that have been started can't be deleted")
	ErrBookingDeleted   = errors.New("booking has been deleted")
)

// BookingState is one state of the booking lifecycle. Each method returns nil
// when the transition is allowed from this state.
type BookingState interface {
	Name() string
	Edit() error
	Delete() error
}

// FutureState: the first booked day is after today.
type FutureState struct{}

func (s *FutureState) Name() string  { return constants.BookingStateFuture }
func (s *FutureState) Edit() error   { return nil }
func (s *FutureState) Delete() error { return nil }

// ActiveState: the stay has started and has not ended.
type ActiveState struct{}

func (s *ActiveState) Name() string { return constants.BookingStateActive }

// Edit is allowed while the current end date is still ahead.
func (s *ActiveState) Edit() error   { return nil }
func (s *ActiveState) Delete() error { return ErrBookingStarted }

// PastState: the stay is fully elapsed.
type PastState struct{}

func (s *PastState) Name() string  { return constants.BookingStatePast }
func (s *PastState) Edit() error   { return ErrBookingEnded }
func (s *PastState) Delete() error { return ErrBookingStarted }

// DeletedState is terminal.
type DeletedState struct{}

func (s *DeletedState) Name() string  { return constants.BookingStateDeleted }
func (s *DeletedState) Edit() error   { return ErrBookingDeleted }
func (s *DeletedState) Delete() error { return ErrBookingDeleted }

// GetBookingState resolves the lifecycle state of b at now. A nil booking is
// one that no longer exists.
func GetBookingState(b *Booking, now time.Time) BookingState {
	if b == nil {
		return &DeletedState{}
	}
	r := b.Range()
	switch {
	case r.Ended(now):
		return &PastState{}
	case r.Started(now):
		return &ActiveState{}
	default:
		return &FutureState{}
	}
}

// CheckCreate returns nil when a new booking for r may be created at now.
// New bookings always enter the lifecycle as Future.
func CheckCreate(r daterange.Range, now time.Time) error {
	if !r.Valid() || r.Started(now) {
		return ErrBookingNotFuture
	}
	return nil
}

// CanEdit reports whether b's dates may still be changed at now.
func CanEdit(b *Booking, now time.Time) bool {
	return GetBookingState(b, now).Edit() == nil
}

// CanDelete reports whether b may still be deleted at now.
func CanDelete(b *Booking, now time.Time) bool {
	return GetBookingState(b, now).Delete() == nil
}
