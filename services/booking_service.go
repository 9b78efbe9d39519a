package services

import (
	"context"
	"errors"
	"time"

	"spotbook/availability"
	"spotbook/builders"
	"spotbook/daterange"
	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/models"
	"spotbook/policy"
	"spotbook/services/logger"
	"spotbook/store"
)

const (
	msgStartInPast   = "Start date cannot be in the past"
	msgEndInPast     = "End date cannot be in the past"
	msgEndAfterStart = "End date must be after the start date"
)

type BookingService struct {
	store  store.Store
	logger logger.Logger
	now    Clock
}

type BookingServiceOptions struct {
	Store  store.Store
	Logger logger.Logger
	Now    Clock
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	return &BookingService{
		store:  opts.Store,
		logger: defaultLogger(opts.Logger),
		now:    defaultClock(opts.Now),
	}
}

// SpotBookings is a spot's booking list. The owner gets Bookings with guest
// details; everyone else gets Limited.
type SpotBookings struct {
	Owner    bool
	Bookings []dto.BookingDetail
	Limited  []dto.LimitedBooking
}

// checkAvailability must run inside the transaction that writes the booking,
// after the spot row is locked.
func checkAvailability(ctx context.Context, tx store.Store, spotID uint, r daterange.Range, excluding *uint) error {
	existing, err := tx.ListBookingsBySpot(ctx, spotID)
	if err != nil {
		return err
	}
	if conflict := availability.Check(existing, r, excluding); conflict != nil {
		return conflict.AppError()
	}
	return nil
}

// writeError maps a constraint violation that slipped past the in-transaction
// check to the same conflict shape.
func (s *BookingService) writeError(op string, err error) error {
	if errors.Is(err, store.ErrOverlap) {
		return availability.NewConflict().AppError()
	}
	return fail(s.logger, op, err)
}

// validateNew applies the date rules every new booking must pass.
func validateNew(r daterange.Range, now time.Time) error {
	if !r.Valid() {
		return badRequest(map[string]string{"endDate": msgEndAfterStart})
	}
	if err := models.CheckCreate(r, now); err != nil {
		return badRequest(map[string]string{"startDate": msgStartInPast})
	}
	return nil
}

// CheckAvailability reports whether r is free on the spot, ignoring the
// booking with id excluding when given. A nil Conflict means free. r must pass
// the same date rules as a new booking. The read takes no lock; writes repeat
// the check under the spot lock.
func (s *BookingService) CheckAvailability(ctx context.Context, spotID uint, r daterange.Range, excluding *uint) (*availability.Conflict, error) {
	spot, err := optional(s.store.FindSpot(ctx, spotID))
	if err != nil {
		return nil, fail(s.logger, "find spot", err)
	}
	if spot == nil {
		return nil, apperrors.ErrSpotNotFound
	}
	if err := validateNew(r, s.now()); err != nil {
		return nil, err
	}
	existing, err := s.store.ListBookingsBySpot(ctx, spotID)
	if err != nil {
		return nil, fail(s.logger, "check availability", err)
	}
	return availability.Check(existing, r, excluding), nil
}

// CreateBooking books r on the spot for actor. The spot row stays locked from
// the availability check until the insert commits.
func (s *BookingService) CreateBooking(ctx context.Context, actor policy.Actor, spotID uint, r daterange.Range) (*models.Booking, error) {
	now := s.now()
	var booking *models.Booking

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		spot, err := optional(tx.LockSpot(ctx, spotID))
		if err != nil {
			return err
		}
		res := policy.Resource{Kind: policy.KindBooking, Spot: spot}
		if err := policy.Authorize(actor, policy.ActionCreate, res, now).Err(); err != nil {
			return err
		}
		if err := validateNew(r, now); err != nil {
			return err
		}
		if err := checkAvailability(ctx, tx, spot.ID, r, nil); err != nil {
			return err
		}

		booking = builders.NewBookingBuilder().
			ForSpot(spot.ID).
			ByGuest(actor.ID).
			WithDates(r).
			Build()
		return tx.CreateBooking(ctx, booking)
	})
	if err != nil {
		return nil, s.writeError("create booking", err)
	}

	s.logger.Info("booking %d created on spot %d for %s", booking.ID, spotID, booking.Range())
	return booking, nil
}

// UpdateBooking moves a booking to r. The booking must not have ended, the new
// end must be ahead, and a start that changes may not be in the past.
func (s *BookingService) UpdateBooking(ctx context.Context, actor policy.Actor, bookingID uint, r daterange.Range) (*models.Booking, error) {
	now := s.now()
	var updated *models.Booking

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		booking, err := optional(tx.FindBooking(ctx, bookingID))
		if err != nil {
			return err
		}
		var spot *models.Spot
		if booking != nil {
			// A booking never changes spot, so lock it first and then
			// re-read the dates a concurrent edit may have replaced.
			if spot, err = optional(tx.LockSpot(ctx, booking.SpotID)); err != nil {
				return err
			}
			if booking, err = optional(tx.FindBooking(ctx, bookingID)); err != nil {
				return err
			}
		}
		res := policy.Resource{Kind: policy.KindBooking, Spot: spot, Booking: booking}
		if err := policy.Authorize(actor, policy.ActionUpdate, res, now).Err(); err != nil {
			return err
		}

		if fields := validateEdit(booking.Range(), r, now); len(fields) > 0 {
			return badRequest(fields)
		}
		if err := checkAvailability(ctx, tx, booking.SpotID, r, &booking.ID); err != nil {
			return err
		}

		updated = builders.FromBooking(*booking).WithDates(r).Build()
		return tx.UpdateBooking(ctx, updated)
	})
	if err != nil {
		return nil, s.writeError("update booking", err)
	}

	s.logger.Info("booking %d moved to %s", updated.ID, updated.Range())
	return updated, nil
}

func validateEdit(current, next daterange.Range, now time.Time) map[string]string {
	fields := map[string]string{}
	if !next.Valid() {
		fields["endDate"] = msgEndAfterStart
	} else if next.Ended(now) {
		fields["endDate"] = msgEndInPast
	}
	if !next.Start.Equal(current.Start) && next.Start.Before(daterange.Day(now)) {
		fields["startDate"] = msgStartInPast
	}
	return fields
}

// DeleteBooking cancels a booking that has not started. The guest and the
// owner of the booked spot may both cancel.
func (s *BookingService) DeleteBooking(ctx context.Context, actor policy.Actor, bookingID uint) error {
	now := s.now()
	booking, err := optional(s.store.FindBooking(ctx, bookingID))
	if err != nil {
		return fail(s.logger, "find booking", err)
	}
	var spot *models.Spot
	if booking != nil {
		if spot, err = optional(s.store.FindSpot(ctx, booking.SpotID)); err != nil {
			return fail(s.logger, "find spot", err)
		}
	}
	res := policy.Resource{Kind: policy.KindBooking, Spot: spot, Booking: booking}
	if err := policy.Authorize(actor, policy.ActionDelete, res, now).Err(); err != nil {
		return err
	}
	if err := s.store.DeleteBooking(ctx, bookingID); err != nil {
		if store.IsNotFound(err) {
			return apperrors.ErrBookingNotFound
		}
		return fail(s.logger, "delete booking", err)
	}
	s.logger.Info("booking %d deleted by user %d", bookingID, actor.ID)
	return nil
}

// ListForUser returns actor's bookings with the booked spot and its preview
// image.
func (s *BookingService) ListForUser(ctx context.Context, actor policy.Actor) ([]dto.BookingDetail, error) {
	bookings, err := s.store.ListBookingsByUser(ctx, actor.ID)
	if err != nil {
		return nil, fail(s.logger, "list user bookings", err)
	}

	spotIDs := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		spotIDs = append(spotIDs, b.SpotID)
	}
	spots, previews, err := loadSpotSummaries(ctx, s.store, spotIDs)
	if err != nil {
		return nil, fail(s.logger, "load booked spots", err)
	}

	out := make([]dto.BookingDetail, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		out = append(out, dto.BookingDetail{
			BookingResponse: dto.NewBookingResponse(b),
			Spot:            dto.NewSpotSummary(spots[b.SpotID], previews[b.SpotID]),
		})
	}
	return out, nil
}

// ListForSpot returns the spot's bookings in the view actor is entitled to.
func (s *BookingService) ListForSpot(ctx context.Context, actor policy.Actor, spotID uint) (*SpotBookings, error) {
	spot, err := optional(s.store.FindSpot(ctx, spotID))
	if err != nil {
		return nil, fail(s.logger, "find spot", err)
	}
	decision := policy.Authorize(actor, policy.ActionRead, policy.Resource{Kind: policy.KindBooking, Spot: spot}, s.now())
	if decision.Reason == policy.ReasonNotFound {
		return nil, decision.Err()
	}

	bookings, err := s.store.ListBookingsBySpot(ctx, spotID)
	if err != nil {
		return nil, fail(s.logger, "list spot bookings", err)
	}

	if !decision.Allowed {
		limited := make([]dto.LimitedBooking, 0, len(bookings))
		for i := range bookings {
			limited = append(limited, dto.NewLimitedBooking(&bookings[i]))
		}
		return &SpotBookings{Limited: limited}, nil
	}

	userIDs := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		userIDs = append(userIDs, b.UserID)
	}
	users, err := loadUsers(ctx, s.store, userIDs)
	if err != nil {
		return nil, fail(s.logger, "load guests", err)
	}

	full := make([]dto.BookingDetail, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		full = append(full, dto.BookingDetail{
			BookingResponse: dto.NewBookingResponse(b),
			User:            dto.NewUserSummary(users[b.UserID]),
		})
	}
	return &SpotBookings{Owner: true, Bookings: full}, nil
}
