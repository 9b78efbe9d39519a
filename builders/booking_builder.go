package builders

import (
	"spotbook/daterange"
	"spotbook/models"
)

// BookingBuilder assembles a booking step by step.
type BookingBuilder struct {
	booking *models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{},
	}
}

// FromBooking starts from a copy of an existing booking, for edits.
func FromBooking(b models.Booking) *BookingBuilder {
	return &BookingBuilder{booking: &b}
}

func (b *BookingBuilder) ForSpot(spotID uint) *BookingBuilder {
	b.booking.SpotID = spotID
	return b
}

func (b *BookingBuilder) ByGuest(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithDates sets the stay; time of day is dropped.
func (b *BookingBuilder) WithDates(r daterange.Range) *BookingBuilder {
	b.booking.SetRange(daterange.New(r.Start, r.End))
	return b
}

func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
