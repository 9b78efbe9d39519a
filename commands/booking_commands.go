package commands

import (
	"context"

	"spotbook/models"

	"gorm.io/gorm"
)

// BookingCommand is one booking write against the database.
type BookingCommand interface {
	Execute(ctx context.Context) error
}

type CreateBookingCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewCreateBookingCommand(booking *models.Booking, db *gorm.DB) *CreateBookingCommand {
	return &CreateBookingCommand{
		booking: booking,
		db:      db,
	}
}

func (c *CreateBookingCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Create(c.booking).Error
}

// UpdateBookingCommand only rewrites the stay dates.
type UpdateBookingCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewUpdateBookingCommand(booking *models.Booking, db *gorm.DB) *UpdateBookingCommand {
	return &UpdateBookingCommand{
		booking: booking,
		db:      db,
	}
}

func (c *UpdateBookingCommand) Execute(ctx context.Context) error {
	res := c.db.WithContext(ctx).Model(c.booking).
		Select("start_date", "end_date").
		Updates(c.booking)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type DeleteBookingCommand struct {
	bookingID uint
	db        *gorm.DB
}

func NewDeleteBookingCommand(bookingID uint, db *gorm.DB) *DeleteBookingCommand {
	return &DeleteBookingCommand{
		bookingID: bookingID,
		db:        db,
	}
}

func (c *DeleteBookingCommand) Execute(ctx context.Context) error {
	res := c.db.WithContext(ctx).Delete(&models.Booking{}, c.bookingID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
