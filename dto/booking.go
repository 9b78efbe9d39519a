package dto

import "time"

// BookingInput is the body of booking create and edit. Dates are 2006-01-02
// or RFC 3339.
type BookingInput struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type BookingResponse struct {
	ID        uint      `json:"id"`
	SpotID    uint      `json:"spotId"`
	UserID    uint      `json:"userId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingDetail is a booking as seen by its guest (with Spot) or by the
// spot's owner (with User).
type BookingDetail struct {
	BookingResponse
	Spot *SpotSummary `json:"Spot,omitempty"`
	User *UserSummary `json:"User,omitempty"`
}

// LimitedBooking is what a non-owner sees of a spot's bookings.
type LimitedBooking struct {
	SpotID    uint   `json:"spotId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type BookingListResponse struct {
	Bookings []BookingDetail `json:"Bookings"`
}

type LimitedBookingListResponse struct {
	Bookings []LimitedBooking `json:"Bookings"`
}

// AvailabilityResponse reports whether a date range is free on a spot.
type AvailabilityResponse struct {
	Available bool              `json:"available"`
	Errors    map[string]string `json:"errors,omitempty"`
}
