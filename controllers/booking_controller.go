package controllers

import (
	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/middleware"
	"spotbook/response"
	"spotbook/services"
	"spotbook/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) BookingController {
	return BookingController{Bookings: bookings}
}

// ListCurrent godoc
// @Summary      Bookings of the current user
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  dto.BookingListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/bookings/current [get]
func (b BookingController) ListCurrent(c *gin.Context) {
	bookings, err := b.Bookings.ListForUser(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, dto.BookingListResponse{Bookings: bookings})
}

// ListForSpot godoc
// @Summary      Bookings of a spot
// @Description  The spot's owner sees every booking with its guest. Everyone
// @Description  else sees only spotId, startDate and endDate.
// @Tags         bookings
// @Produce      json
// @Param        spotId  path      int  true  "Spot id"
// @Success      200     {object}  dto.BookingListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId}/bookings [get]
func (b BookingController) ListForSpot(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	list, err := b.Bookings.ListForSpot(c.Request.Context(), middleware.ActorFrom(c), spotID)
	if err != nil {
		abort(c, err)
		return
	}
	if list.Owner {
		response.Success(c, dto.BookingListResponse{Bookings: list.Bookings})
		return
	}
	response.Success(c, dto.LimitedBookingListResponse{Bookings: list.Limited})
}

// Availability godoc
// @Summary      Check whether dates are free
// @Tags         bookings
// @Produce      json
// @Param        spotId     path      int     true  "Spot id"
// @Param        startDate  query     string  true  "First night, 2006-01-02"
// @Param        endDate    query     string  true  "Checkout day, 2006-01-02"
// @Success      200        {object}  dto.AvailabilityResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId}/availability [get]
func (b BookingController) Availability(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	r, err := validator.ValidateBookingDates(dto.BookingInput{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	})
	if err != nil {
		abort(c, err)
		return
	}
	conflict, err := b.Bookings.CheckAvailability(c.Request.Context(), spotID, r, nil)
	if err != nil {
		abort(c, err)
		return
	}
	if conflict != nil {
		response.Success(c, dto.AvailabilityResponse{Available: false, Errors: conflict.Fields})
		return
	}
	response.Success(c, dto.AvailabilityResponse{Available: true})
}

// Create godoc
// @Summary      Book a spot
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        spotId  path      int               true  "Spot id"
// @Param        body    body      dto.BookingInput  true  "Dates"
// @Success      201     {object}  dto.BookingResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse  "Own spot or dates taken"
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId}/bookings [post]
func (b BookingController) Create(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	var in dto.BookingInput
	if err := validator.BindJSON(c, &in); err != nil {
		abort(c, err)
		return
	}
	r, err := validator.ValidateBookingDates(in)
	if err != nil {
		abort(c, err)
		return
	}
	booking, err := b.Bookings.CreateBooking(c.Request.Context(), middleware.ActorFrom(c), spotID, r)
	if err != nil {
		abort(c, err)
		return
	}
	response.Created(c, dto.NewBookingResponse(booking))
}

// Update godoc
// @Summary      Change booking dates
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        bookingId  path      int               true  "Booking id"
// @Param        body       body      dto.BookingInput  true  "Dates"
// @Success      200        {object}  dto.BookingResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      403        {object}  dto.ErrorResponse  "Past booking or dates taken"
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/bookings/{bookingId} [put]
func (b BookingController) Update(c *gin.Context) {
	bookingID, err := pathID(c, "bookingId", apperrors.ErrBookingNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	var in dto.BookingInput
	if err := validator.BindJSON(c, &in); err != nil {
		abort(c, err)
		return
	}
	r, err := validator.ValidateBookingDates(in)
	if err != nil {
		abort(c, err)
		return
	}
	booking, err := b.Bookings.UpdateBooking(c.Request.Context(), middleware.ActorFrom(c), bookingID, r)
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(booking))
}

// Delete godoc
// @Summary      Cancel a booking
// @Description  Only bookings that have not started can be cancelled.
// @Tags         bookings
// @Produce      json
// @Param        bookingId  path      int  true  "Booking id"
// @Success      200        {object}  dto.MessageResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/bookings/{bookingId} [delete]
func (b BookingController) Delete(c *gin.Context) {
	bookingID, err := pathID(c, "bookingId", apperrors.ErrBookingNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	if err := b.Bookings.DeleteBooking(c.Request.Context(), middleware.ActorFrom(c), bookingID); err != nil {
		abort(c, err)
		return
	}
	response.Message(c, "Successfully deleted")
}
