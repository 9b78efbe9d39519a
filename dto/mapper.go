package dto

import (
	"time"

	"spotbook/constants"
	"spotbook/models"
)

func formatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}

func NewSafeUser(u *models.User) *SafeUser {
	if u == nil {
		return nil
	}
	return &SafeUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}
}

func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

func NewSpotResponse(s *models.Spot) SpotResponse {
	return SpotResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Country:     s.Country,
		Lat:         s.Lat,
		Lng:         s.Lng,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewSpotSummary(s *models.Spot, previewImage *string) *SpotSummary {
	if s == nil {
		return nil
	}
	return &SpotSummary{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Address:      s.Address,
		City:         s.City,
		State:        s.State,
		Country:      s.Country,
		Lat:          s.Lat,
		Lng:          s.Lng,
		Name:         s.Name,
		Price:        s.Price,
		PreviewImage: previewImage,
	}
}

func NewSpotImageResponse(img *models.SpotImage) SpotImageResponse {
	return SpotImageResponse{ID: img.ID, URL: img.URL, Preview: img.Preview}
}

func NewReviewImageResponse(img *models.ReviewImage) ReviewImageResponse {
	return ReviewImageResponse{ID: img.ID, URL: img.URL}
}

func NewReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		SpotID:    r.SpotID,
		Review:    r.Review,
		Stars:     r.Stars,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewBookingResponse(b *models.Booking) BookingResponse {
	r := b.Range()
	return BookingResponse{
		ID:        b.ID,
		SpotID:    b.SpotID,
		UserID:    b.UserID,
		StartDate: formatDate(r.Start),
		EndDate:   formatDate(r.End),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func NewLimitedBooking(b *models.Booking) LimitedBooking {
	r := b.Range()
	return LimitedBooking{
		SpotID:    b.SpotID,
		StartDate: formatDate(r.Start),
		EndDate:   formatDate(r.End),
	}
}
