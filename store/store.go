// Package store is the record store behind the services. GormStore talks to
// PostgreSQL; MemoryStore keeps everything in process for tests and demos.
package store

import (
	"context"
	"errors"

	"spotbook/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrOverlap   = errors.New("booking overlaps an existing booking")
	ErrDuplicate = errors.New("duplicate record")
)

// SpotFilter narrows ListSpots. Nil bounds are ignored.
type SpotFilter struct {
	OwnerID  *uint
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

type Store interface {
	// Transaction runs fn against a store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	// LockSpot loads a spot and holds it until the surrounding transaction
	// ends, serializing writers that need a consistent view of its bookings.
	LockSpot(ctx context.Context, id uint) (*models.Spot, error)
	// LockReview does the same for a review, serializing image uploads.
	LockReview(ctx context.Context, id uint) (*models.Review, error)

	CreateUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByCredential(ctx context.Context, credential string) (*models.User, error)
	FindUsers(ctx context.Context, ids ...uint) ([]models.User, error)

	FindSpot(ctx context.Context, id uint) (*models.Spot, error)
	ListSpots(ctx context.Context, filter SpotFilter) ([]models.Spot, error)
	CreateSpot(ctx context.Context, spot *models.Spot) error
	UpdateSpot(ctx context.Context, spot *models.Spot) error
	DeleteSpot(ctx context.Context, id uint) error

	FindSpotImage(ctx context.Context, id uint) (*models.SpotImage, error)
	ListSpotImages(ctx context.Context, spotIDs ...uint) ([]models.SpotImage, error)
	CreateSpotImage(ctx context.Context, image *models.SpotImage) error
	DeleteSpotImage(ctx context.Context, id uint) error

	FindBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookingsBySpot(ctx context.Context, spotID uint) ([]models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id uint) error

	FindReview(ctx context.Context, id uint) (*models.Review, error)
	FindUserReview(ctx context.Context, spotID, userID uint) (*models.Review, error)
	ListReviewsBySpot(ctx context.Context, spotIDs ...uint) ([]models.Review, error)
	ListReviewsByUser(ctx context.Context, userID uint) ([]models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) error
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id uint) error

	FindReviewImage(ctx context.Context, id uint) (*models.ReviewImage, error)
	ListReviewImages(ctx context.Context, reviewIDs ...uint) ([]models.ReviewImage, error)
	CountReviewImages(ctx context.Context, reviewID uint) (int, error)
	CreateReviewImage(ctx context.Context, image *models.ReviewImage) error
	DeleteReviewImage(ctx context.Context, id uint) error
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
