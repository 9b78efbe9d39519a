package store

import (
	"context"

	"spotbook/commands"
	"spotbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the PostgreSQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
	return translateError(err)
}

func (s *GormStore) LockSpot(ctx context.Context, id uint) (*models.Spot, error) {
	var spot models.Spot
	if err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&spot, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &spot, nil
}

func (s *GormStore) LockReview(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&review, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func first[T any](db *gorm.DB, id uint) (*T, error) {
	var v T
	if err := db.First(&v, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &v, nil
}

func deleteByID[T any](db *gorm.DB, id uint) error {
	res := db.Delete(new(T), id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Users

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(s.conn(ctx).Create(user).Error)
}

func (s *GormStore) FindUser(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](s.conn(ctx), id)
}

func (s *GormStore) FindUserByCredential(ctx context.Context, credential string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).
		Where("email = ? OR username = ?", credential, credential).
		First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *GormStore) FindUsers(ctx context.Context, ids ...uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

// Spots

func (s *GormStore) FindSpot(ctx context.Context, id uint) (*models.Spot, error) {
	return first[models.Spot](s.conn(ctx), id)
}

func (s *GormStore) ListSpots(ctx context.Context, f SpotFilter) ([]models.Spot, error) {
	query := s.conn(ctx).Model(&models.Spot{})
	if f.OwnerID != nil {
		query = query.Where("owner_id = ?", *f.OwnerID)
	}
	if f.MinLat != nil {
		query = query.Where("lat >= ?", *f.MinLat)
	}
	if f.MaxLat != nil {
		query = query.Where("lat <= ?", *f.MaxLat)
	}
	if f.MinLng != nil {
		query = query.Where("lng >= ?", *f.MinLng)
	}
	if f.MaxLng != nil {
		query = query.Where("lng <= ?", *f.MaxLng)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit).Offset(f.Offset)
	}

	var spots []models.Spot
	if err := query.Order("id").Find(&spots).Error; err != nil {
		return nil, translateError(err)
	}
	return spots, nil
}

func (s *GormStore) CreateSpot(ctx context.Context, spot *models.Spot) error {
	return translateError(s.conn(ctx).Omit(clause.Associations).Create(spot).Error)
}

func (s *GormStore) UpdateSpot(ctx context.Context, spot *models.Spot) error {
	return translateError(s.conn(ctx).Omit(clause.Associations).Save(spot).Error)
}

func (s *GormStore) DeleteSpot(ctx context.Context, id uint) error {
	return deleteByID[models.Spot](s.conn(ctx), id)
}

// Spot images

func (s *GormStore) FindSpotImage(ctx context.Context, id uint) (*models.SpotImage, error) {
	return first[models.SpotImage](s.conn(ctx), id)
}

func (s *GormStore) ListSpotImages(ctx context.Context, spotIDs ...uint) ([]models.SpotImage, error) {
	if len(spotIDs) == 0 {
		return nil, nil
	}
	var images []models.SpotImage
	if err := s.conn(ctx).Where("spot_id IN ?", spotIDs).Order("id").Find(&images).Error; err != nil {
		return nil, translateError(err)
	}
	return images, nil
}

func (s *GormStore) CreateSpotImage(ctx context.Context, image *models.SpotImage) error {
	return translateError(s.conn(ctx).Create(image).Error)
}

func (s *GormStore) DeleteSpotImage(ctx context.Context, id uint) error {
	return deleteByID[models.SpotImage](s.conn(ctx), id)
}

// Bookings

func (s *GormStore) FindBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return first[models.Booking](s.conn(ctx), id)
}

func (s *GormStore) ListBookingsBySpot(ctx context.Context, spotID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.conn(ctx).Where("spot_id = ?", spotID).Order("start_date").Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (s *GormStore) ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.conn(ctx).Where("user_id = ?", userID).Order("start_date").Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return translateError(commands.NewCreateBookingCommand(booking, s.db).Execute(ctx))
}

func (s *GormStore) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	return translateError(commands.NewUpdateBookingCommand(booking, s.db).Execute(ctx))
}

func (s *GormStore) DeleteBooking(ctx context.Context, id uint) error {
	return translateError(commands.NewDeleteBookingCommand(id, s.db).Execute(ctx))
}

// Reviews

func (s *GormStore) FindReview(ctx context.Context, id uint) (*models.Review, error) {
	return first[models.Review](s.conn(ctx), id)
}

func (s *GormStore) FindUserReview(ctx context.Context, spotID, userID uint) (*models.Review, error) {
	var review models.Review
	if err := s.conn(ctx).
		Where("spot_id = ? AND user_id = ?", spotID, userID).
		First(&review).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func (s *GormStore) ListReviewsBySpot(ctx context.Context, spotIDs ...uint) ([]models.Review, error) {
	if len(spotIDs) == 0 {
		return nil, nil
	}
	var reviews []models.Review
	if err := s.conn(ctx).Where("spot_id IN ?", spotIDs).Order("id").Find(&reviews).Error; err != nil {
		return nil, translateError(err)
	}
	return reviews, nil
}

func (s *GormStore) ListReviewsByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&reviews).Error; err != nil {
		return nil, translateError(err)
	}
	return reviews, nil
}

func (s *GormStore) CreateReview(ctx context.Context, review *models.Review) error {
	return translateError(s.conn(ctx).Omit(clause.Associations).Create(review).Error)
}

func (s *GormStore) UpdateReview(ctx context.Context, review *models.Review) error {
	res := s.conn(ctx).Model(review).Select("review", "stars").Updates(review)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteReview(ctx context.Context, id uint) error {
	return deleteByID[models.Review](s.conn(ctx), id)
}

// Review images

func (s *GormStore) FindReviewImage(ctx context.Context, id uint) (*models.ReviewImage, error) {
	return first[models.ReviewImage](s.conn(ctx), id)
}

func (s *GormStore) ListReviewImages(ctx context.Context, reviewIDs ...uint) ([]models.ReviewImage, error) {
	if len(reviewIDs) == 0 {
		return nil, nil
	}
	var images []models.ReviewImage
	if err := s.conn(ctx).Where("review_id IN ?", reviewIDs).Order("id").Find(&images).Error; err != nil {
		return nil, translateError(err)
	}
	return images, nil
}

func (s *GormStore) CountReviewImages(ctx context.Context, reviewID uint) (int, error) {
	var count int64
	if err := s.conn(ctx).Model(&models.ReviewImage{}).Where("review_id = ?", reviewID).Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return int(count), nil
}

func (s *GormStore) CreateReviewImage(ctx context.Context, image *models.ReviewImage) error {
	return translateError(s.conn(ctx).Create(image).Error)
}

func (s *GormStore) DeleteReviewImage(ctx context.Context, id uint) error {
	return deleteByID[models.ReviewImage](s.conn(ctx), id)
}
