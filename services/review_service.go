package services

import (
	"context"
	"errors"

	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/models"
	"spotbook/policy"
	"spotbook/services/logger"
	"spotbook/store"
)

const msgReviewExists = "User already has a review for this spot"

type ReviewService struct {
	store  store.Store
	cache  SpotCache
	logger logger.Logger
	now    Clock
}

// ReviewServiceOptions.Cache must be the SpotService's cache: reviews change
// a spot's rating.
type ReviewServiceOptions struct {
	Store  store.Store
	Cache  SpotCache
	Logger logger.Logger
	Now    Clock
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	return &ReviewService{
		store:  opts.Store,
		cache:  defaultSpotCache(opts.Cache),
		logger: defaultLogger(opts.Logger),
		now:    defaultClock(opts.Now),
	}
}

// details attaches author, images and optionally the reviewed spot.
func (s *ReviewService) details(ctx context.Context, reviews []models.Review, withSpot bool) ([]dto.ReviewDetail, error) {
	reviewIDs := make([]uint, 0, len(reviews))
	userIDs := make([]uint, 0, len(reviews))
	spotIDs := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		reviewIDs = append(reviewIDs, r.ID)
		userIDs = append(userIDs, r.UserID)
		spotIDs = append(spotIDs, r.SpotID)
	}

	users, err := loadUsers(ctx, s.store, userIDs)
	if err != nil {
		return nil, err
	}
	images, err := s.store.ListReviewImages(ctx, reviewIDs...)
	if err != nil {
		return nil, err
	}
	imagesByReview := make(map[uint][]dto.ReviewImageResponse)
	for i := range images {
		img := &images[i]
		imagesByReview[img.ReviewID] = append(imagesByReview[img.ReviewID], dto.NewReviewImageResponse(img))
	}

	var spots map[uint]*models.Spot
	var previews map[uint]*string
	if withSpot {
		if spots, previews, err = loadSpotSummaries(ctx, s.store, spotIDs); err != nil {
			return nil, err
		}
	}

	out := make([]dto.ReviewDetail, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		d := dto.ReviewDetail{
			ReviewResponse: dto.NewReviewResponse(r),
			User:           dto.NewUserSummary(users[r.UserID]),
			ReviewImages:   imagesByReview[r.ID],
		}
		if d.ReviewImages == nil {
			d.ReviewImages = []dto.ReviewImageResponse{}
		}
		if withSpot {
			d.Spot = dto.NewSpotSummary(spots[r.SpotID], previews[r.SpotID])
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *ReviewService) ListBySpot(ctx context.Context, spotID uint) ([]dto.ReviewDetail, error) {
	if _, err := s.store.FindSpot(ctx, spotID); err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.ErrSpotNotFound
		}
		return nil, fail(s.logger, "find spot", err)
	}
	reviews, err := s.store.ListReviewsBySpot(ctx, spotID)
	if err != nil {
		return nil, fail(s.logger, "list spot reviews", err)
	}
	out, err := s.details(ctx, reviews, false)
	return out, fail(s.logger, "load review details", err)
}

func (s *ReviewService) ListByUser(ctx context.Context, actor policy.Actor) ([]dto.ReviewDetail, error) {
	reviews, err := s.store.ListReviewsByUser(ctx, actor.ID)
	if err != nil {
		return nil, fail(s.logger, "list user reviews", err)
	}
	out, err := s.details(ctx, reviews, true)
	return out, fail(s.logger, "load review details", err)
}

func (s *ReviewService) CreateReview(ctx context.Context, actor policy.Actor, spotID uint, text string, stars int) (*models.Review, error) {
	spot, err := optional(s.store.FindSpot(ctx, spotID))
	if err != nil {
		return nil, fail(s.logger, "find spot", err)
	}
	var existing *models.Review
	if spot != nil && actor.Authenticated() {
		if existing, err = optional(s.store.FindUserReview(ctx, spotID, actor.ID)); err != nil {
			return nil, fail(s.logger, "find user review", err)
		}
	}
	res := policy.Resource{Kind: policy.KindReview, Spot: spot, ExistingReview: existing}
	if err := policy.Authorize(actor, policy.ActionCreate, res, s.now()).Err(); err != nil {
		return nil, err
	}

	review := &models.Review{SpotID: spotID, UserID: actor.ID, Review: text, Stars: stars}
	if err := s.store.CreateReview(ctx, review); err != nil {
		// A concurrent create lost the race on the unique index.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeAlreadyExists, msgReviewExists, err)
		}
		return nil, fail(s.logger, "create review", err)
	}
	invalidateSpot(ctx, s.cache, s.logger, spotID)
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, actor policy.Actor, reviewID uint, text string, stars int) (*models.Review, error) {
	review, err := optional(s.store.FindReview(ctx, reviewID))
	if err != nil {
		return nil, fail(s.logger, "find review", err)
	}
	res := policy.Resource{Kind: policy.KindReview, Review: review}
	if err := policy.Authorize(actor, policy.ActionUpdate, res, s.now()).Err(); err != nil {
		return nil, err
	}

	review.Review = text
	review.Stars = stars
	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fail(s.logger, "update review", err)
	}
	invalidateSpot(ctx, s.cache, s.logger, review.SpotID)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor policy.Actor, reviewID uint) error {
	review, err := optional(s.store.FindReview(ctx, reviewID))
	if err != nil {
		return fail(s.logger, "find review", err)
	}
	res := policy.Resource{Kind: policy.KindReview, Review: review}
	if err := policy.Authorize(actor, policy.ActionDelete, res, s.now()).Err(); err != nil {
		return err
	}
	if err := s.store.DeleteReview(ctx, reviewID); err != nil && !store.IsNotFound(err) {
		return fail(s.logger, "delete review", err)
	}
	invalidateSpot(ctx, s.cache, s.logger, review.SpotID)
	return nil
}

// AddImage attaches an image to a review. The review row stays locked from the
// count to the insert, so concurrent uploads cannot pass the cap together.
func (s *ReviewService) AddImage(ctx context.Context, actor policy.Actor, reviewID uint, url string) (*models.ReviewImage, error) {
	now := s.now()
	var image *models.ReviewImage

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		review, err := optional(tx.LockReview(ctx, reviewID))
		if err != nil {
			return err
		}
		count := 0
		if review != nil {
			if count, err = tx.CountReviewImages(ctx, reviewID); err != nil {
				return err
			}
		}
		res := policy.Resource{Kind: policy.KindReviewImage, Review: review, ImageCount: count}
		if err := policy.Authorize(actor, policy.ActionCreate, res, now).Err(); err != nil {
			return err
		}
		image = &models.ReviewImage{ReviewID: reviewID, URL: url}
		return tx.CreateReviewImage(ctx, image)
	})
	if err != nil {
		return nil, fail(s.logger, "add review image", err)
	}
	return image, nil
}

func (s *ReviewService) DeleteImage(ctx context.Context, actor policy.Actor, imageID uint) error {
	image, err := optional(s.store.FindReviewImage(ctx, imageID))
	if err != nil {
		return fail(s.logger, "find review image", err)
	}
	var review *models.Review
	if image != nil {
		if review, err = optional(s.store.FindReview(ctx, image.ReviewID)); err != nil {
			return fail(s.logger, "find review", err)
		}
	}
	res := policy.Resource{Kind: policy.KindReviewImage, Review: review, ReviewImage: image}
	if err := policy.Authorize(actor, policy.ActionDelete, res, s.now()).Err(); err != nil {
		return err
	}
	if err := s.store.DeleteReviewImage(ctx, imageID); err != nil && !store.IsNotFound(err) {
		return fail(s.logger, "delete review image", err)
	}
	return nil
}
