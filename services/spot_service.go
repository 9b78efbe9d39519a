package services

import (
	"context"

	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/models"
	"spotbook/policy"
	"spotbook/rating"
	"spotbook/services/logger"
	"spotbook/store"
)

type SpotService struct {
	store  store.Store
	cache  SpotCache
	logger logger.Logger
	now    Clock
}

type SpotServiceOptions struct {
	Store  store.Store
	Cache  SpotCache
	Logger logger.Logger
	Now    Clock
}

func NewSpotService(opts SpotServiceOptions) *SpotService {
	return &SpotService{
		store:  opts.Store,
		cache:  defaultSpotCache(opts.Cache),
		logger: defaultLogger(opts.Logger),
		now:    defaultClock(opts.Now),
	}
}

// listItems decorates spots with their average rating and preview image.
func (s *SpotService) listItems(ctx context.Context, spots []models.Spot) ([]dto.SpotListItem, error) {
	ids := make([]uint, 0, len(spots))
	for _, sp := range spots {
		ids = append(ids, sp.ID)
	}
	reviews, err := s.store.ListReviewsBySpot(ctx, ids...)
	if err != nil {
		return nil, err
	}
	stars := make(map[uint][]int)
	for _, r := range reviews {
		stars[r.SpotID] = append(stars[r.SpotID], r.Stars)
	}
	previews, err := previewImages(ctx, s.store, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SpotListItem, 0, len(spots))
	for i := range spots {
		sp := &spots[i]
		out = append(out, dto.SpotListItem{
			SpotResponse: dto.NewSpotResponse(sp),
			AvgRating:    rating.Aggregate(stars[sp.ID]).Average,
			PreviewImage: previews[sp.ID],
		})
	}
	return out, nil
}

// List returns one page of spots matching filter. page and size are 1-based
// and already validated.
func (s *SpotService) List(ctx context.Context, page, size int, filter store.SpotFilter) (*dto.SpotListResponse, error) {
	filter.Limit = size
	filter.Offset = (page - 1) * size
	spots, err := s.store.ListSpots(ctx, filter)
	if err != nil {
		return nil, fail(s.logger, "list spots", err)
	}
	items, err := s.listItems(ctx, spots)
	if err != nil {
		return nil, fail(s.logger, "decorate spots", err)
	}
	return &dto.SpotListResponse{Page: page, Size: size, Spots: items}, nil
}

func (s *SpotService) ListCurrent(ctx context.Context, actor policy.Actor) (*dto.SpotListResponse, error) {
	owner := actor.ID
	spots, err := s.store.ListSpots(ctx, store.SpotFilter{OwnerID: &owner})
	if err != nil {
		return nil, fail(s.logger, "list own spots", err)
	}
	items, err := s.listItems(ctx, spots)
	if err != nil {
		return nil, fail(s.logger, "decorate spots", err)
	}
	return &dto.SpotListResponse{Spots: items}, nil
}

func (s *SpotService) Detail(ctx context.Context, spotID uint) (*dto.SpotDetail, error) {
	if cached, ok, err := s.cache.Get(ctx, spotID); err != nil {
		s.logger.Error("read cached spot %d: %v", spotID, err)
	} else if ok {
		return cached, nil
	}
	spot, err := s.store.FindSpot(ctx, spotID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.ErrSpotNotFound
		}
		return nil, fail(s.logger, "find spot", err)
	}
	reviews, err := s.store.ListReviewsBySpot(ctx, spotID)
	if err != nil {
		return nil, fail(s.logger, "list spot reviews", err)
	}
	images, err := s.store.ListSpotImages(ctx, spotID)
	if err != nil {
		return nil, fail(s.logger, "list spot images", err)
	}
	owner, err := optional(s.store.FindUser(ctx, spot.OwnerID))
	if err != nil {
		return nil, fail(s.logger, "find owner", err)
	}

	summary := rating.Aggregate(models.StarValues(reviews))
	detail := &dto.SpotDetail{
		SpotResponse:  dto.NewSpotResponse(spot),
		NumReviews:    summary.Count,
		AvgStarRating: summary.Average,
		SpotImages:    make([]dto.SpotImageResponse, 0, len(images)),
		Owner:         dto.NewUserSummary(owner),
	}
	for i := range images {
		detail.SpotImages = append(detail.SpotImages, dto.NewSpotImageResponse(&images[i]))
	}
	if err := s.cache.Set(ctx, detail); err != nil {
		s.logger.Error("cache spot %d: %v", spotID, err)
	}
	return detail, nil
}

func applySpotInput(spot *models.Spot, in dto.SpotInput) {
	spot.Address = in.Address
	spot.City = in.City
	spot.State = in.State
	spot.Country = in.Country
	spot.Lat = *in.Lat
	spot.Lng = *in.Lng
	spot.Name = in.Name
	spot.Description = in.Description
	spot.Price = *in.Price
}

func (s *SpotService) Create(ctx context.Context, actor policy.Actor, in dto.SpotInput) (*models.Spot, error) {
	if !actor.Authenticated() {
		return nil, apperrors.ErrAuthenticationRequired
	}
	spot := &models.Spot{OwnerID: actor.ID}
	applySpotInput(spot, in)
	if err := spot.ValidateCoordinates(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Bad Request", err)
	}
	if err := s.store.CreateSpot(ctx, spot); err != nil {
		return nil, fail(s.logger, "create spot", err)
	}
	s.logger.Info("spot %d created by user %d", spot.ID, actor.ID)
	return spot, nil
}

// Update replaces the editable fields. ownerId never changes.
func (s *SpotService) Update(ctx context.Context, actor policy.Actor, spotID uint, in dto.SpotInput) (*models.Spot, error) {
	spot, err := optional(s.store.FindSpot(ctx, spotID))
	if err != nil {
		return nil, fail(s.logger, "find spot", err)
	}
	if err := policy.Authorize(actor, policy.ActionUpdate, policy.Resource{Kind: policy.KindSpot, Spot: spot}, s.now()).Err(); err != nil {
		return nil, err
	}
	applySpotInput(spot, in)
	if err := spot.ValidateCoordinates(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Bad Request", err)
	}
	if err := s.store.UpdateSpot(ctx, spot); err != nil {
		return nil, fail(s.logger, "update spot", err)
	}
	invalidateSpot(ctx, s.cache, s.logger, spot.ID)
	return spot, nil
}

func (s *SpotService) Delete(ctx context.Context, actor policy.Actor, spotID uint) error {
	spot, err := optional(s.store.FindSpot(ctx, spotID))
	if err != nil {
		return fail(s.logger, "find spot", err)
	}
	if err := policy.Authorize(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindSpot, Spot: spot}, s.now()).Err(); err != nil {
		return err
	}
	if err := s.store.DeleteSpot(ctx, spotID); err != nil && !store.IsNotFound(err) {
		return fail(s.logger, "delete spot", err)
	}
	invalidateSpot(ctx, s.cache, s.logger, spotID)
	s.logger.Info("spot %d deleted by user %d", spotID, actor.ID)
	return nil
}

func (s *SpotService) AddImage(ctx context.Context, actor policy.Actor, spotID uint, url string, preview bool) (*models.SpotImage, error) {
	spot, err := optional(s.store.FindSpot(ctx, spotID))
	if err != nil {
		return nil, fail(s.logger, "find spot", err)
	}
	if err := policy.Authorize(actor, policy.ActionCreate, policy.Resource{Kind: policy.KindSpotImage, Spot: spot}, s.now()).Err(); err != nil {
		return nil, err
	}
	image := &models.SpotImage{SpotID: spotID, URL: url, Preview: preview}
	if err := s.store.CreateSpotImage(ctx, image); err != nil {
		return nil, fail(s.logger, "create spot image", err)
	}
	invalidateSpot(ctx, s.cache, s.logger, spotID)
	return image, nil
}

func (s *SpotService) DeleteImage(ctx context.Context, actor policy.Actor, imageID uint) error {
	image, err := optional(s.store.FindSpotImage(ctx, imageID))
	if err != nil {
		return fail(s.logger, "find spot image", err)
	}
	var spot *models.Spot
	if image != nil {
		if spot, err = optional(s.store.FindSpot(ctx, image.SpotID)); err != nil {
			return fail(s.logger, "find spot", err)
		}
	}
	res := policy.Resource{Kind: policy.KindSpotImage, Spot: spot, SpotImage: image}
	if err := policy.Authorize(actor, policy.ActionDelete, res, s.now()).Err(); err != nil {
		return err
	}
	if err := s.store.DeleteSpotImage(ctx, imageID); err != nil && !store.IsNotFound(err) {
		return fail(s.logger, "delete spot image", err)
	}
	invalidateSpot(ctx, s.cache, s.logger, image.SpotID)
	return nil
}
