package services

import (
	"context"
	"testing"

	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/policy"
	"spotbook/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpotService(f *fixture) *SpotService {
	return NewSpotService(SpotServiceOptions{Store: f.store, Now: clock})
}

func ptr[T any](v T) *T { return &v }

func spotInput(name string, price float64) dto.SpotInput {
	return dto.SpotInput{
		Address: "2 Side St", City: "Shelbyville", State: "IL", Country: "US",
		Lat: ptr(40.1), Lng: ptr(-88.2), Name: name, Description: "Quiet", Price: ptr(price),
	}
}

func TestSpotDetailAggregates(t *testing.T) {
	f := newFixture(t)
	svc := newSpotService(f)
	reviews := newReviewService(f)
	ctx := context.Background()

	detail, err := svc.Detail(ctx, f.spot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, detail.NumReviews)
	assert.Nil(t, detail.AvgStarRating)
	assert.Empty(t, detail.SpotImages)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, f.owner.ID, detail.Owner.ID)

	_, err = reviews.CreateReview(ctx, f.guestActor(), f.spot.ID, "Great", 5)
	require.NoError(t, err)
	_, err = reviews.CreateReview(ctx, f.otherActor(), f.spot.ID, "Bad", 1)
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, f.ownerActor(), f.spot.ID, "https://img/a.png", true)
	require.NoError(t, err)

	detail, err = svc.Detail(ctx, f.spot.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.NumReviews)
	require.NotNil(t, detail.AvgStarRating)
	assert.InDelta(t, 3.0, *detail.AvgStarRating, 1e-9)
	assert.Len(t, detail.SpotImages, 1)

	_, err = svc.Detail(ctx, 999)
	requireCode(t, err, apperrors.ErrCodeNotFound)
}

func TestSpotListDecorates(t *testing.T) {
	f := newFixture(t)
	svc := newSpotService(f)
	reviews := newReviewService(f)
	ctx := context.Background()

	cheap, err := svc.Create(ctx, f.ownerActor(), spotInput("Cheap", 40))
	require.NoError(t, err)
	_, err = reviews.CreateReview(ctx, f.guestActor(), f.spot.ID, "Nice", 4)
	require.NoError(t, err)

	list, err := svc.List(ctx, 1, 20, store.SpotFilter{})
	require.NoError(t, err)
	require.Len(t, list.Spots, 2)
	require.NotNil(t, list.Spots[0].AvgRating)
	assert.InDelta(t, 4.0, *list.Spots[0].AvgRating, 1e-9)
	assert.Nil(t, list.Spots[1].AvgRating)
	assert.Nil(t, list.Spots[1].PreviewImage)

	list, err = svc.List(ctx, 1, 20, store.SpotFilter{MaxPrice: ptr(50.0)})
	require.NoError(t, err)
	require.Len(t, list.Spots, 1)
	assert.Equal(t, cheap.ID, list.Spots[0].ID)

	list, err = svc.List(ctx, 2, 1, store.SpotFilter{})
	require.NoError(t, err)
	require.Len(t, list.Spots, 1)
	assert.Equal(t, cheap.ID, list.Spots[0].ID)
	assert.Equal(t, 2, list.Page)
}

func TestSpotOwnership(t *testing.T) {
	f := newFixture(t)
	svc := newSpotService(f)
	ctx := context.Background()

	_, err := svc.Update(ctx, f.guestActor(), f.spot.ID, spotInput("Mine now", 1))
	requireCode(t, err, apperrors.ErrCodeForbidden)

	updated, err := svc.Update(ctx, f.ownerActor(), f.spot.ID, spotInput("Renamed", 150))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, f.owner.ID, updated.OwnerID)

	_, err = svc.AddImage(ctx, f.guestActor(), f.spot.ID, "https://img/x.png", true)
	requireCode(t, err, apperrors.ErrCodeForbidden)

	img, err := svc.AddImage(ctx, f.ownerActor(), f.spot.ID, "https://img/x.png", true)
	require.NoError(t, err)
	requireCode(t, svc.DeleteImage(ctx, f.guestActor(), img.ID), apperrors.ErrCodeForbidden)
	require.NoError(t, svc.DeleteImage(ctx, f.ownerActor(), img.ID))
	requireCode(t, svc.DeleteImage(ctx, f.ownerActor(), img.ID), apperrors.ErrCodeNotFound)

	requireCode(t, svc.Delete(ctx, f.guestActor(), f.spot.ID), apperrors.ErrCodeForbidden)
	require.NoError(t, svc.Delete(ctx, f.ownerActor(), f.spot.ID))
	requireCode(t, svc.Delete(ctx, f.ownerActor(), f.spot.ID), apperrors.ErrCodeNotFound)

	_, err = svc.Create(ctx, policy.Anonymous, spotInput("Nobody's", 10))
	requireCode(t, err, apperrors.ErrCodeUnauthorized)
}

func TestListCurrentSpots(t *testing.T) {
	f := newFixture(t)
	svc := newSpotService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, f.guestActor(), spotInput("Guest's place", 80))
	require.NoError(t, err)

	mine, err := svc.ListCurrent(ctx, f.ownerActor())
	require.NoError(t, err)
	require.Len(t, mine.Spots, 1)
	assert.Equal(t, f.spot.ID, mine.Spots[0].ID)
}

type mapSpotCache struct {
	entries map[uint]*dto.SpotDetail
	hits    int
}

func (c *mapSpotCache) Get(ctx context.Context, spotID uint) (*dto.SpotDetail, bool, error) {
	d, ok := c.entries[spotID]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *mapSpotCache) Set(ctx context.Context, detail *dto.SpotDetail) error {
	c.entries[detail.ID] = detail
	return nil
}

func (c *mapSpotCache) Invalidate(ctx context.Context, spotID uint) error {
	delete(c.entries, spotID)
	return nil
}

func TestSpotDetailCacheInvalidatedByReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := &mapSpotCache{entries: map[uint]*dto.SpotDetail{}}
	spots := NewSpotService(SpotServiceOptions{Store: f.store, Cache: cache, Now: clock})
	reviews := NewReviewService(ReviewServiceOptions{Store: f.store, Cache: cache, Now: clock})

	first, err := spots.Detail(ctx, f.spot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.NumReviews)

	_, err = spots.Detail(ctx, f.spot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	_, err = reviews.CreateReview(ctx, f.guestActor(), f.spot.ID, "Great stay", 4)
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, f.spot.ID)

	after, err := spots.Detail(ctx, f.spot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.NumReviews)

	_, err = spots.AddImage(ctx, f.ownerActor(), f.spot.ID, "https://img/1", true)
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, f.spot.ID)
}
