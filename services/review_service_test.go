package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	apperrors "spotbook/errors"
	"spotbook/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewService(f *fixture) *ReviewService {
	return NewReviewService(ReviewServiceOptions{Store: f.store, Now: clock})
}

func TestCreateReviewUniqueness(t *testing.T) {
	f := newFixture(t)
	svc := newReviewService(f)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Lovely stay", 5)
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Changed my mind", 1)
	appErr := requireCode(t, err, apperrors.ErrCodeAlreadyExists)
	assert.Equal(t, msgReviewExists, appErr.Message)

	_, err = svc.CreateReview(ctx, f.otherActor(), f.spot.ID, "Fine", 3)
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, f.guestActor(), 999, "Where?", 3)
	requireCode(t, err, apperrors.ErrCodeNotFound)

	_, err = svc.CreateReview(ctx, policy.Anonymous, f.spot.ID, "Anon", 3)
	requireCode(t, err, apperrors.ErrCodeUnauthorized)
}

func TestReviewImageCap(t *testing.T) {
	f := newFixture(t)
	svc := newReviewService(f)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Pictures inside", 4)
	require.NoError(t, err)

	for i := 1; i <= 10; i++ {
		_, err := svc.AddImage(ctx, f.guestActor(), review.ID, fmt.Sprintf("https://img/%d.png", i))
		require.NoError(t, err, "image %d", i)
	}

	_, err = svc.AddImage(ctx, f.guestActor(), review.ID, "https://img/11.png")
	requireCode(t, err, apperrors.ErrCodeLimitExceeded)

	count, err := f.store.CountReviewImages(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestReviewImageCapUnderConcurrentUploads(t *testing.T) {
	f := newFixture(t)
	svc := newReviewService(f)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Pictures inside", 4)
	require.NoError(t, err)
	for i := 1; i <= 9; i++ {
		_, err := svc.AddImage(ctx, f.guestActor(), review.ID, fmt.Sprintf("https://img/%d.png", i))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddImage(ctx, f.guestActor(), review.ID, fmt.Sprintf("https://img/late-%d.png", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireCode(t, err, apperrors.ErrCodeLimitExceeded)
	}
	assert.Equal(t, 1, succeeded)

	count, err := f.store.CountReviewImages(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestReviewImageOwnership(t *testing.T) {
	f := newFixture(t)
	svc := newReviewService(f)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Mine", 4)
	require.NoError(t, err)

	_, err = svc.AddImage(ctx, f.otherActor(), review.ID, "https://img/x.png")
	requireCode(t, err, apperrors.ErrCodeForbidden)

	_, err = svc.AddImage(ctx, f.guestActor(), 999, "https://img/x.png")
	requireCode(t, err, apperrors.ErrCodeNotFound)

	img, err := svc.AddImage(ctx, f.guestActor(), review.ID, "https://img/y.png")
	require.NoError(t, err)

	requireCode(t, svc.DeleteImage(ctx, f.otherActor(), img.ID), apperrors.ErrCodeForbidden)
	require.NoError(t, svc.DeleteImage(ctx, f.guestActor(), img.ID))
	requireCode(t, svc.DeleteImage(ctx, f.guestActor(), img.ID), apperrors.ErrCodeNotFound)
}

func TestUpdateAndDeleteReview(t *testing.T) {
	f := newFixture(t)
	svc := newReviewService(f)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Okay", 3)
	require.NoError(t, err)

	_, err = svc.UpdateReview(ctx, f.ownerActor(), review.ID, "Hijacked", 1)
	requireCode(t, err, apperrors.ErrCodeForbidden)

	updated, err := svc.UpdateReview(ctx, f.guestActor(), review.ID, "Better than I said", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Stars)

	requireCode(t, svc.DeleteReview(ctx, f.otherActor(), review.ID), apperrors.ErrCodeForbidden)
	require.NoError(t, svc.DeleteReview(ctx, f.guestActor(), review.ID))
	requireCode(t, svc.DeleteReview(ctx, f.guestActor(), review.ID), apperrors.ErrCodeNotFound)

	// Deleting frees the slot for a new review.
	_, err = svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Second visit", 5)
	require.NoError(t, err)
}

func TestListReviews(t *testing.T) {
	f := newFixture(t)
	svc := newReviewService(f)
	spots := NewSpotService(SpotServiceOptions{Store: f.store, Now: clock})
	ctx := context.Background()

	_, err := spots.AddImage(ctx, f.ownerActor(), f.spot.ID, "https://img/cover.png", true)
	require.NoError(t, err)
	review, err := svc.CreateReview(ctx, f.guestActor(), f.spot.ID, "Great", 5)
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, f.guestActor(), review.ID, "https://img/r.png")
	require.NoError(t, err)

	bySpot, err := svc.ListBySpot(ctx, f.spot.ID)
	require.NoError(t, err)
	require.Len(t, bySpot, 1)
	require.NotNil(t, bySpot[0].User)
	assert.Equal(t, "guest", bySpot[0].User.FirstName)
	assert.Len(t, bySpot[0].ReviewImages, 1)
	assert.Nil(t, bySpot[0].Spot)

	mine, err := svc.ListByUser(ctx, f.guestActor())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Spot)
	require.NotNil(t, mine[0].Spot.PreviewImage)
	assert.Equal(t, "https://img/cover.png", *mine[0].Spot.PreviewImage)

	_, err = svc.ListBySpot(ctx, 999)
	requireCode(t, err, apperrors.ErrCodeNotFound)
}
