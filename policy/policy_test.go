package policy

import (
	"testing"
	"time"

	"spotbook/daterange"
	apperrors "spotbook/errors"
	"spotbook/models"

	"github.com/stretchr/testify/assert"
)

const (
	ownerID uint = 1
	guestID uint = 2
	otherID uint = 3
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func spot() *models.Spot {
	return &models.Spot{ID: 10, OwnerID: ownerID}
}

func bookingDays(startOffset, endOffset int) *models.Booking {
	today := daterange.Day(now)
	b := &models.Booking{ID: 20, SpotID: 10, UserID: guestID}
	b.SetRange(daterange.New(today.AddDate(0, 0, startOffset), today.AddDate(0, 0, endOffset)))
	return b
}

func review() *models.Review {
	return &models.Review{ID: 30, SpotID: 10, UserID: guestID, Stars: 4}
}

func TestSelfBookingForbidden(t *testing.T) {
	d := Authorize(Actor{ID: ownerID}, ActionCreate, Resource{Kind: KindBooking, Spot: spot()}, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForbidden, d.Reason)
	assert.True(t, apperrors.HasCode(d.Err(), apperrors.ErrCodeForbidden))

	d = Authorize(Actor{ID: guestID}, ActionCreate, Resource{Kind: KindBooking, Spot: spot()}, now)
	assert.True(t, d.Allowed)
	assert.NoError(t, d.Err())
}

func TestMissingResourceIsNotFoundBeforeForbidden(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		res    Resource
	}{
		{"booking create", ActionCreate, Resource{Kind: KindBooking}},
		{"booking update", ActionUpdate, Resource{Kind: KindBooking, Spot: spot()}},
		{"booking delete", ActionDelete, Resource{Kind: KindBooking}},
		{"review create", ActionCreate, Resource{Kind: KindReview}},
		{"review update", ActionUpdate, Resource{Kind: KindReview, Spot: spot()}},
		{"review image create", ActionCreate, Resource{Kind: KindReviewImage}},
		{"review image delete", ActionDelete, Resource{Kind: KindReviewImage, Review: review()}},
		{"spot image create", ActionCreate, Resource{Kind: KindSpotImage}},
		{"spot image delete", ActionDelete, Resource{Kind: KindSpotImage, Spot: spot()}},
		{"spot update", ActionUpdate, Resource{Kind: KindSpot}},
		{"spot delete", ActionDelete, Resource{Kind: KindSpot}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, actor := range []Actor{Anonymous, {ID: otherID}} {
				d := Authorize(actor, tt.action, tt.res, now)
				assert.Equal(t, ReasonNotFound, d.Reason)
				assert.True(t, apperrors.HasCode(d.Err(), apperrors.ErrCodeNotFound))
			}
		})
	}
}

func TestAnonymousDeniedOnMutations(t *testing.T) {
	tests := []struct {
		action Action
		res    Resource
	}{
		{ActionCreate, Resource{Kind: KindBooking, Spot: spot()}},
		{ActionUpdate, Resource{Kind: KindBooking, Spot: spot(), Booking: bookingDays(3, 5)}},
		{ActionDelete, Resource{Kind: KindBooking, Spot: spot(), Booking: bookingDays(3, 5)}},
		{ActionCreate, Resource{Kind: KindReview, Spot: spot()}},
		{ActionDelete, Resource{Kind: KindReview, Review: review()}},
		{ActionCreate, Resource{Kind: KindReviewImage, Review: review()}},
		{ActionCreate, Resource{Kind: KindSpotImage, Spot: spot()}},
		{ActionUpdate, Resource{Kind: KindSpot, Spot: spot()}},
	}
	for _, tt := range tests {
		d := Authorize(Anonymous, tt.action, tt.res, now)
		assert.Equal(t, ReasonUnauthenticated, d.Reason, "%s %s", tt.res.Kind, tt.action)
	}
}

func TestReviewUniqueness(t *testing.T) {
	res := Resource{Kind: KindReview, Spot: spot(), ExistingReview: review()}
	d := Authorize(Actor{ID: guestID}, ActionCreate, res, now)
	assert.Equal(t, ReasonAlreadyExists, d.Reason)
	assert.True(t, apperrors.HasCode(d.Err(), apperrors.ErrCodeAlreadyExists))

	res.ExistingReview = nil
	assert.True(t, Authorize(Actor{ID: guestID}, ActionCreate, res, now).Allowed)
}

func TestReviewAuthorOnly(t *testing.T) {
	for _, action := range []Action{ActionUpdate, ActionDelete} {
		res := Resource{Kind: KindReview, Review: review()}
		assert.True(t, Authorize(Actor{ID: guestID}, action, res, now).Allowed)
		assert.Equal(t, ReasonForbidden, Authorize(Actor{ID: ownerID}, action, res, now).Reason)
	}
}

func TestReviewImageCap(t *testing.T) {
	res := Resource{Kind: KindReviewImage, Review: review(), ImageCount: 9}
	assert.True(t, Authorize(Actor{ID: guestID}, ActionCreate, res, now).Allowed)

	res.ImageCount = 10
	d := Authorize(Actor{ID: guestID}, ActionCreate, res, now)
	assert.Equal(t, ReasonLimitExceeded, d.Reason)

	res.ImageCount = 0
	assert.Equal(t, ReasonForbidden, Authorize(Actor{ID: otherID}, ActionCreate, res, now).Reason)
}

func TestReviewImageDelete(t *testing.T) {
	res := Resource{Kind: KindReviewImage, Review: review(), ReviewImage: &models.ReviewImage{ID: 40, ReviewID: 30}}
	assert.True(t, Authorize(Actor{ID: guestID}, ActionDelete, res, now).Allowed)
	assert.Equal(t, ReasonForbidden, Authorize(Actor{ID: otherID}, ActionDelete, res, now).Reason)
}

func TestSpotOwnerRules(t *testing.T) {
	cases := []struct {
		kind   Kind
		action Action
	}{
		{KindSpot, ActionUpdate},
		{KindSpot, ActionDelete},
		{KindSpotImage, ActionCreate},
		{KindSpotImage, ActionDelete},
	}
	for _, tt := range cases {
		res := Resource{Kind: tt.kind, Spot: spot(), SpotImage: &models.SpotImage{ID: 50, SpotID: 10}}
		assert.True(t, Authorize(Actor{ID: ownerID}, tt.action, res, now).Allowed)
		assert.Equal(t, ReasonForbidden, Authorize(Actor{ID: guestID}, tt.action, res, now).Reason)
	}
}

func TestBookingFullViewOwnerOnly(t *testing.T) {
	res := Resource{Kind: KindBooking, Spot: spot()}
	assert.True(t, Authorize(Actor{ID: ownerID}, ActionRead, res, now).Allowed)
	assert.False(t, Authorize(Actor{ID: guestID}, ActionRead, res, now).Allowed)
	assert.Equal(t, ReasonForbidden, Authorize(Anonymous, ActionRead, res, now).Reason)
}

func TestBookingUpdate(t *testing.T) {
	tests := []struct {
		name   string
		actor  uint
		start  int
		end    int
		reason Reason
	}{
		{"guest future", guestID, 2, 4, ""},
		{"guest active", guestID, -1, 2, ""},
		{"guest ended yesterday", guestID, -3, -1, ReasonPastResource},
		{"guest ends today", guestID, -3, 0, ReasonPastResource},
		{"owner", ownerID, 2, 4, ReasonForbidden},
		{"stranger", otherID, 2, 4, ReasonForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resource{Kind: KindBooking, Spot: spot(), Booking: bookingDays(tt.start, tt.end)}
			d := Authorize(Actor{ID: tt.actor}, ActionUpdate, res, now)
			assert.Equal(t, tt.reason == "", d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestBookingDelete(t *testing.T) {
	tests := []struct {
		name   string
		actor  uint
		start  int
		end    int
		reason Reason
	}{
		{"guest future", guestID, 1, 3, ""},
		{"host future", ownerID, 1, 3, ""},
		{"stranger future", otherID, 1, 3, ReasonForbidden},
		{"guest started yesterday", guestID, -1, 2, ReasonPastResource},
		{"guest starts today", guestID, 0, 2, ReasonPastResource},
		{"host past", ownerID, -5, -2, ReasonPastResource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resource{Kind: KindBooking, Spot: spot(), Booking: bookingDays(tt.start, tt.end)}
			d := Authorize(Actor{ID: tt.actor}, ActionDelete, res, now)
			assert.Equal(t, tt.reason == "", d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestUnknownRuleDenied(t *testing.T) {
	d := Authorize(Actor{ID: ownerID}, ActionRead, Resource{Kind: KindSpot, Spot: spot()}, now)
	assert.Equal(t, ReasonForbidden, d.Reason)
}
