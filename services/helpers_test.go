package services

import (
	"context"
	"testing"
	"time"

	"spotbook/daterange"
	apperrors "spotbook/errors"
	"spotbook/models"
	"spotbook/policy"
	"spotbook/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow sits before every literal date used in the tests.
var fixedNow = time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	store *store.MemoryStore
	owner *models.User
	guest *models.User
	other *models.User
	spot  *models.Spot
}

func (f *fixture) ownerActor() policy.Actor { return policy.Actor{ID: f.owner.ID} }
func (f *fixture) guestActor() policy.Actor { return policy.Actor{ID: f.guest.ID} }
func (f *fixture) otherActor() policy.Actor { return policy.Actor{ID: f.other.ID} }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	mk := func(name string) *models.User {
		u := &models.User{Email: name + "@example.com", Username: name, FirstName: name, LastName: "Test"}
		require.NoError(t, st.CreateUser(ctx, u))
		return u
	}
	f := &fixture{store: st, owner: mk("owner"), guest: mk("guest"), other: mk("other")}
	f.spot = &models.Spot{
		OwnerID: f.owner.ID, Address: "1 Main St", City: "Springfield", State: "IL", Country: "US",
		Lat: 39.8, Lng: -89.6, Name: "Cozy loft", Description: "Near the park", Price: 120,
	}
	require.NoError(t, st.CreateSpot(ctx, f.spot))
	return f
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func span(start, end string) daterange.Range {
	return daterange.New(day(start), day(end))
}

// offset is a range relative to fixedNow's calendar day.
func offset(startDays, endDays int) daterange.Range {
	today := daterange.Day(fixedNow)
	return daterange.New(today.AddDate(0, 0, startDays), today.AddDate(0, 0, endDays))
}

// seedBooking writes straight to the store, skipping lifecycle checks, so
// tests can place bookings in the past.
func (f *fixture) seedBooking(t *testing.T, userID uint, r daterange.Range) *models.Booking {
	t.Helper()
	b := &models.Booking{SpotID: f.spot.ID, UserID: userID}
	b.SetRange(r)
	require.NoError(t, f.store.CreateBooking(context.Background(), b))
	return b
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}
