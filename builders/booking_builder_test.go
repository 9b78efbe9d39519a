package builders

import (
	"testing"
	"time"

	"spotbook/daterange"
	"spotbook/models"

	"github.com/stretchr/testify/assert"
)

func TestBookingBuilder(t *testing.T) {
	start := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	b := NewBookingBuilder().ForSpot(4).ByGuest(9).WithDates(daterange.Range{Start: start, End: end}).Build()

	assert.Equal(t, uint(4), b.SpotID)
	assert.Equal(t, uint(9), b.UserID)
	assert.Equal(t, daterange.Day(start), b.Range().Start)
	assert.Equal(t, daterange.Day(end), b.Range().End)
}

func TestFromBookingDoesNotAlias(t *testing.T) {
	orig := models.Booking{ID: 3, SpotID: 4, UserID: 9}
	orig.SetRange(daterange.New(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))

	edited := FromBooking(orig).WithDates(daterange.New(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC))).Build()

	assert.Equal(t, uint(3), edited.ID)
	assert.Equal(t, 3, edited.Range().Nights())
	assert.Equal(t, 1, orig.Range().Nights())
}
