package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spotbook/dto"
	apperrors "spotbook/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindBody(t *testing.T, body string, obj interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return BindJSON(c, obj)
}

func TestBindJSONUsesFieldWording(t *testing.T) {
	var in dto.SignupInput
	err := bindBody(t, `{"email":"nope","username":"ab","firstName":"A","lastName":"B","password":"123"}`, &in)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, map[string]string{
		"email":    "Please provide a valid email.",
		"username": "Please provide a username with at least 4 characters.",
		"password": "Password must be 6 characters or more.",
	}, appErr.Fields)

	var login dto.LoginInput
	err = bindBody(t, `{"credential":"demo"}`, &login)
	appErr = apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Please provide a password.", appErr.Fields["password"])
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	var in dto.ReviewInput
	err := bindBody(t, `{"review":`, &in)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat))
}

func TestBindJSONSpotRanges(t *testing.T) {
	var in dto.SpotInput
	err := bindBody(t, `{"address":"a","city":"c","state":"s","country":"x","lat":91,"lng":0,"name":"n","description":"d","price":0}`, &in)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Latitude must be between -90 to 90", appErr.Fields["lat"])
	assert.Equal(t, "Price per day must be a positive number", appErr.Fields["price"])
	assert.NotContains(t, appErr.Fields, "lng")
}

func TestValidateSpotInput(t *testing.T) {
	lat, lng, price := 1.0, 2.0, 3.0
	in := dto.SpotInput{Address: "  ", City: "c", State: "s", Country: "x", Lat: &lat, Lng: &lng, Name: "n", Description: "d", Price: &price}
	err := ValidateSpotInput(in)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, map[string]string{"address": "Street address is required"}, appErr.Fields)

	in.Address = "1 Main St"
	assert.NoError(t, ValidateSpotInput(in))
}

func TestValidateReviewInput(t *testing.T) {
	stars := 6
	err := ValidateReviewInput(dto.ReviewInput{Review: " ", Stars: &stars})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Fields, 2)

	stars = 5
	assert.NoError(t, ValidateReviewInput(dto.ReviewInput{Review: "Great", Stars: &stars}))
}

func TestValidateBookingDates(t *testing.T) {
	r, err := ValidateBookingDates(dto.BookingInput{StartDate: "2024-03-01", EndDate: "2024-03-03T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), r.End)

	_, err = ValidateBookingDates(dto.BookingInput{StartDate: "soon", EndDate: "2024-03-03"})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Fields, "startDate")
	assert.NotContains(t, appErr.Fields, "endDate")
}

func TestValidateSpotQuery(t *testing.T) {
	page, size, filter, err := ValidateSpotQuery(dto.SpotQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
	assert.Nil(t, filter.MinLat)

	page, size, filter, err = ValidateSpotQuery(dto.SpotQuery{Page: "2", Size: "500", MinPrice: "10", MaxPrice: "50", MinLat: "-10"})
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, 100, size)
	require.NotNil(t, filter.MinPrice)
	assert.Equal(t, 10.0, *filter.MinPrice)
	assert.Equal(t, 50.0, *filter.MaxPrice)
	assert.Equal(t, -10.0, *filter.MinLat)

	tests := []struct {
		name  string
		query dto.SpotQuery
		field string
	}{
		{"page zero", dto.SpotQuery{Page: "0"}, "page"},
		{"size text", dto.SpotQuery{Size: "many"}, "size"},
		{"min lat range", dto.SpotQuery{MinLat: "-91"}, "minLat"},
		{"max lat below min", dto.SpotQuery{MinLat: "10", MaxLat: "5"}, "maxLat"},
		{"min lng range", dto.SpotQuery{MinLng: "181"}, "minLng"},
		{"max lng range", dto.SpotQuery{MaxLng: "200"}, "maxLng"},
		{"max lng below min", dto.SpotQuery{MinLng: "10", MaxLng: "10"}, "maxLng"},
		{"negative min price", dto.SpotQuery{MinPrice: "-1"}, "minPrice"},
		{"max price below min", dto.SpotQuery{MinPrice: "20", MaxPrice: "10"}, "maxPrice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ValidateSpotQuery(tt.query)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}
