package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "spotbook/errors"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, err)
	return w
}

func TestStatus(t *testing.T) {
	tests := []struct {
		code apperrors.ErrorCode
		want int
	}{
		{apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrCodeInvalidToken, http.StatusUnauthorized},
		{apperrors.ErrCodeForbidden, http.StatusForbidden},
		{apperrors.ErrCodePastResource, http.StatusForbidden},
		{apperrors.ErrCodeConflict, http.StatusForbidden},
		{apperrors.ErrCodeAlreadyExists, http.StatusForbidden},
		{apperrors.ErrCodeLimitExceeded, http.StatusForbidden},
		{apperrors.ErrCodeNotFound, http.StatusNotFound},
		{apperrors.ErrCodeValidation, http.StatusBadRequest},
		{apperrors.ErrCodeUserExists, http.StatusInternalServerError},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.code))
		})
	}
}

func TestFromErrorWritesFields(t *testing.T) {
	err := apperrors.NewFieldError(apperrors.ErrCodeConflict, "Sorry", map[string]string{"startDate": "taken"})
	w := render(err)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Sorry", body.Message)
	assert.Equal(t, "taken", body.Errors["startDate"])
}

func TestFromErrorHidesInternalDetails(t *testing.T) {
	w := render(apperrors.Internal(errors.New("dial tcp: refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")

	w = render(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}
