package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "spotbook/errors"
	"spotbook/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth map[string]uint

func (f fakeAuth) Authenticate(ctx context.Context, token string) (*services.Claims, error) {
	id, ok := f[token]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", nil)
	}
	return &services.Claims{UserInfo: services.UserInfo{UserID: id}}, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(), RestoreUser(fakeAuth{"good": 7}), ErrorHandler())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": ActorFrom(c).ID})
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrSpotNotFound)
	})
	return r
}

func TestRestoreUser(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name  string
		setup func(*http.Request)
		want  string
	}{
		{"anonymous", func(*http.Request) {}, `{"id":0}`},
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, `{"id":7}`},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: "good"}) }, `{"id":7}`},
		{"bad token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, `{"id":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestRequireAuth(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Authentication required"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSessionMiddlewareRequestID(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

func TestErrorHandlerRendersAppErrors(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Spot couldn't be found"}`, w.Body.String())
}
