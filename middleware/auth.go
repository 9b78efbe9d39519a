package middleware

import (
	"context"
	"net/http"
	"strings"

	"spotbook/constants"
	"spotbook/policy"
	"spotbook/response"
	"spotbook/services"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// Authenticator resolves a session token. *services.AuthService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Claims, error)
}

func tokenFrom(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(constants.TokenCookieName); err == nil {
		return cookie
	}
	return ""
}

// RestoreUser attaches the signed-in user, if any, to the request. A missing
// or invalid token leaves the request anonymous; an invalid cookie is cleared.
func RestoreUser(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			ClearTokenCookie(c)
			c.Next()
			return
		}
		c.Set(constants.ContextUserID, claims.UserInfo.UserID)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401. It must run after
// RestoreUser.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).Authenticated() {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFrom returns the request's actor; Anonymous when nobody is signed in.
func ActorFrom(c *gin.Context) policy.Actor {
	if id, ok := c.Get(constants.ContextUserID); ok {
		if userID, ok := id.(uint); ok {
			return policy.Actor{ID: userID}
		}
	}
	return policy.Anonymous
}

// ClaimsFrom returns the verified token claims, or nil.
func ClaimsFrom(c *gin.Context) *services.Claims {
	if v, ok := c.Get(claimsKey); ok {
		claims, _ := v.(*services.Claims)
		return claims
	}
	return nil
}

func SetTokenCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.TokenCookieName, token, maxAge, "/", "", secure, true)
}

func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(constants.TokenCookieName, "", -1, "/", "", false, true)
}

// ErrorHandler renders the last error a handler pushed with c.Error, unless
// the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
