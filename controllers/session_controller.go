package controllers

import (
	"spotbook/dto"
	"spotbook/middleware"
	"spotbook/models"
	"spotbook/response"
	"spotbook/services"
	"spotbook/validator"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Auth         *services.AuthService
	SecureCookie bool
}

func NewSessionController(auth *services.AuthService, secureCookie bool) SessionController {
	return SessionController{Auth: auth, SecureCookie: secureCookie}
}

func (s SessionController) signIn(c *gin.Context, user *models.User, token string) {
	middleware.SetTokenCookie(c, token, int(s.Auth.TokenTTL().Seconds()), s.SecureCookie)
	response.Success(c, dto.SessionResponse{User: dto.NewSafeUser(user)})
}

// Login godoc
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginInput  true  "Credentials"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (s SessionController) Login(c *gin.Context) {
	var in dto.LoginInput
	if err := validator.BindJSON(c, &in); err != nil {
		abort(c, err)
		return
	}
	user, token, err := s.Auth.Login(c.Request.Context(), in.Credential, in.Password)
	if err != nil {
		abort(c, err)
		return
	}
	s.signIn(c, user, token)
}

// GoogleLogin godoc
// @Summary      Log in with a Google ID token
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GoogleLoginInput  true  "Google ID token"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session/google [post]
func (s SessionController) GoogleLogin(c *gin.Context) {
	var in dto.GoogleLoginInput
	if err := validator.BindJSON(c, &in); err != nil {
		abort(c, err)
		return
	}
	user, token, err := s.Auth.GoogleLogin(c.Request.Context(), in.IDToken)
	if err != nil {
		abort(c, err)
		return
	}
	s.signIn(c, user, token)
}

// Restore godoc
// @Summary      Current session
// @Description  Returns the signed-in user, or null.
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (s SessionController) Restore(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !actor.Authenticated() {
		response.Success(c, dto.SessionResponse{})
		return
	}
	user, err := s.Auth.CurrentUser(c.Request.Context(), actor.ID)
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, dto.SessionResponse{User: dto.NewSafeUser(user)})
}

// Logout godoc
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/session [delete]
func (s SessionController) Logout(c *gin.Context) {
	if err := s.Auth.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		abort(c, err)
		return
	}
	middleware.ClearTokenCookie(c)
	response.Message(c, "success")
}
