package controllers

import (
	"spotbook/dto"
	"spotbook/middleware"
	"spotbook/response"
	"spotbook/services"
	"spotbook/validator"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Auth         *services.AuthService
	SecureCookie bool
}

func NewUserController(auth *services.AuthService, secureCookie bool) UserController {
	return UserController{Auth: auth, SecureCookie: secureCookie}
}

// Signup godoc
// @Summary      Sign up
// @Description  Creates an account and signs it in.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignupInput  true  "New account"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse  "User already exists"
// @Router       /api/users [post]
func (u UserController) Signup(c *gin.Context) {
	var in dto.SignupInput
	if err := validator.BindJSON(c, &in); err != nil {
		abort(c, err)
		return
	}
	user, token, err := u.Auth.Signup(c.Request.Context(), in)
	if err != nil {
		abort(c, err)
		return
	}
	middleware.SetTokenCookie(c, token, int(u.Auth.TokenTTL().Seconds()), u.SecureCookie)
	response.Created(c, dto.SessionResponse{User: dto.NewSafeUser(user)})
}
