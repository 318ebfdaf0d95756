package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shreyansh232/wysa/internal/response"
	"github.com/shreyansh232/wysa/internal/service"
)

func Signup(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Nickname and password are required")
			return
		}

		user, token, err := app.Auth().Signup(c.Request.Context(), req.Nickname, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingCredentials):
				HandleError(c, app.Logger(), err, http.StatusBadRequest, "Nickname and password are required")
			case errors.Is(err, service.ErrPasswordTooShort):
				HandleError(c, app.Logger(), err, http.StatusBadRequest, "Password must be at least 6 characters long")
			case errors.Is(err, service.ErrNicknameTaken):
				HandleError(c, app.Logger(), err, http.StatusConflict, "User with this nickname already exists")
			default:
				HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		c.JSON(http.StatusCreated, response.NewAuthSuccess("User created successfully", user, token))
	}
}

func Login(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Nickname and password are required")
			return
		}

		user, token, err := app.Auth().Login(c.Request.Context(), req.Nickname, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingCredentials):
				HandleError(c, app.Logger(), err, http.StatusBadRequest, "Nickname and password are required")
			case errors.Is(err, service.ErrInvalidCredentials):
				HandleError(c, app.Logger(), err, http.StatusUnauthorized, "Invalid credentials")
			default:
				HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		c.JSON(http.StatusOK, response.NewAuthSuccess("Login successful", user, token))
	}
}
