package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/security"
	"github.com/jayelcee/internhq/store"
	"github.com/jayelcee/internhq/web/common"
	"github.com/jayelcee/internhq/web/middlewares"
)

type AuthEndpoint struct {
	Handler
}

func RegisterAuth(r *gin.RouterGroup, base Handler) {
	endpoint := &AuthEndpoint{Handler: base}
	r.POST("/auth/login", endpoint.Login)
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponseDTO struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (ep *AuthEndpoint) Login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	user, err := ep.GetStore(c).FindUserByEmail(dto.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid credentials"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)) != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid credentials"))
		return
	}
	if user.Status == model.UserArchived {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("account archived"))
		return
	}

	ttl := time.Duration(ep.Cfg.TokenTTLHours) * time.Hour
	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: user.ID,
		Name:   user.FullName(),
		Email:  user.Email,
		Role:   user.Role,
	}, ep.Cfg.JWTSecret, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.SetCookie(middlewares.SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, common.NewSuccessResponse(LoginResponseDTO{Token: token, User: user}))
}
