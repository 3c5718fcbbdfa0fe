package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	claims, err := utils.DecodeJWT(accessToken, h.cfg.AccessSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	claimed, err := userFromClaims(claims)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, err := h.services.User.FindOrCreate(c.Request.Context(), *claimed)
	if err != nil {
		h.handleError(c, err)
		c.Abort()
		return
	}

	c.Set("user", *user)

	c.Next()
}

func (h *Handler) adminMiddleware(c *gin.Context) {
	if !h.getUserFromRequest(c).Admin {
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewBasicResponse(false, errNoAccess.Error()))
		return
	}

	c.Next()
}

func userFromClaims(claims jwt.MapClaims) (*model.User, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errInvalidTokenClaim
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, errInvalidTokenClaim
	}

	user := model.User{ID: id}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		user.Name = &name
	}
	if picture, ok := claims["picture"].(string); ok && picture != "" {
		user.Picture = &picture
	}

	return &user, nil
}
