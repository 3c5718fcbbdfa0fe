package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) usersGetMe(c *gin.Context) {
	c.JSON(http.StatusOK, h.getUserFromRequest(c))
}

func (h *Handler) usersUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	userID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input model.UserChangeset
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	updatedUser, err := h.services.User.Update(c.Request.Context(), user, userID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}
