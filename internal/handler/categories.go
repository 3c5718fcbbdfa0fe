package handler

import (
	"net/http"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) categoriesCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	category, err := h.services.Category.Create(c.Request.Context(), user, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *Handler) categoriesGet(c *gin.Context) {
	user := h.getUserFromRequest(c)

	categories, err := h.services.Category.FindMany(c.Request.Context(), user)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
