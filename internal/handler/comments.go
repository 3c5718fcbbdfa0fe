package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), user, postID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdComment)
}

func (h *Handler) commentsGet(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), user, postID, c.Query("cursor"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsGetAll(c *gin.Context) {
	user := h.getUserFromRequest(c)

	comments, err := h.services.Comment.FindMany(c.Request.Context(), user, c.Query("cursor"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentID, err := strconv.ParseInt(strings.TrimSpace(c.Param("commentID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), user, commentID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
