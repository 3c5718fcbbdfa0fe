package handler

import (
	"net/http"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) reactionsToggle(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var input dto.ToggleReactionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	delta, err := h.services.Reaction.Toggle(c.Request.Context(), user, postID, input.Emoji)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleReactionResponse{Emoji: input.Emoji, Delta: delta})
}

func (h *Handler) reactionsSummary(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if _, err := h.services.Post.Get(c.Request.Context(), user, postID); err != nil {
		h.handleError(c, err)
		return
	}

	summary, err := h.services.Reaction.Summary(c.Request.Context(), user, []int64{postID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reactions": summary[postID]})
}
