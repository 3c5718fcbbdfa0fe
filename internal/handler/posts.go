package handler

import (
	"net/http"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdPost)
}

func (h *Handler) postsList(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.ListPostsRequest
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	posts, err := h.services.Post.List(c.Request.Context(), user, input.Filter(), input.Cursor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.services.Post.Get(c.Request.Context(), user, postID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	reactions, err := h.services.Reaction.Summary(c.Request.Context(), user, []int64{postID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GetPost{Post: *post, Reactions: reactions[postID]})
}

func (h *Handler) postsUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var input dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), user, postID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), user, postID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) postsRevisions(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	revisions, err := h.services.Post.Revisions(c.Request.Context(), user, postID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, revisions)
}
